package generator

import (
	"context"

	"go.uber.org/zap"

	"cfngen/awsd"
	"cfngen/cfn"
	"cfngen/cfn/models"
	"cfngen/configuration"
	"cfngen/errors"
)

const packageName = "generator"

// Service builds a template from configuration and writes it out
type Service struct {
	builder  *cfn.TemplateBuilder
	verifier ImageVerifier
	writer   TemplateWriter
	logger   *zap.Logger
}

// NewService creates a Service. verifier may be nil when image checks are disabled.
func NewService(verifier ImageVerifier, writer TemplateWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		builder:  cfn.NewTemplateBuilder(logger),
		verifier: verifier,
		writer:   writer,
		logger:   logger.With(zap.String("package", packageName)),
	}
}

// Generate builds the template described by cfg and writes it to cfg.OutputPath.
// The built template is returned even when writing fails.
func (s *Service) Generate(ctx context.Context, cfg *configuration.Config) (*models.Template, error) {
	params := cfn.Params{
		Instances:    cfg.Instances,
		InstanceType: cfg.InstanceType,
		AllowSSHFrom: cfg.AllowSSHFrom,
		ImageID:      cfn.DefaultImageID,
	}

	if !awsd.IsKnownInstanceType(params.InstanceType) {
		s.logger.Warn("Instance type is not in the EC2 catalogue",
			zap.String("operation", "template_generate"),
			zap.String("instance_type", params.InstanceType),
		)
	}

	if cfg.VerifyImage {
		if s.verifier == nil {
			return nil, errors.New(errors.ErrAWSClient, "image verification requested without an AWS client", nil, nil)
		}
		if err := s.verifier.VerifyImage(ctx, params.ImageID); err != nil {
			return nil, err
		}
		s.logger.Info("Image verified",
			zap.String("operation", "template_generate"),
			zap.String("image_id", params.ImageID),
		)
	}

	tpl := s.builder.Build(params)
	s.logger.Info("Template built",
		zap.String("operation", "template_generate"),
		zap.Int("resources", len(tpl.Resources)),
		zap.Int("instances", params.Instances),
	)

	if err := s.writer.Write(cfg.OutputPath, tpl, cfg.OutputFormat); err != nil {
		return tpl, err
	}
	return tpl, nil
}
