package generator

import (
	"context"

	"cfngen/cfn/models"
	"cfngen/output"
)

// ImageVerifier defines the interface for machine image checks
type ImageVerifier interface {
	VerifyImage(ctx context.Context, imageID string) error
}

// TemplateWriter defines the interface for persisting rendered templates
type TemplateWriter interface {
	Write(path string, tpl *models.Template, format output.Format) error
}
