package awsd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"go.uber.org/zap"

	"cfngen/awsd/models"
	"cfngen/configuration"
	"cfngen/errors"
)

const packageName = "awsd"

// EC2API is the subset of the EC2 client used here
type EC2API interface {
	DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
}

// AwsClient looks up EC2 resources through an EC2API
type AwsClient struct {
	client EC2API
}

// NewEC2ClientWithAPI wraps an existing EC2 API implementation
func NewEC2ClientWithAPI(api EC2API) *AwsClient {
	return &AwsClient{client: api}
}

// NewEC2Client creates an EC2 client from the application configuration. Static
// credentials and a custom endpoint are only used when configured; otherwise
// the default AWS credential chain applies.
func NewEC2Client(ctx context.Context, cfg *configuration.Config) (*AwsClient, error) {
	logger := zap.L().With(
		zap.String("package", packageName),
		zap.String("function", "NewEC2Client"),
	)

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}
	if cfg.AcessKeyID != "" && cfg.AccessSecret != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AcessKeyID, cfg.AccessSecret, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New(errors.ErrAWSClient, "failed to load AWS config",
			map[string]interface{}{
				"region": cfg.AWSRegion,
			}, err)
	}

	client := ec2.NewFromConfig(awsCfg, func(o *ec2.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})

	logger.Debug("EC2 client created",
		zap.String("operation", "aws_client_creation"),
		zap.String("region", cfg.AWSRegion),
		zap.String("endpoint", cfg.EndpointURL),
	)
	return NewEC2ClientWithAPI(client), nil
}

// GetImage fetches the machine image with the given id
func (a *AwsClient) GetImage(ctx context.Context, imageID string) (*models.Image, error) {
	out, err := a.client.DescribeImages(ctx, &ec2.DescribeImagesInput{
		ImageIds: []string{imageID},
	})
	if err != nil {
		return nil, errors.New(errors.ErrAWSClient, "failed to describe image",
			map[string]interface{}{
				"image_id": imageID,
			}, err)
	}

	if len(out.Images) == 0 {
		return nil, errors.New(errors.ErrAWSImage, "image not found",
			map[string]interface{}{
				"image_id": imageID,
			}, nil)
	}

	img := out.Images[0]
	return &models.Image{
		ImageID:      aws.ToString(img.ImageId),
		Name:         aws.ToString(img.Name),
		State:        string(img.State),
		Architecture: string(img.Architecture),
	}, nil
}

// VerifyImage fails unless the image exists and is available for launch
func (a *AwsClient) VerifyImage(ctx context.Context, imageID string) error {
	img, err := a.GetImage(ctx, imageID)
	if err != nil {
		return err
	}

	if img.State != string(types.ImageStateAvailable) {
		return errors.New(errors.ErrAWSImage, "image is not available",
			map[string]interface{}{
				"image_id": imageID,
				"state":    img.State,
			}, nil)
	}

	zap.L().Debug("Image verified",
		zap.String("package", packageName),
		zap.String("operation", "image_verification"),
		zap.String("image_id", img.ImageID),
		zap.String("name", img.Name),
		zap.String("architecture", img.Architecture),
	)
	return nil
}

// IsKnownInstanceType reports whether the SDK's catalogue lists the type
func IsKnownInstanceType(instanceType string) bool {
	for _, known := range types.InstanceType("").Values() {
		if string(known) == instanceType {
			return true
		}
	}
	return false
}
