package awsd

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cfngen/awsd/models"
	"cfngen/configuration"
	"cfngen/errors"
)

func TestGetImage(t *testing.T) {
	tests := []struct {
		name        string
		mockOutput  *ec2.DescribeImagesOutput
		mockError   error
		expected    *models.Image
		expectError errors.ErrorType
	}{
		{
			name: "Success Case",
			mockOutput: &ec2.DescribeImagesOutput{
				Images: []types.Image{
					{
						ImageId:      aws.String("ami-b97a12ce"),
						Name:         aws.String("amzn-ami-hvm"),
						State:        types.ImageStateAvailable,
						Architecture: types.ArchitectureValuesX8664,
					},
				},
			},
			expected: &models.Image{
				ImageID:      "ami-b97a12ce",
				Name:         "amzn-ami-hvm",
				State:        "available",
				Architecture: "x86_64",
			},
		},
		{
			name:        "No Images",
			mockOutput:  &ec2.DescribeImagesOutput{Images: []types.Image{}},
			expectError: errors.ErrAWSImage,
		},
		{
			name:        "AWS Error",
			mockError:   fmt.Errorf("some AWS error"),
			expectError: errors.ErrAWSClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requested []string
			mockClient := &MockEC2Client{
				DescribeImagesFunc: func(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
					requested = params.ImageIds
					return tt.mockOutput, tt.mockError
				},
			}

			client := NewEC2ClientWithAPI(mockClient)
			image, err := client.GetImage(context.Background(), "ami-b97a12ce")

			assert.Equal(t, []string{"ami-b97a12ce"}, requested)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectError), "unexpected error: %v", err)
				assert.Nil(t, image)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, image)
		})
	}
}

func TestVerifyImage(t *testing.T) {
	tests := []struct {
		name        string
		state       types.ImageState
		expectError bool
	}{
		{name: "available", state: types.ImageStateAvailable},
		{name: "pending", state: types.ImageStatePending, expectError: true},
		{name: "deregistered", state: types.ImageStateDeregistered, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockEC2Client{
				DescribeImagesFunc: func(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
					return &ec2.DescribeImagesOutput{
						Images: []types.Image{{ImageId: aws.String(params.ImageIds[0]), State: tt.state}},
					}, nil
				},
			}

			err := NewEC2ClientWithAPI(mockClient).VerifyImage(context.Background(), "ami-123")
			if tt.expectError {
				assert.True(t, errors.Is(err, errors.ErrAWSImage), "unexpected error: %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsKnownInstanceType(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"t2.micro", true},
		{"m5.large", true},
		{"t2.gigantic", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsKnownInstanceType(tc.input))
		})
	}
}

func TestNewEC2Client(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	cfg := &configuration.Config{
		AWSRegion:    "us-east-1",
		AcessKeyID:   "test",
		AccessSecret: "test",
		EndpointURL:  "http://localhost:4566",
	}

	client, err := NewEC2Client(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	ec2Client, ok := client.client.(*ec2.Client)
	require.True(t, ok)
	opts := ec2Client.Options()
	assert.Equal(t, "us-east-1", opts.Region)
	assert.Equal(t, "http://localhost:4566", aws.ToString(opts.BaseEndpoint))
}
