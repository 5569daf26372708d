package generator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cfngen/cfn/models"
	"cfngen/output"
)

// MockImageVerifier is a mock implementation of ImageVerifier
type MockImageVerifier struct {
	mock.Mock
}

// VerifyImage mocks the VerifyImage method
func (m *MockImageVerifier) VerifyImage(ctx context.Context, imageID string) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

// MockTemplateWriter is a mock implementation of TemplateWriter
type MockTemplateWriter struct {
	mock.Mock
}

// Write mocks the Write method
func (m *MockTemplateWriter) Write(path string, tpl *models.Template, format output.Format) error {
	args := m.Called(path, tpl, format)
	return args.Error(0)
}
