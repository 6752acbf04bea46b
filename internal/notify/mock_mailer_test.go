package notify

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMailer is a mock implementation of mailer.Transport for testing.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockMailer) SendWithAttachment(ctx context.Context, to, subject, body string, attachment []byte, filename, mimeType string) error {
	args := m.Called(ctx, to, subject, body, attachment, filename, mimeType)
	return args.Error(0)
}
