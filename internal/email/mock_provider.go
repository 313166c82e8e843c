package email

import "careercraft_backend/internal/logger"

// MockProvider logs instead of sending. Used in tests and when SMTP is
// unconfigured.
type MockProvider struct {
	Sent []*Email
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(email *Email) error {
	p.Sent = append(p.Sent, email)
	logger.Info("mock email sent", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *MockProvider) Validate() error { return nil }

func (p *MockProvider) Close() error { return nil }
