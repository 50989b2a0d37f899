package gmail

import (
	"context"

	"email-agent/internal/model"
)

// MockClient is a mock implementation of service.GmailClient for testing.
type MockClient struct {
	FetchRecentEmailsFunc func(ctx context.Context, maxResults int64) ([]*model.Email, error)
	Emails                []*model.Email
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) FetchRecentEmails(ctx context.Context, maxResults int64) ([]*model.Email, error) {
	if m.FetchRecentEmailsFunc != nil {
		return m.FetchRecentEmailsFunc(ctx, maxResults)
	}
	if maxResults > 0 && int64(len(m.Emails)) > maxResults {
		return m.Emails[:maxResults], nil
	}
	return m.Emails, nil
}
