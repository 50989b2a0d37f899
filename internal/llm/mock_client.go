package llm

import "context"

// MockClient is a mock implementation of service.LLMClient for testing.
type MockClient struct {
	GenerateFunc func(ctx context.Context, prompt string, temperature float64) string
	Response     string
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, prompt string, temperature float64) string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, temperature)
	}
	return m.Response
}
