// File: internal/services/ai/mock_provider.go
package ai

import (
	"context"
	"fmt"
)

// MockProvider echoes the input back without calling the gateway. Enabled with
// USE_MOCK_AI for local testing against the full HTTP surface.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Complete(_ context.Context, query string) (string, error) {
	return fmt.Sprintf("[Mock AI] You said: %s", query), nil
}

func (p *MockProvider) AnalyzeImage(_ context.Context, prompt string, image []byte) (string, error) {
	return fmt.Sprintf("[Mock AI] Analyzed %d image bytes for prompt: %s", len(image), prompt), nil
}
