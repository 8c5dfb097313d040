// File: internal/services/ai/interface.go
package ai

import "context"

// Provider is the completion gateway contract: a stateless request/response
// call to a remote model. Implementations must bound their own timeouts.
type Provider interface {
	// Complete sends the system preamble plus the user query and returns the
	// reply text.
	Complete(ctx context.Context, query string) (string, error)
	// AnalyzeImage sends a single multimodal user turn combining the prompt
	// text and the raw image bytes.
	AnalyzeImage(ctx context.Context, prompt string, image []byte) (string, error)
}
