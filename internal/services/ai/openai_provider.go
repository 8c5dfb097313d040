// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"encoding/base64"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// systemPreamble is prepended to every text completion request.
const systemPreamble = "You are a helpful AI assistant."

// OpenAIProvider talks to an OpenAI-compatible completion endpoint
// (OpenRouter in production).
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.TextTimeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.TextModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPreamble},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return "", classifyError("completion", err)
	}

	return firstChoice("completion", resp)
}

func (p *OpenAIProvider) AnalyzeImage(ctx context.Context, prompt string, image []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.ImageTimeout)
	defer cancel()

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.VisionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", classifyError("vision", err)
	}

	return firstChoice("vision", resp)
}

// classifyError splits provider rejections (carrying the upstream status and
// raw body) from transport failures, which are the retryable kind.
func classifyError(operation string, err error) *GatewayError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewProviderError(operation, apiErr.Message, apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return NewProviderError(operation, reqErr.Error(), reqErr.HTTPStatusCode, err)
	}

	return NewTransportError(operation, err)
}

func firstChoice(operation string, resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", NewProviderError(operation, "empty completion response", 0, nil)
	}
	return resp.Choices[0].Message.Content, nil
}
