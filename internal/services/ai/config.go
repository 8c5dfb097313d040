// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// Gateway Configuration
	APIKey  string
	BaseURL string

	// Model Configuration
	TextModel   string // completion model for text chat
	VisionModel string // multimodal model for image analysis

	// Performance Configuration
	TextTimeout  time.Duration // bound on a text completion call
	ImageTimeout time.Duration // image calls are slower; bounded separately
	MaxRetries   int
	RetryDelay   time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return NewConfigError("OPENROUTER_API_KEY is required")
	}
	if c.TextModel == "" || c.VisionModel == "" {
		return NewConfigError("text and vision model names are required")
	}
	if c.TextTimeout <= 0 || c.ImageTimeout <= 0 {
		return NewConfigError(fmt.Sprintf("timeouts must be positive (text=%v image=%v)", c.TextTimeout, c.ImageTimeout))
	}
	if c.MaxRetries < 1 {
		return NewConfigError("max retries must be at least 1")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		TextTimeout:  60 * time.Second,
		ImageTimeout: 120 * time.Second,
		MaxRetries:   3,
		RetryDelay:   2 * time.Second,
	}
}
