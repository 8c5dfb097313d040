// File: internal/services/ai/errors.go
package ai

import "fmt"

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeTransport ErrorType = "TRANSPORT"
	ErrTypeProvider  ErrorType = "PROVIDER"
)

// GatewayError is any failure talking to the completion gateway. Provider
// errors carry the upstream status code and raw detail; transport errors are
// the only retryable kind.
type GatewayError struct {
	Type       ErrorType
	Operation  string
	Message    string
	StatusCode int
	Cause      error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("gateway %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Cause }

// Retryable reports whether a retry could plausibly succeed. Provider
// rejections (bad request, quota, auth) are final; transport failures are not.
func (e *GatewayError) Retryable() bool {
	return e.Type == ErrTypeTransport
}

func NewConfigError(msg string) *GatewayError {
	return &GatewayError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewTransportError(operation string, cause error) *GatewayError {
	return &GatewayError{Type: ErrTypeTransport, Operation: operation, Message: "transport failure", Cause: cause}
}

func NewProviderError(operation, msg string, statusCode int, cause error) *GatewayError {
	return &GatewayError{Type: ErrTypeProvider, Operation: operation, Message: msg, StatusCode: statusCode, Cause: cause}
}
