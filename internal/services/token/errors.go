// File: internal/services/token/errors.go
package token

import "errors"

var (
	// ErrTokenExpired means the token verified but its expiry has passed.
	// There is no refresh mechanism; the caller must authenticate again.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signatures and malformed payloads.
	ErrTokenInvalid = errors.New("token invalid")
)
