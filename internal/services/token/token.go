// File: internal/services/token/token.go
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an issued token.
const TokenTTL = 24 * time.Hour

// Claims is the identity a verified token carries.
type Claims struct {
	UserID uint
	Email  string
}

// Service issues and verifies signed, time-limited identity tokens. Tokens are
// stateless: validity is determined solely by signature and expiry, never by a
// revocation list.
type Service struct {
	secretKey []byte
	ttl       time.Duration
}

func NewService(secretKey string) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		ttl:       TokenTTL,
	}
}

// Issue produces a signed token embedding the user identity and a 24h expiry.
func (s *Service) Issue(userID uint, email string) (string, error) {
	if userID == 0 {
		return "", errors.New("user ID cannot be zero")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secretKey)
}

// Verify checks signature and expiry and returns the embedded identity.
// Expired tokens fail with ErrTokenExpired; everything else that does not
// verify fails with ErrTokenInvalid.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrTokenInvalid
	}

	userIDFloat, ok := mapClaims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return nil, ErrTokenInvalid
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return &Claims{UserID: uint(userIDFloat), Email: email}, nil
}
