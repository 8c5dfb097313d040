// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/niksalehi/go-visionchat/internal/domain"
	"github.com/niksalehi/go-visionchat/internal/services/user_services"
)

// NewAuthMiddleware guards a route with bearer-token identity resolution.
// Every request behind it carries a domain.Principal in its context; nothing
// unauthenticated gets through.
func NewAuthMiddleware(authService *user_services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bearerToken, ok := extractBearerToken(r)
			if !ok {
				log.Printf("[AuthMiddleware] Missing or malformed Authorization header")
				writeUnauthorized(w, "Missing bearer token")
				return
			}

			principal, err := authService.ResolvePrincipal(r.Context(), bearerToken)
			if err != nil {
				log.Printf("[AuthMiddleware] Identity resolution failed: %v", err)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, *principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the authenticated principal stored by the middleware.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(domain.Principal)
	return principal, ok
}

func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
