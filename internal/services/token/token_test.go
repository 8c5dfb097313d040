// File: internal/services/token/token_test.go
package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := NewService("super-secret")

	tok, err := svc.Issue(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestIssue_ZeroUserID(t *testing.T) {
	t.Parallel()

	svc := NewService("super-secret")

	_, err := svc.Issue(0, "alice@example.com")
	require.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewService("super-secret")
	svc.ttl = -1 * time.Second

	tok, err := svc.Issue(7, "bob@example.com")
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewService("right-secret").Issue(7, "bob@example.com")
	require.NoError(t, err)

	_, err = NewService("wrong-secret").Verify(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_TamperedToken(t *testing.T) {
	t.Parallel()

	svc := NewService("super-secret")
	tok, err := svc.Issue(7, "bob@example.com")
	require.NoError(t, err)

	tampered := tok[:len(tok)-2] + "xx"
	_, err = svc.Verify(tampered)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewService("k").Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
