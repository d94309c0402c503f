package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager([]byte("super-secret"))

	tok, err := m.Issue("Ana", "ana@x.com")
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerify_Expired(t *testing.T) {
	issued := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	m := NewTokenManager([]byte("secret"))
	m.now = fixedClock(issued)

	tok, err := m.Issue("Ana", "ana@x.com")
	require.NoError(t, err)

	m.now = fixedClock(issued.Add(59 * time.Minute))
	_, err = m.Verify(tok)
	require.NoError(t, err)

	// Expiry is exclusive: at exactly exp the token is already dead.
	m.now = fixedClock(issued.Add(TokenTTL))
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)

	m.now = fixedClock(issued.Add(2 * time.Hour))
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func flipFirst(s string) string {
	if s[0] == 'A' {
		return "B" + s[1:]
	}
	return "A" + s[1:]
}

func TestVerify_TamperedPayload(t *testing.T) {
	m := NewTokenManager([]byte("secret"))
	tok, err := m.Issue("Ana", "ana@x.com")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	parts[1] = flipFirst(parts[1])

	_, err = m.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_TamperedSignature(t *testing.T) {
	m := NewTokenManager([]byte("secret"))
	tok, err := m.Issue("Ana", "ana@x.com")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	parts[2] = flipFirst(parts[2])

	_, err = m.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	tok, err := NewTokenManager([]byte("right-secret")).Issue("Ana", "ana@x.com")
	require.NoError(t, err)

	_, err = NewTokenManager([]byte("wrong-secret")).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	_, err := NewTokenManager([]byte("k")).Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	secret := []byte("secret")
	claims := &Claims{
		Name:  "Ana",
		Email: "ana@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager(secret).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Name: "Ana"}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager(secret).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
