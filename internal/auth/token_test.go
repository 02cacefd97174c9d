package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklog/backend/internal/errs"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
}

func TestNewTokenIssuer(t *testing.T) {
	issuer := NewTokenIssuer("a", "r", time.Minute, time.Hour)

	assert.NotNil(t, issuer)
	assert.Equal(t, "a", issuer.accessSecret)
	assert.Equal(t, "r", issuer.refreshSecret)
	assert.Equal(t, time.Minute, issuer.accessExpiry)
	assert.Equal(t, time.Hour, issuer.refreshExpiry)
}

func TestTokenIssuer_AccessTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer()

	tokenString, err := issuer.IssueAccessToken(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := issuer.VerifyAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenIssuer_RefreshTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer()

	tokenString, err := issuer.IssueRefreshToken(7)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := issuer.VerifyRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestTokenIssuer_ExpiredAccessToken(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", -time.Minute, 168*time.Hour)

	tokenString, err := issuer.IssueAccessToken(1, "employee")
	require.NoError(t, err)

	claims, err := issuer.VerifyAccessToken(tokenString)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenIssuer_ExpiredRefreshToken(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, -time.Minute)

	tokenString, err := issuer.IssueRefreshToken(1)
	require.NoError(t, err)

	userID, err := issuer.VerifyRefreshToken(tokenString)
	assert.Zero(t, userID)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenIssuer_RefreshTokenRejectedAsAccessToken(t *testing.T) {
	issuer := newTestIssuer()

	refreshToken, err := issuer.IssueRefreshToken(1)
	require.NoError(t, err)

	claims, err := issuer.VerifyAccessToken(refreshToken)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenIssuer_AccessTokenRejectedAsRefreshToken(t *testing.T) {
	issuer := newTestIssuer()

	accessToken, err := issuer.IssueAccessToken(1, "employee")
	require.NoError(t, err)

	userID, err := issuer.VerifyRefreshToken(accessToken)
	assert.Zero(t, userID)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenIssuer_RefreshRejectedAsAccessWithSharedSecret(t *testing.T) {
	// Even with identical secrets the purpose marker keeps the token
	// classes apart
	issuer := NewTokenIssuer("same-secret", "same-secret", 15*time.Minute, 168*time.Hour)

	refreshToken, err := issuer.IssueRefreshToken(1)
	require.NoError(t, err)

	claims, err := issuer.VerifyAccessToken(refreshToken)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := newTestIssuer()
	other := NewTokenIssuer("other-access", "other-refresh", 15*time.Minute, 168*time.Hour)

	accessToken, err := issuer.IssueAccessToken(1, "employee")
	require.NoError(t, err)

	claims, err := other.VerifyAccessToken(accessToken)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	refreshToken, err := issuer.IssueRefreshToken(1)
	require.NoError(t, err)

	userID, err := other.VerifyRefreshToken(refreshToken)
	assert.Zero(t, userID)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenIssuer_MalformedToken(t *testing.T) {
	issuer := newTestIssuer()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOjF9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.VerifyAccessToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, errs.ErrInvalidToken)

			userID, err := issuer.VerifyRefreshToken(tt.token)
			assert.Zero(t, userID)
			assert.ErrorIs(t, err, errs.ErrInvalidToken)
		})
	}
}
