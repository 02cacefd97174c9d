// Package auth handles JWT issuance and verification
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/worklog/backend/internal/errs"
)

// Claims carries the verified identity of an access token holder
type Claims struct {
	UserID int
	Role   string
}

// TokenIssuer creates and verifies signed, time-limited tokens.
// Access and refresh tokens are signed with separate secrets; verifying a
// token against the wrong secret fails rather than silently succeeding.
type TokenIssuer struct {
	accessSecret  string
	refreshSecret string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenIssuer creates a new token issuer
func NewTokenIssuer(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// IssueAccessToken creates a short-lived access token carrying the user ID and role
func (ti *TokenIssuer) IssueAccessToken(userID int, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ti.accessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ti.accessSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// IssueRefreshToken creates a long-lived refresh token carrying only the user
// ID and a purpose marker. Its expiry matches the refresh cookie max-age.
func (ti *TokenIssuer) IssueRefreshToken(userID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       userID,
		"token_use": "refresh",
		"iat":       now.Unix(),
		"exp":       now.Add(ti.refreshExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ti.refreshSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// VerifyAccessToken validates an access token and returns its claims
func (ti *TokenIssuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	claims, err := ti.parse(tokenString, ti.accessSecret)
	if err != nil {
		return nil, err
	}

	// A refresh token presented as an access token must be rejected even
	// if the secrets were ever misconfigured to match
	if _, ok := claims["token_use"]; ok {
		return nil, errs.ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, errs.ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, errs.ErrInvalidToken
	}

	return &Claims{UserID: int(sub), Role: role}, nil
}

// VerifyRefreshToken validates a refresh token and returns the subject user ID
func (ti *TokenIssuer) VerifyRefreshToken(tokenString string) (int, error) {
	claims, err := ti.parse(tokenString, ti.refreshSecret)
	if err != nil {
		return 0, err
	}

	tokenUse, ok := claims["token_use"].(string)
	if !ok || tokenUse != "refresh" {
		return 0, errs.ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, errs.ErrInvalidToken
	}

	return int(sub), nil
}

// parse verifies signature, shape and expiry against the given secret
func (ti *TokenIssuer) parse(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errs.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errs.ErrInvalidToken
	}

	return claims, nil
}
