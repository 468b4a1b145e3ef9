package security

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog_backend/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

const (
	claimUserID   = "id"
	claimUsername = "username"
	claimIssuedAt = "iat"
)

// SessionClaims is the decoded session payload returned by /profile.
type SessionClaims struct {
	Username string `json:"username"`
	UserID   string `json:"id"`
	IssuedAt int64  `json:"iat"`
}

// TokenIssuer signs and verifies HS256 session tokens. Tokens carry no
// expiry and stay valid until the signing key changes.
type TokenIssuer struct {
	auth *jwtauth.JWTAuth
}

func NewTokenIssuer(key []byte) *TokenIssuer {
	return &TokenIssuer{auth: jwtauth.New("HS256", key, nil)}
}

// JWTAuth exposes the underlying verifier for the router middleware.
func (t *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

func (t *TokenIssuer) GenerateToken(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		claimUsername: username,
		claimUserID:   userID,
	}
	jwtauth.SetIssuedNow(claims)
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// ParseToken verifies the signature and returns the session payload.
func (t *TokenIssuer) ParseToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token not found: %w", common.ErrUnauthorized)
	}
	token, err := jwtauth.VerifyToken(t.auth, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}
	return ClaimsFromMap(claims)
}

// TokenFromCookie is a jwtauth token finder for the session cookie.
func TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ClaimsFromMap validates and converts raw claims into SessionClaims.
func ClaimsFromMap(claims jwt.MapClaims) (*SessionClaims, error) {
	userID, err := GetUserIDFromClaims(claims)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}
	username, err := GetUsernameFromClaims(claims)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}
	return &SessionClaims{
		Username: username,
		UserID:   userID,
		IssuedAt: GetIssuedAtFromClaims(claims),
	}, nil
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims[claimUserID].(string)
	if !ok || id == "" {
		return "", errors.New("id claim is missing or not a string")
	}
	return id, nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims[claimUsername].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}

// GetIssuedAtFromClaims returns the iat claim as unix seconds, or 0 when absent.
func GetIssuedAtFromClaims(claims jwt.MapClaims) int64 {
	switch v := claims[claimIssuedAt].(type) {
	case time.Time:
		return v.Unix()
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
