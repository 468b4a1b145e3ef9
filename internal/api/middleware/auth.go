package middleware

import (
	"context"
	"errors"
	"net/http"

	"blog_backend/internal/common"
	"blog_backend/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const SessionCtxKey contextKey = "session"

// Authenticator requires a verified session token placed in the context by
// jwtauth.Verify and answers 401 for anything missing or invalid.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Session token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		session, err := security.ClaimsFromMap(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), SessionCtxKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext returns the claims stored by Authenticator.
func GetSessionFromContext(ctx context.Context) (*security.SessionClaims, bool) {
	session, ok := ctx.Value(SessionCtxKey).(*security.SessionClaims)
	return session, ok
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	session, ok := GetSessionFromContext(ctx)
	if !ok {
		return "", false
	}
	return session.UserID, true
}
