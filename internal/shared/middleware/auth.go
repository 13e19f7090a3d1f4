package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"finbook/internal/shared/auth"
	"finbook/internal/shared/logging"
)

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
	EmailKey  ContextKey = "email"
)

// AuthCookieName is the HttpOnly cookie carrying the access token for browser clients.
const AuthCookieName = "access_token"

// Auth rejects requests without a valid token before they reach next.
func Auth(jwt *auth.JWT) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := tokenFromRequest(r)
			if !ok {
				unauthenticated(w)
				return
			}

			claims, err := jwt.Validate(token)
			if err != nil {
				logging.FromContext(r.Context()).Debug("rejected token", logging.FieldError, err)
				unauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			ctx = logging.WithContext(ctx, logging.FromContext(ctx).With(logging.FieldUserID, claims.UserID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user's id.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."})
}
