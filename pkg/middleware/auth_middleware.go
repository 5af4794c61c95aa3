package middleware

import (
	"context"
	"net/http"
	"strings"

	"notes-service/pkg/jwtutil"
	"notes-service/pkg/response"
)

type contextKey string

const (
	userIDKey     contextKey = "user_id"
	userEmailKey  contextKey = "user_email"
	resetEmailKey contextKey = "reset_email"
)

// AuthMiddleware gates routes on bearer tokens. Session tokens and
// reset-authorization tokens are separate gates: one never passes the
// other's.
type AuthMiddleware struct {
	tokens *jwtutil.Manager
}

func NewAuthMiddleware(tokens *jwtutil.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func extractBearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireSession admits only full session tokens and injects the user's id
// and email into the request context.
func (am *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := am.verify(w, r, jwtutil.PurposeSession)
		if !ok {
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireResetAuth admits only reset-authorization tokens and injects the
// email they were issued for.
func (am *AuthMiddleware) RequireResetAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := am.verify(w, r, jwtutil.PurposePasswordReset)
		if !ok {
			return
		}
		ctx := context.WithValue(r.Context(), resetEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (am *AuthMiddleware) verify(w http.ResponseWriter, r *http.Request, purpose string) (*jwtutil.Claims, bool) {
	token, ok := extractBearer(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "No token provided")
		return nil, false
	}
	claims, err := am.tokens.Validate(token)
	if err != nil || claims.Purpose != purpose {
		response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}
	return claims, true
}

// UserFromContext returns the authenticated user's id and email set by
// RequireSession.
func UserFromContext(ctx context.Context) (id, email string, ok bool) {
	id, idOK := ctx.Value(userIDKey).(string)
	email, emailOK := ctx.Value(userEmailKey).(string)
	return id, email, idOK && emailOK && id != ""
}

// ResetEmailFromContext returns the email a reset-authorization token was
// bound to, set by RequireResetAuth.
func ResetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(resetEmailKey).(string)
	return email, ok && email != ""
}
