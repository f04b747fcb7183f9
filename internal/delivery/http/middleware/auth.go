package middleware

import (
	"context"
	"net/http"
	"strings"

	h "cricturf/internal/delivery/http/helpers"
	"cricturf/internal/domain"
)

type contextKey string

const adminSubjectKey contextKey = "adminSubject"

// SetAdminSubject returns a context with the admin session subject set.
// The admin flag travels as an explicit context value, never as global state.
func SetAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey, subject)
}

// AdminFromContext reports whether the request carries a verified admin session.
func AdminFromContext(ctx context.Context) bool {
	s, ok := ctx.Value(adminSubjectKey).(string)
	return ok && s != ""
}

// RequireAdmin returns a wrapper that validates the Bearer session token and
// marks the request context as an admin session. If the token is missing or
// invalid, it responds with 401 and does not call next.
func RequireAdmin(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetAdminSubject(r.Context(), subject))
			next(w, r)
		}
	}
}
