package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/glowmart/pkg/auth"
	"github.com/shashiranjanraj/glowmart/pkg/response"
)

// RequireAdmin gates a route behind a valid admin bearer token.
//
// 401 when the Authorization header is missing or malformed, or the token
// fails verification (bad signature, expired). 403 when the token
// verifies but lacks the admin claim. On success the decoded claims are
// attached to the request context.
func RequireAdmin(m *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Message(w, http.StatusUnauthorized, "Missing token")
				return
			}

			claims, err := m.Validate(token)
			if err != nil {
				response.Message(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if !claims.IsAdmin {
				response.Message(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
