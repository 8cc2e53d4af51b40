package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/bootcampfinder/backend/internal/models"
)

const userKey contextKey = "user"

// tokenValidator verifies a session token and extracts the user ID
type tokenValidator interface {
	Validate(tokenString string) (int, error)
}

// userLoader retrieves the authenticated user's current record
type userLoader interface {
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"error":"not authorized to access this route"}`))
}

// Protect validates the bearer token and attaches the current user record to
// the request context. The record is loaded fresh on every request so role
// changes and deletions take effect immediately.
func Protect(tokens tokenValidator, users userLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			// The session cookie is set for browser clients but is not read
			// back for authentication; only the Authorization header grants
			// access.

			if token == "" {
				writeUnauthorized(w)
				return
			}

			userID, err := tokens.Validate(token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				// A valid token for a deleted user is still unauthorized
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize rejects authenticated users whose role is not in the allowed set.
// It must run after Protect.
func Authorize(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				writeUnauthorized(w)
				return
			}

			if !slices.Contains(roles, user.Role) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"success":false,"error":"not authorized to perform this action"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
