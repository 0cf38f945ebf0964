package api

import (
	"context"
	"net/http"
	"os"
	"strings"

	"notable/pkg/utils"

	"github.com/google/uuid"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
)

// AuthMiddleware validates the bearer token and attaches the caller's user id
// to the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondErrorJSON(w, http.StatusUnauthorized, "missing token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondErrorJSON(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		token := parts[1]
		jwtSecret := os.Getenv("JWT_SECRET")

		userID, err := utils.ValidateJWT(token, jwtSecret)
		if err != nil {
			respondErrorJSON(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the authenticated caller's id from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	return id, ok
}
