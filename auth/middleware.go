// HTTP middleware for request authentication. Every protected route passes
// through RequireUser, which moves a request from unauthenticated to either
// authenticated (user attached to the context, next handler runs) or rejected
// (401 written, chain stops).
package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/wiryawan46/instagram-clone-be/apperror"
)

// UserResolver resolves a decoded user identifier against the credential
// store. AuthService implements it; tests substitute their own.
type UserResolver interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// RequireUser creates the request authentication middleware. It reads the
// Authorization header, verifies the bearer token with the codec, resolves
// the decoded user identifier against the store, and attaches the resolved
// user to the request context. Any failure along the way rejects the request
// with 401; the distinct token failure kinds only differ in the message and
// the log line, never in the status.
func RequireUser(codec *TokenCodec, users UserResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization token required (format: 'Bearer <token>')", nil))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				WriteError(w, r, apperror.NewAuthError("Authorization token required (format: 'Bearer <token>')", nil))
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				WriteError(w, r, apperror.NewAuthError("Authentication token is required", nil))
				return
			}

			userID, err := codec.Verify(tokenString)
			if err != nil {
				log.Printf("token verification failed: %v", err)
				WriteError(w, r, apperror.NewAuthError(tokenFailureMessage(err), err))
				return
			}

			// The token may outlive its user; confirm the subject still
			// exists before trusting the identity.
			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if apperror.IsNotFound(err) {
					log.Printf("user %d not found for valid token", userID)
					WriteError(w, r, apperror.NewAuthError("User not found", nil))
					return
				}
				WriteError(w, r, apperror.NewDatabaseError("Database error during authentication", err))
				return
			}

			ctx := NewContextWithUser(r.Context(), *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFailureMessage maps a codec failure to its client-facing message.
func tokenFailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, ErrTokenMalformed):
		return "Invalid token"
	case errors.Is(err, ErrTokenSignature):
		return "Invalid token"
	default:
		return "Authentication failed"
	}
}
