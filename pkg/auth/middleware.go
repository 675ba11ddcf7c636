package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/storage"
)

const bearerPrefix = "Bearer "

// UserResolver loads the user record for a verified token. The
// implementation must exclude the password hash from the projection.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*api.User, error)
}

// Middleware creates the authentication gate: HTTP middleware that
// extracts the bearer token, verifies it, resolves the user, and binds
// the Principal to the request context. It short-circuits with 401 on
// any failure, so handler logic never runs unauthenticated.
//
// A valid token whose user no longer exists (deleted account) is
// rejected the same way as an invalid token.
func Middleware(tokens *TokenService, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				writeUnauthenticated(w, "missing bearer token")
				return
			}

			tokenString := strings.TrimPrefix(header, bearerPrefix)
			if tokenString == "" {
				writeUnauthenticated(w, "missing bearer token")
				return
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				slog.Debug("token verification failed",
					"path", r.URL.Path,
					"error", err,
				)
				if errors.Is(err, ErrTokenExpired) {
					writeUnauthenticated(w, "token expired")
				} else {
					writeUnauthenticated(w, "invalid token")
				}
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					// Valid token for a since-deleted account.
					slog.Warn("token references unknown user", "user_id", userID)
					writeUnauthenticated(w, "invalid token")
					return
				}
				slog.Error("resolving user for token", "user_id", userID, "error", err)
				writeServerError(w)
				return
			}

			principal := &Principal{
				UserID:       user.ID,
				Username:     user.Username,
				Email:        user.Email,
				ProfileImage: user.ProfileImage,
			}

			next.ServeHTTP(w, r.WithContext(SetPrincipal(r.Context(), principal)))
		})
	}
}

func writeUnauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.NewUnauthenticatedError(message)})
}

func writeServerError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: api.NewServerError("internal server error")})
}
