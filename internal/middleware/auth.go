package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/todoexcellence/todoex/internal/domain"
	"github.com/todoexcellence/todoex/internal/repository"
)

type contextKey string

const (
	// ContextKeyIdentity is the key for storing the identity claim in request context.
	ContextKeyIdentity contextKey = "identity"
)

// AuthMiddleware handles Bearer token authentication.
type AuthMiddleware struct {
	userRepo *repository.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(userRepo *repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
	}
}

// Authenticate validates the Bearer token and adds the caller's identity
// claim to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		user, err := m.userRepo.GetByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyIdentity, user.Identity())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentityFromContext retrieves the authenticated identity claim from
// request context.
func GetIdentityFromContext(ctx context.Context) (domain.Identity, error) {
	identity, ok := ctx.Value(ContextKeyIdentity).(domain.Identity)
	if !ok {
		return domain.Identity{}, domain.ErrInvalidToken
	}
	return identity, nil
}
