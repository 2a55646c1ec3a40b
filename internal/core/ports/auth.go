package ports

import (
	"context"

	"github.com/aiblog/blog-platform/internal/core/domain"
)

// AuthResult pairs a freshly issued token with the sanitized identity.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}

// AuthService defines the credential and session use-cases.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// AdminLogin behaves like Login but rejects non-admin accounts with
	// the same generic credential error.
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// TokenIssuer mints signed session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier validates a presented token and returns its claims.
// Malformed, mis-signed, and expired tokens all yield domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.TokenClaims, error)
}
