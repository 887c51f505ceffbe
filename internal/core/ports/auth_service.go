package ports

import (
	"context"

	"github.com/forohub/forum-api/internal/core/domain"
)

// AuthService covers account registration and credential-based login.
type AuthService interface {
	// Register creates a new user with the regular user role.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies the credentials and returns a bearer token for them.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
