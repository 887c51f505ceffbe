package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Clear(ctx context.Context, username string) error
}

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, throttle LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, throttle: throttle, log: log}
}

// Register creates a new account with the regular user role. Admin accounts
// are never created through this path; the only admin is seeded at startup.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credentials and issues a bearer token. An unknown
// username is reported as invalid credentials, not as not-found, so the
// endpoint cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	blocked, err := s.throttle.TooManyFailures(ctx, username)
	if err != nil {
		// Throttle store unavailable: allow the attempt rather than lock
		// everyone out.
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed")
	} else if blocked {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if recErr := s.throttle.RecordFailure(ctx, username); recErr != nil {
			s.log.Warn().Err(recErr).Str("username", username).Msg("failed to record login failure")
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	if clrErr := s.throttle.Clear(ctx, username); clrErr != nil {
		s.log.Warn().Err(clrErr).Str("username", username).Msg("failed to clear login failures")
	}

	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user logged in")
	return token, user, nil
}
