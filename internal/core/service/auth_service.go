package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates a new user. The email pre-check and the insert are two
// separate store calls; concurrent registrations of the same email may both
// pass the check, leaving the store's unique index as the only backstop.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Profile, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrBlankName
	}

	email := strings.TrimSpace(input.Email)
	_, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailAlreadyRegistered
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmailAlreadyRegistered) {
			s.logger.Error().Err(err).Msg("failed to create user")
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	profile := created.Profile()
	return &profile, nil
}

// Login checks the credential pair and issues a token. UserNotFound and
// InvalidCredentials stay distinct here; the transport decides what the caller sees.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("email", email).Msg("login failed: unknown email")
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn().Int64("user_id", user.ID).Msg("login failed: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")
	return &ports.LoginResult{Token: token, User: user.Profile()}, nil
}
