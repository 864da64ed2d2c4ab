package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
	"github.com/leadbook/crm-api/internal/core/validation"
)

// AuthService implements registration, login and the current-user lookup.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, hasher ports.PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, logger: logger}
}

// Register creates a user and opens a session for it. Email uniqueness is
// enforced by the store; a taken email yields domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	if err := validation.Register(in); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return s.session(user)
}

// Login checks the credentials and opens a session. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.Session, error) {
	if err := validation.Login(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.session(user)
}

// Me returns the user with the given id.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) session(user *domain.User) (*ports.Session, error) {
	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, ExpiresAt: exp, User: user}, nil
}
