package ports

import (
	"context"
	"time"

	"github.com/leadbook/crm-api/internal/core/domain"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// IdentityResolver turns a bearer token into a live user.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// TokenService issues and verifies signed, expiring tokens that carry a
// user identifier.
type TokenService interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	Verify(token string) (userID string, err error)
}

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
