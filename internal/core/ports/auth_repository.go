package ports

import (
	"context"

	"github.com/leadbook/crm-api/internal/core/domain"
)

// UserRepository defines the credential store used for authentication.
// Create must fail with domain.ErrUserExists when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// IdentityCache keeps recently resolved users so that every authenticated
// request does not hit the credential store.
type IdentityCache interface {
	Get(ctx context.Context, userID string) (*domain.User, bool, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, userID string) error
}
