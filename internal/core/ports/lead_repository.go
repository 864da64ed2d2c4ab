package ports

import (
	"context"

	"github.com/leadbook/crm-api/internal/core/domain"
)

// LeadRepository defines persistence operations for leads.
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) error
	FindByID(ctx context.Context, id string) (*domain.Lead, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Lead, error)
	// ListByCustomersAndStatus returns the leads of any of the given
	// customers whose status equals status exactly.
	ListByCustomersAndStatus(ctx context.Context, customerIDs []string, status string) ([]*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	Delete(ctx context.Context, id string) error
	// DeleteByCustomer removes every lead of a customer and reports how many
	// were removed.
	DeleteByCustomer(ctx context.Context, customerID string) (int64, error)
}
