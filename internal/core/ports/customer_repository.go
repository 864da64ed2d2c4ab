package ports

import (
	"context"

	"github.com/leadbook/crm-api/internal/core/domain"
)

// ListCustomersFilter carries the query parameters for listing customers.
// OwnerID is always set by the service layer.
type ListCustomersFilter struct {
	OwnerID string
	Search  string // optional: case-insensitive substring of name or email
	Skip    int64
	Limit   int64
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	// FindByID looks a customer up by id only, regardless of owner.
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	// FindOwned looks a customer up by id and owner; a customer owned by
	// someone else is reported as domain.ErrCustomerNotFound.
	FindOwned(ctx context.Context, id, ownerID string) (*domain.Customer, error)
	// List returns a page of matching customers, newest first, and the
	// number of customers matching the filter before pagination.
	List(ctx context.Context, filter ListCustomersFilter) ([]*domain.Customer, int64, error)
	// ListByOwner returns every customer of an owner, unpaginated.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}
