package ports

import (
	"context"

	"github.com/leadbook/crm-api/internal/core/domain"
)

// CustomerInput is the create/update payload for a customer. Optional
// fields are pointers so that an update only touches what was sent.
type CustomerInput struct {
	Name    string  `json:"name"    validate:"required,max=50"`
	Email   string  `json:"email"   validate:"required,email"`
	Phone   *string `json:"phone"   validate:"omitnil,min=1,max=20"`
	Company *string `json:"company" validate:"omitnil,min=1,max=50"`
}

// ListCustomersInput carries the parameters of the list endpoint.
type ListCustomersInput struct {
	RequesterID string
	Page        int
	Limit       int
	Search      string
}

// PageRef points at a neighbouring page.
type PageRef struct {
	Page  int
	Limit int
}

// ListCustomersResult is returned by ListCustomers.
type ListCustomersResult struct {
	Items []*domain.Customer
	Total int64
	Next  *PageRef
	Prev  *PageRef
}

// CustomerService defines use-case operations for customers. Every
// operation takes the id of the authenticated requester explicitly.
type CustomerService interface {
	ListCustomers(ctx context.Context, in ListCustomersInput) (*ListCustomersResult, error)
	GetCustomer(ctx context.Context, id, requesterID string) (*domain.CustomerDetail, error)
	CreateCustomer(ctx context.Context, in CustomerInput, requesterID string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in CustomerInput, requesterID string) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id, requesterID string) error
}
