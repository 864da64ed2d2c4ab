package service

import (
	"context"
	"errors"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

// AccessScope selects how an ownership failure is reported.
type AccessScope int

const (
	// ScopeCollection covers lookups made through the requester's own
	// collection (customer detail, a customer's leads, creating a lead).
	// Ownership is part of the query, so a foreign record is reported as
	// missing and its existence is not revealed.
	ScopeCollection AccessScope = iota
	// ScopeItem covers direct access to a single record by id (customer
	// update/delete, lead get/update/delete). The record is loaded first,
	// so a missing one is NotFound and a foreign one is Forbidden.
	ScopeItem
)

// denials is the single policy table mapping a scope to the error returned
// when the requester does not own the customer in question.
var denials = map[AccessScope]error{
	ScopeCollection: domain.ErrCustomerNotFound,
	ScopeItem:       domain.ErrForbidden,
}

// Ownership answers "may this requester act on this record?" for customers
// and, transitively through the parent customer, for leads.
type Ownership struct {
	customers ports.CustomerRepository
	leads     ports.LeadRepository
}

func NewOwnership(customers ports.CustomerRepository, leads ports.LeadRepository) *Ownership {
	return &Ownership{customers: customers, leads: leads}
}

// Customer returns the customer if requesterID owns it.
func (o *Ownership) Customer(ctx context.Context, id, requesterID string, scope AccessScope) (*domain.Customer, error) {
	if scope == ScopeCollection {
		c, err := o.customers.FindOwned(ctx, id, requesterID)
		if err != nil {
			if errors.Is(err, domain.ErrCustomerNotFound) {
				return nil, denials[scope]
			}
			return nil, err
		}
		return c, nil
	}

	c, err := o.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(requesterID) {
		return nil, denials[scope]
	}
	return c, nil
}

// Lead returns the lead and its parent customer if requesterID owns the
// parent. A lead is always accessed item-scoped: it is loaded by id, then
// its parent is looked up within the requester's customers.
func (o *Ownership) Lead(ctx context.Context, id, requesterID string) (*domain.Lead, *domain.Customer, error) {
	l, err := o.leads.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	parent, err := o.customers.FindOwned(ctx, l.CustomerID, requesterID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, nil, denials[ScopeItem]
		}
		return nil, nil, err
	}
	return l, parent, nil
}
