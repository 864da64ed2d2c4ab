package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
	"github.com/leadbook/crm-api/internal/core/validation"
)

type LeadService struct {
	customers ports.CustomerRepository
	leads     ports.LeadRepository
	access    *Ownership
	logger    zerolog.Logger
	now       func() time.Time
}

func NewLeadService(customers ports.CustomerRepository, leads ports.LeadRepository, logger zerolog.Logger) *LeadService {
	return &LeadService{
		customers: customers,
		leads:     leads,
		access:    NewOwnership(customers, leads),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListLeads returns every lead of a customer the requester owns.
func (s *LeadService) ListLeads(ctx context.Context, customerID, requesterID string) ([]*domain.Lead, error) {
	c, err := s.access.Customer(ctx, customerID, requesterID, ScopeCollection)
	if err != nil {
		return nil, err
	}
	return s.leads.ListByCustomer(ctx, c.ID)
}

// GetLead returns a lead with its parent's name and email.
func (s *LeadService) GetLead(ctx context.Context, id, requesterID string) (*domain.LeadDetail, error) {
	l, parent, err := s.access.Lead(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	return &domain.LeadDetail{Lead: *l, Customer: refOf(parent)}, nil
}

// CreateLead stores a new lead under customerID. The parent always comes
// from customerID; any parent id carried in the payload is replaced.
func (s *LeadService) CreateLead(ctx context.Context, customerID string, in ports.LeadInput, requesterID string) (*domain.Lead, error) {
	in.CustomerID = customerID
	if err := validation.Lead(in); err != nil {
		return nil, err
	}

	c, err := s.access.Customer(ctx, customerID, requesterID, ScopeCollection)
	if err != nil {
		return nil, err
	}

	l := &domain.Lead{
		Title:      in.Title,
		Status:     domain.LeadNew,
		CustomerID: c.ID,
		CreatedAt:  s.now(),
	}
	applyLeadOptionals(l, in)

	if err := s.leads.Create(ctx, l); err != nil {
		s.logger.Error().Err(err).Str("customer_id", c.ID).Msg("failed to create lead")
		return nil, err
	}

	s.logger.Info().Str("lead_id", l.ID).Str("customer_id", c.ID).Msg("lead created")
	return l, nil
}

// UpdateLead applies the payload to a lead whose parent the requester owns.
// The parent of a lead never changes.
func (s *LeadService) UpdateLead(ctx context.Context, id string, in ports.LeadInput, requesterID string) (*domain.Lead, error) {
	if err := validation.Lead(in); err != nil {
		return nil, err
	}

	l, _, err := s.access.Lead(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	l.Title = in.Title
	applyLeadOptionals(l, in)

	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info().Str("lead_id", l.ID).Str("status", string(l.Status)).Msg("lead updated")
	return l, nil
}

// DeleteLead removes a lead whose parent the requester owns.
func (s *LeadService) DeleteLead(ctx context.Context, id, requesterID string) error {
	l, _, err := s.access.Lead(ctx, id, requesterID)
	if err != nil {
		return err
	}
	if err := s.leads.Delete(ctx, l.ID); err != nil {
		return err
	}

	s.logger.Info().Str("lead_id", l.ID).Msg("lead deleted")
	return nil
}

// ListLeadsByStatus returns the requester's leads, across all of their
// customers, whose status equals status exactly. An unknown status simply
// matches nothing.
func (s *LeadService) ListLeadsByStatus(ctx context.Context, status, requesterID string) ([]*domain.LeadDetail, error) {
	owned, err := s.customers.ListByOwner(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.LeadDetail, 0)
	if len(owned) == 0 {
		return out, nil
	}

	byID := make(map[string]*domain.Customer, len(owned))
	ids := make([]string, 0, len(owned))
	for _, c := range owned {
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	leads, err := s.leads.ListByCustomersAndStatus(ctx, ids, status)
	if err != nil {
		return nil, err
	}

	for _, l := range leads {
		out = append(out, &domain.LeadDetail{Lead: *l, Customer: refOf(byID[l.CustomerID])})
	}
	return out, nil
}

func refOf(c *domain.Customer) domain.CustomerRef {
	if c == nil {
		return domain.CustomerRef{}
	}
	return domain.CustomerRef{ID: c.ID, Name: c.Name, Email: c.Email}
}

func applyLeadOptionals(l *domain.Lead, in ports.LeadInput) {
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Status != nil && *in.Status != "" {
		l.Status = domain.LeadStatus(*in.Status)
	}
	if in.Value != nil {
		l.Value = *in.Value
	}
}
