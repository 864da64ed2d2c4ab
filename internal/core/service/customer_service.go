package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
	"github.com/leadbook/crm-api/internal/core/validation"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type CustomerService struct {
	customers ports.CustomerRepository
	leads     ports.LeadRepository
	access    *Ownership
	logger    zerolog.Logger
	now       func() time.Time
}

func NewCustomerService(customers ports.CustomerRepository, leads ports.LeadRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		leads:     leads,
		access:    NewOwnership(customers, leads),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListCustomers returns one page of the requester's customers, newest first.
// The total is counted over the search-filtered set before pagination.
func (s *CustomerService) ListCustomers(ctx context.Context, in ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
	page := in.Page
	if page < 1 {
		page = defaultPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// page*limit must stay representable.
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}
	skip := (page - 1) * limit

	items, total, err := s.customers.List(ctx, ports.ListCustomersFilter{
		OwnerID: in.RequesterID,
		Search:  in.Search,
		Skip:    int64(skip),
		Limit:   int64(limit),
	})
	if err != nil {
		return nil, err
	}

	res := &ports.ListCustomersResult{Items: items, Total: total}
	if int64(skip+limit) < total {
		res.Next = &ports.PageRef{Page: page + 1, Limit: limit}
	}
	if skip > 0 {
		res.Prev = &ports.PageRef{Page: page - 1, Limit: limit}
	}
	return res, nil
}

// GetCustomer returns a customer of the requester with its leads attached.
// A customer owned by someone else is reported as not found.
func (s *CustomerService) GetCustomer(ctx context.Context, id, requesterID string) (*domain.CustomerDetail, error) {
	c, err := s.access.Customer(ctx, id, requesterID, ScopeCollection)
	if err != nil {
		return nil, err
	}

	leads, err := s.leads.ListByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	detail := &domain.CustomerDetail{Customer: *c, Leads: make([]domain.LeadSummary, 0, len(leads))}
	for _, l := range leads {
		detail.Leads = append(detail.Leads, domain.LeadSummary{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Status:      l.Status,
			Value:       l.Value,
			CreatedAt:   l.CreatedAt,
		})
	}
	return detail, nil
}

// CreateCustomer stores a new customer owned by the requester.
func (s *CustomerService) CreateCustomer(ctx context.Context, in ports.CustomerInput, requesterID string) (*domain.Customer, error) {
	if err := validation.Customer(in); err != nil {
		return nil, err
	}

	c := &domain.Customer{
		Name:      in.Name,
		Email:     in.Email,
		OwnerID:   requesterID,
		CreatedAt: s.now(),
	}
	applyCustomerOptionals(c, in)

	if err := s.customers.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("owner_id", requesterID).Msg("failed to create customer")
		return nil, err
	}

	s.logger.Info().Str("customer_id", c.ID).Str("owner_id", requesterID).Msg("customer created")
	return c, nil
}

// UpdateCustomer applies the payload to a customer the requester owns.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, in ports.CustomerInput, requesterID string) (*domain.Customer, error) {
	if err := validation.Customer(in); err != nil {
		return nil, err
	}

	c, err := s.access.Customer(ctx, id, requesterID, ScopeItem)
	if err != nil {
		return nil, err
	}

	c.Name = in.Name
	c.Email = in.Email
	applyCustomerOptionals(c, in)

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Str("customer_id", c.ID).Msg("customer updated")
	return c, nil
}

// DeleteCustomer removes a customer the requester owns together with all
// of its leads. Leads are removed before the customer itself.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id, requesterID string) error {
	c, err := s.access.Customer(ctx, id, requesterID, ScopeItem)
	if err != nil {
		return err
	}

	removed, err := s.leads.DeleteByCustomer(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, c.ID); err != nil {
		return err
	}

	s.logger.Info().Str("customer_id", c.ID).Int64("leads_removed", removed).Msg("customer deleted")
	return nil
}

func applyCustomerOptionals(c *domain.Customer, in ports.CustomerInput) {
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Company != nil {
		c.Company = *in.Company
	}
}
