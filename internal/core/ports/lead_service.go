package ports

import (
	"context"

	"github.com/leadbook/crm-api/internal/core/domain"
)

// LeadInput is the create/update payload for a lead.
type LeadInput struct {
	Title       string   `json:"title"       validate:"required,max=100"`
	Description *string  `json:"description" validate:"omitnil,min=1,max=500"`
	Status      *string  `json:"status"      validate:"omitnil,min=1,oneof=New Contacted Converted Lost"`
	Value       *float64 `json:"value"       validate:"omitnil,min=0"`
	CustomerID  string   `json:"customerId"  validate:"required"`
}

// LeadService defines use-case operations for leads. Access to a lead is
// always derived from ownership of its parent customer.
type LeadService interface {
	ListLeads(ctx context.Context, customerID, requesterID string) ([]*domain.Lead, error)
	GetLead(ctx context.Context, id, requesterID string) (*domain.LeadDetail, error)
	CreateLead(ctx context.Context, customerID string, in LeadInput, requesterID string) (*domain.Lead, error)
	UpdateLead(ctx context.Context, id string, in LeadInput, requesterID string) (*domain.Lead, error)
	DeleteLead(ctx context.Context, id, requesterID string) error
	ListLeadsByStatus(ctx context.Context, status, requesterID string) ([]*domain.LeadDetail, error)
}
