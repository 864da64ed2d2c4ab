package handler

import (
	"time"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

// envelope wraps every single-resource response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// listEnvelope wraps collection responses. Count is the number of items in
// Data, not the total number of matches.
type listEnvelope struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Pagination *pagination `json:"pagination,omitempty"`
	Data       any         `json:"data"`
}

type pageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type pagination struct {
	Next *pageRef `json:"next,omitempty"`
	Prev *pageRef `json:"prev,omitempty"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type userResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type customerDetailResponse struct {
	customerResponse
	Leads []leadSummaryResponse `json:"leads"`
}

type leadSummaryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Value       float64   `json:"value"`
	CreatedAt   time.Time `json:"createdAt"`
}

type customerRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type leadResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Status      string               `json:"status"`
	Value       float64              `json:"value"`
	CustomerID  string               `json:"customerId"`
	Customer    *customerRefResponse `json:"customer,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ── mappers ──────────────────────────────────────────────────────────────────

func toUserResponse(u *domain.User, withCreatedAt bool) userResponse {
	r := userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	if withCreatedAt && !u.CreatedAt.IsZero() {
		t := u.CreatedAt
		r.CreatedAt = &t
	}
	return r
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
	}
}

func toCustomerDetailResponse(d *domain.CustomerDetail) customerDetailResponse {
	leads := make([]leadSummaryResponse, 0, len(d.Leads))
	for _, l := range d.Leads {
		leads = append(leads, leadSummaryResponse{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Status:      string(l.Status),
			Value:       l.Value,
			CreatedAt:   l.CreatedAt,
		})
	}
	return customerDetailResponse{customerResponse: toCustomerResponse(&d.Customer), Leads: leads}
}

func toLeadResponse(l *domain.Lead) leadResponse {
	return leadResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Status:      string(l.Status),
		Value:       l.Value,
		CustomerID:  l.CustomerID,
		CreatedAt:   l.CreatedAt,
	}
}

func toLeadDetailResponse(d *domain.LeadDetail) leadResponse {
	r := toLeadResponse(&d.Lead)
	r.Customer = &customerRefResponse{ID: d.Customer.ID, Name: d.Customer.Name, Email: d.Customer.Email}
	return r
}

func toPagination(res *ports.ListCustomersResult) *pagination {
	p := &pagination{}
	if res.Next != nil {
		p.Next = &pageRef{Page: res.Next.Page, Limit: res.Next.Limit}
	}
	if res.Prev != nil {
		p.Prev = &pageRef{Page: res.Prev.Page, Limit: res.Prev.Limit}
	}
	return p
}
