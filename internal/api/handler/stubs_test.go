package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.Session, error)
	loginFn    func(ctx context.Context, in ports.LoginInput) (*ports.Session, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.Session, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.Session, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

type stubCustomerService struct {
	listFn   func(ctx context.Context, in ports.ListCustomersInput) (*ports.ListCustomersResult, error)
	getFn    func(ctx context.Context, id, requesterID string) (*domain.CustomerDetail, error)
	createFn func(ctx context.Context, in ports.CustomerInput, requesterID string) (*domain.Customer, error)
	updateFn func(ctx context.Context, id string, in ports.CustomerInput, requesterID string) (*domain.Customer, error)
	deleteFn func(ctx context.Context, id, requesterID string) error
}

func (s *stubCustomerService) ListCustomers(ctx context.Context, in ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubCustomerService) GetCustomer(ctx context.Context, id, requesterID string) (*domain.CustomerDetail, error) {
	return s.getFn(ctx, id, requesterID)
}

func (s *stubCustomerService) CreateCustomer(ctx context.Context, in ports.CustomerInput, requesterID string) (*domain.Customer, error) {
	return s.createFn(ctx, in, requesterID)
}

func (s *stubCustomerService) UpdateCustomer(ctx context.Context, id string, in ports.CustomerInput, requesterID string) (*domain.Customer, error) {
	return s.updateFn(ctx, id, in, requesterID)
}

func (s *stubCustomerService) DeleteCustomer(ctx context.Context, id, requesterID string) error {
	return s.deleteFn(ctx, id, requesterID)
}

type stubLeadService struct {
	listFn     func(ctx context.Context, customerID, requesterID string) ([]*domain.Lead, error)
	getFn      func(ctx context.Context, id, requesterID string) (*domain.LeadDetail, error)
	createFn   func(ctx context.Context, customerID string, in ports.LeadInput, requesterID string) (*domain.Lead, error)
	updateFn   func(ctx context.Context, id string, in ports.LeadInput, requesterID string) (*domain.Lead, error)
	deleteFn   func(ctx context.Context, id, requesterID string) error
	byStatusFn func(ctx context.Context, status, requesterID string) ([]*domain.LeadDetail, error)
}

func (s *stubLeadService) ListLeads(ctx context.Context, customerID, requesterID string) ([]*domain.Lead, error) {
	return s.listFn(ctx, customerID, requesterID)
}

func (s *stubLeadService) GetLead(ctx context.Context, id, requesterID string) (*domain.LeadDetail, error) {
	return s.getFn(ctx, id, requesterID)
}

func (s *stubLeadService) CreateLead(ctx context.Context, customerID string, in ports.LeadInput, requesterID string) (*domain.Lead, error) {
	return s.createFn(ctx, customerID, in, requesterID)
}

func (s *stubLeadService) UpdateLead(ctx context.Context, id string, in ports.LeadInput, requesterID string) (*domain.Lead, error) {
	return s.updateFn(ctx, id, in, requesterID)
}

func (s *stubLeadService) DeleteLead(ctx context.Context, id, requesterID string) error {
	return s.deleteFn(ctx, id, requesterID)
}

func (s *stubLeadService) ListLeadsByStatus(ctx context.Context, status, requesterID string) ([]*domain.LeadDetail, error) {
	return s.byStatusFn(ctx, status, requesterID)
}

// newContext builds an echo context for method/target with an optional JSON
// body and, when userID is set, the identity the Auth middleware would attach.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if userID != "" {
		c.Set("user", &domain.User{ID: userID, Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	}
	return c, rec
}

// httpCode returns the status carried by an *echo.HTTPError, or 0.
func httpCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
