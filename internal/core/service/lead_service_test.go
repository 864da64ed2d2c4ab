package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

func newLeadFixture() (*LeadService, *stubCustomerRepo, *stubLeadRepo) {
	customers := newStubCustomerRepo()
	leads := newStubLeadRepo()
	return NewLeadService(customers, leads, discardLogger), customers, leads
}

// ---------------------------------------------------------------------------
// CreateLead
// ---------------------------------------------------------------------------

func TestLeadService_Create_Defaults(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	c := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())

	l, err := svc.CreateLead(context.Background(), c.ID, ports.LeadInput{Title: "Deal1"}, "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Status != domain.LeadNew {
		t.Errorf("expected default status New, got %q", l.Status)
	}
	if l.Value != 0 {
		t.Errorf("expected default value 0, got %v", l.Value)
	}
	if l.CustomerID != c.ID {
		t.Errorf("expected parent %q, got %q", c.ID, l.CustomerID)
	}
	if _, ok := leads.byID[l.ID]; !ok {
		t.Error("lead not persisted")
	}
}

func TestLeadService_Create_IgnoresPayloadParent(t *testing.T) {
	svc, customers, _ := newLeadFixture()
	mine := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())
	theirs := seedCustomer(customers, "Eve", "eve@x.com", "user-b", time.Now().UTC())

	l, err := svc.CreateLead(context.Background(), mine.ID, ports.LeadInput{
		Title:       "Deal1",
		Description: strPtr("first call"),
		Status:      strPtr("Contacted"),
		Value:       floatPtr(1500),
		CustomerID:  theirs.ID,
	}, "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.CustomerID != mine.ID {
		t.Errorf("route parent must win: got %q, want %q", l.CustomerID, mine.ID)
	}
	if l.Description != "first call" || l.Status != domain.LeadContacted || l.Value != 1500 {
		t.Errorf("fields not applied: %+v", l)
	}
}

func TestLeadService_Create_ForeignOrMissingCustomerIsNotFound(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	c := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())

	if _, err := svc.CreateLead(context.Background(), c.ID, ports.LeadInput{Title: "x"}, "user-b"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("foreign: expected ErrCustomerNotFound, got %v", err)
	}
	if _, err := svc.CreateLead(context.Background(), "missing", ports.LeadInput{Title: "x"}, "user-a"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("missing: expected ErrCustomerNotFound, got %v", err)
	}
	if len(leads.byID) != 0 {
		t.Error("no lead must be stored")
	}
}

func TestLeadService_Create_Validation(t *testing.T) {
	svc, customers, _ := newLeadFixture()
	c := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())

	cases := []ports.LeadInput{
		{},
		{Title: "x", Status: strPtr("Won")},
		{Title: "x", Value: floatPtr(-5)},
	}
	for _, in := range cases {
		if _, err := svc.CreateLead(context.Background(), c.ID, in, "user-a"); !errors.Is(err, domain.ErrValidationFailed) {
			t.Errorf("input %+v: expected ErrValidationFailed, got %v", in, err)
		}
	}
}

// ---------------------------------------------------------------------------
// ListLeads
// ---------------------------------------------------------------------------

func TestLeadService_List(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	c := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())
	seedLead(leads, "Deal1", c.ID, domain.LeadNew)
	seedLead(leads, "Deal2", c.ID, domain.LeadNew)
	seedLead(leads, "Other", "cust-999", domain.LeadNew)

	got, err := svc.ListLeads(context.Background(), c.ID, "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(got))
	}

	if _, err := svc.ListLeads(context.Background(), c.ID, "user-b"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Errorf("foreign: expected ErrCustomerNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// GetLead / UpdateLead / DeleteLead (item scoped)
// ---------------------------------------------------------------------------

func TestLeadService_Get(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	c := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())
	l := seedLead(leads, "Deal1", c.ID, domain.LeadNew)

	detail, err := svc.GetLead(context.Background(), l.ID, "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Title != "Deal1" {
		t.Errorf("unexpected lead: %+v", detail.Lead)
	}
	if detail.Customer.Name != "Bob" || detail.Customer.Email != "bob@x.com" || detail.Customer.ID != c.ID {
		t.Errorf("parent not attached: %+v", detail.Customer)
	}
}

func TestLeadService_ItemScopedErrors(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	c := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())
	l := seedLead(leads, "Deal1", c.ID, domain.LeadNew)
	valid := ports.LeadInput{Title: "Deal1", CustomerID: c.ID}
	ctx := context.Background()

	checks := []struct {
		name string
		call func(id, requester string) error
	}{
		{"get", func(id, r string) error { _, err := svc.GetLead(ctx, id, r); return err }},
		{"update", func(id, r string) error { _, err := svc.UpdateLead(ctx, id, valid, r); return err }},
		{"delete", func(id, r string) error { return svc.DeleteLead(ctx, id, r) }},
	}

	for _, ch := range checks {
		if err := ch.call("missing", "user-a"); !errors.Is(err, domain.ErrLeadNotFound) {
			t.Errorf("%s missing: expected ErrLeadNotFound, got %v", ch.name, err)
		}
		err := ch.call(l.ID, "user-b")
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s foreign: expected ErrForbidden, got %v", ch.name, err)
		}
		if errors.Is(err, domain.ErrLeadNotFound) {
			t.Errorf("%s foreign: must not be reported as not found", ch.name)
		}
	}

	if _, ok := leads.byID[l.ID]; !ok {
		t.Error("denied delete removed the lead")
	}
}

func TestLeadService_Update_KeepsParentAndUnsentFields(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	mine := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())
	other := seedCustomer(customers, "Ann", "ann@x.com", "user-a", time.Now().UTC())
	l := seedLead(leads, "Deal1", mine.ID, domain.LeadNew)
	leads.byID[l.ID].Description = "keep me"
	leads.byID[l.ID].Value = 300

	updated, err := svc.UpdateLead(context.Background(), l.ID, ports.LeadInput{
		Title:      "Deal1 (renamed)",
		Status:     strPtr("Converted"),
		CustomerID: other.ID,
	}, "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Deal1 (renamed)" || updated.Status != domain.LeadConverted {
		t.Errorf("fields not applied: %+v", updated)
	}
	if updated.Description != "keep me" || updated.Value != 300 {
		t.Errorf("unsent fields changed: %+v", updated)
	}
	if updated.CustomerID != mine.ID {
		t.Errorf("parent must be immutable, got %q", updated.CustomerID)
	}
	if leads.byID[l.ID].Status != domain.LeadConverted {
		t.Error("update not persisted")
	}
}

func TestLeadService_Update_ValidationFirst(t *testing.T) {
	svc, _, _ := newLeadFixture()

	// Validation fails before the (missing) lead is looked up.
	if _, err := svc.UpdateLead(context.Background(), "missing", ports.LeadInput{Title: "x"}, "user-a"); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestLeadService_Delete(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	c := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())
	l := seedLead(leads, "Deal1", c.ID, domain.LeadNew)

	if err := svc.DeleteLead(context.Background(), l.ID, "user-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := leads.byID[l.ID]; ok {
		t.Error("lead not deleted")
	}
	if _, ok := customers.byID[c.ID]; !ok {
		t.Error("parent customer must survive")
	}
}

// ---------------------------------------------------------------------------
// ListLeadsByStatus
// ---------------------------------------------------------------------------

func TestLeadService_ByStatus_AcrossOwnedCustomers(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	c1 := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())
	c2 := seedCustomer(customers, "Ann", "ann@x.com", "user-a", time.Now().UTC())
	foreign := seedCustomer(customers, "Eve", "eve@x.com", "user-b", time.Now().UTC())
	seedLead(leads, "A", c1.ID, domain.LeadConverted)
	seedLead(leads, "B", c2.ID, domain.LeadConverted)
	seedLead(leads, "C", c2.ID, domain.LeadLost)
	seedLead(leads, "D", foreign.ID, domain.LeadConverted)

	got, err := svc.ListLeadsByStatus(context.Background(), "Converted", "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(got))
	}
	parents := map[string]string{c1.ID: "Bob", c2.ID: "Ann"}
	for _, d := range got {
		if d.Status != domain.LeadConverted {
			t.Errorf("unexpected status %q", d.Status)
		}
		if want, ok := parents[d.CustomerID]; !ok || d.Customer.Name != want {
			t.Errorf("lead %s: parent %+v not attached correctly", d.Title, d.Customer)
		}
	}
}

func TestLeadService_ByStatus_UnknownStatusIsEmpty(t *testing.T) {
	svc, customers, leads := newLeadFixture()
	c := seedCustomer(customers, "Bob", "bob@x.com", "user-a", time.Now().UTC())
	seedLead(leads, "A", c.ID, domain.LeadNew)

	for _, status := range []string{"Won", "new", ""} {
		got, err := svc.ListLeadsByStatus(context.Background(), status, "user-a")
		if err != nil {
			t.Fatalf("status %q: unexpected error: %v", status, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("status %q: expected empty non-nil result, got %v", status, got)
		}
	}
}

func TestLeadService_ByStatus_NoCustomers(t *testing.T) {
	svc, _, _ := newLeadFixture()

	got, err := svc.ListLeadsByStatus(context.Background(), "New", "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}

// ---------------------------------------------------------------------------
// End-to-end scenario over the services
// ---------------------------------------------------------------------------

func TestScenario_ConvertedLeadVisibleOnlyToOwner(t *testing.T) {
	customers := newStubCustomerRepo()
	leads := newStubLeadRepo()
	custSvc := NewCustomerService(customers, leads, discardLogger)
	leadSvc := NewLeadService(customers, leads, discardLogger)
	ctx := context.Background()

	bob, err := custSvc.CreateCustomer(ctx, ports.CustomerInput{Name: "Bob", Email: "bob@x.com"}, "user-a")
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if _, err := custSvc.GetCustomer(ctx, bob.ID, "user-b"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("user B fetching A's customer: expected not found, got %v", err)
	}

	deal, err := leadSvc.CreateLead(ctx, bob.ID, ports.LeadInput{Title: "Deal1"}, "user-a")
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if deal.Status != domain.LeadNew || deal.Value != 0 {
		t.Fatalf("unexpected defaults: %+v", deal)
	}

	if _, err := leadSvc.UpdateLead(ctx, deal.ID, ports.LeadInput{Title: "Deal1", Status: strPtr("Converted"), CustomerID: bob.ID}, "user-a"); err != nil {
		t.Fatalf("update lead: %v", err)
	}

	forA, _ := leadSvc.ListLeadsByStatus(ctx, "Converted", "user-a")
	if len(forA) != 1 || forA[0].ID != deal.ID {
		t.Errorf("user A: expected the converted deal, got %+v", forA)
	}
	forB, _ := leadSvc.ListLeadsByStatus(ctx, "Converted", "user-b")
	if len(forB) != 0 {
		t.Errorf("user B: expected nothing, got %+v", forB)
	}
}
