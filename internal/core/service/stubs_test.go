package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory customer repository
// ---------------------------------------------------------------------------

type stubCustomerRepo struct {
	byID       map[string]*domain.Customer
	seq        int
	failErr    error // if set, every call returns this error
	lastFilter ports.ListCustomersFilter
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byID: make(map[string]*domain.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.seq++
	c.ID = fmt.Sprintf("cust-%d", r.seq)
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

// FindOwned mirrors the real Mongo query: id and owner in one filter.
func (r *stubCustomerRepo) FindOwned(_ context.Context, id, ownerID string) (*domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	c, ok := r.byID[id]
	if !ok || c.OwnerID != ownerID {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) List(_ context.Context, f ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	r.lastFilter = f
	if r.failErr != nil {
		return nil, 0, r.failErr
	}

	var matched []*domain.Customer
	for _, c := range r.byID {
		if c.OwnerID != f.OwnerID {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
				continue
			}
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if f.Skip >= total {
		return []*domain.Customer{}, total, nil
	}
	end := f.Skip + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Skip:end], total, nil
}

func (r *stubCustomerRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Customer, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	var out []*domain.Customer
	for _, c := range r.byID {
		if c.OwnerID == ownerID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCustomerNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id string) error {
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory lead repository
// ---------------------------------------------------------------------------

type stubLeadRepo struct {
	byID      map[string]*domain.Lead
	seq       int
	deleteErr error // if set, DeleteByCustomer returns this error
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{byID: make(map[string]*domain.Lead)}
}

func (r *stubLeadRepo) Create(_ context.Context, l *domain.Lead) error {
	r.seq++
	l.ID = fmt.Sprintf("lead-%d", r.seq)
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubLeadRepo) FindByID(_ context.Context, id string) (*domain.Lead, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubLeadRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.Lead, error) {
	out := []*domain.Lead{}
	for _, l := range r.sorted() {
		if l.CustomerID == customerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) ListByCustomersAndStatus(_ context.Context, customerIDs []string, status string) ([]*domain.Lead, error) {
	in := make(map[string]bool, len(customerIDs))
	for _, id := range customerIDs {
		in[id] = true
	}
	out := []*domain.Lead{}
	for _, l := range r.sorted() {
		if in[l.CustomerID] && string(l.Status) == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) Update(_ context.Context, l *domain.Lead) error {
	if _, ok := r.byID[l.ID]; !ok {
		return domain.ErrLeadNotFound
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubLeadRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrLeadNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubLeadRepo) DeleteByCustomer(_ context.Context, customerID string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for id, l := range r.byID {
		if l.CustomerID == customerID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

// sorted returns clones in insertion order.
func (r *stubLeadRepo) sorted() []*domain.Lead {
	out := make([]*domain.Lead, 0, len(r.byID))
	for _, l := range r.byID {
		clone := *l
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return seqOf(out[i].ID) < seqOf(out[j].ID) })
	return out
}

func seqOf(id string) int {
	var n int
	_, _ = fmt.Sscanf(id, "lead-%d", &n)
	return n
}

// ---------------------------------------------------------------------------
// Credential store, tokens and hashing
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail map[string]*domain.User
	lookups int // FindByID calls
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[u.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *u
	clone.ID = "user-" + u.Email
	r.byEmail[u.Email] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.lookups++
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// stubTokens issues "tok:<userID>" and accepts only tokens it issued.
type stubTokens struct{}

func (stubTokens) Issue(userID string) (string, time.Time, error) {
	return "tok:" + userID, time.Now().Add(time.Hour), nil
}

func (stubTokens) Verify(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "tok:")
	if !ok || id == "" {
		return "", errors.New("invalid token")
	}
	return id, nil
}

// stubHasher prefixes instead of hashing.
type stubHasher struct{}

func (stubHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (stubHasher) Check(p, hash string) bool { return hash == "hashed:"+p }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// seedCustomer stores a customer directly, bypassing the service.
func seedCustomer(repo *stubCustomerRepo, name, email, owner string, createdAt time.Time) *domain.Customer {
	c := &domain.Customer{Name: name, Email: email, OwnerID: owner, CreatedAt: createdAt}
	_ = repo.Create(context.Background(), c)
	return c
}

// seedLead stores a lead directly, bypassing the service.
func seedLead(repo *stubLeadRepo, title, customerID string, status domain.LeadStatus) *domain.Lead {
	l := &domain.Lead{Title: title, CustomerID: customerID, Status: status, CreatedAt: time.Now().UTC()}
	_ = repo.Create(context.Background(), l)
	return l
}
