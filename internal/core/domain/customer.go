package domain

import "time"

// Customer is a contact record owned by exactly one user.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	OwnerID   string
	CreatedAt time.Time
}

// OwnedBy reports whether userID is the customer's owner.
func (c *Customer) OwnedBy(userID string) bool {
	return c != nil && userID != "" && c.OwnerID == userID
}

// CustomerDetail is a customer together with its leads.
type CustomerDetail struct {
	Customer
	Leads []LeadSummary
}
