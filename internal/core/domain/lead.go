package domain

import "time"

// LeadStatus is the sales stage of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadConverted LeadStatus = "Converted"
	LeadLost      LeadStatus = "Lost"
)

// LeadStatuses lists every accepted status, in pipeline order.
var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadConverted, LeadLost}

// Valid reports whether s is one of the known lead statuses.
func (s LeadStatus) Valid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Lead is a sales opportunity attached to a customer. It has no owner of
// its own; access is always decided through the parent customer.
type Lead struct {
	ID          string
	Title       string
	Description string
	Status      LeadStatus
	Value       float64
	CustomerID  string
	CreatedAt   time.Time
}

// LeadSummary is the projection of a lead embedded in a customer detail.
type LeadSummary struct {
	ID          string
	Title       string
	Description string
	Status      LeadStatus
	Value       float64
	CreatedAt   time.Time
}

// CustomerRef is the parent customer's display data attached to a lead.
type CustomerRef struct {
	ID    string
	Name  string
	Email string
}

// LeadDetail is a lead with its parent customer's name and email.
type LeadDetail struct {
	Lead
	Customer CustomerRef
}
