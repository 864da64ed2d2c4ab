// Package metrics defines the CRM's domain counters. They are registered
// with the default Prometheus registry on import and exposed on /metrics
// next to the HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// CustomersCreatedTotal counts customers created.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created.",
	},
)

// CustomersDeletedTotal counts customers deleted together with their leads.
var CustomersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_deleted_total",
		Help:      "Total number of customers deleted.",
	},
)

// LeadsCreatedTotal counts leads created.
// Label:
//   - status: the initial status (e.g. "New")
var LeadsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_created_total",
		Help:      "Total number of leads created, by initial status.",
	},
	[]string{"status"},
)

// LeadsUpdatedTotal counts lead updates.
// Label:
//   - status: the status after the update
var LeadsUpdatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_updated_total",
		Help:      "Total number of lead updates, by resulting status.",
	},
	[]string{"status"},
)

// LeadsDeletedTotal counts leads deleted individually. Leads removed by a
// customer deletion are not counted here.
var LeadsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_deleted_total",
		Help:      "Total number of leads deleted individually.",
	},
)

// AccessDeniedTotal counts requests rejected by ownership checks.
// Label:
//   - resource: "customer" or "lead"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected because the caller does not own the resource.",
	},
	[]string{"resource"},
)

func AuthResult(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
