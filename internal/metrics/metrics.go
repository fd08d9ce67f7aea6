// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckoutSuccess = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_success_total",
		Help: "Checkouts that decremented stock and credited the user.",
	})
	CheckoutUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_unavailable_total",
		Help: "Checkouts refused for missing or out-of-stock items.",
	})
	CheckoutPartialFailure = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_partial_failure_total",
		Help: "Checkouts that decremented stock but failed to credit the user.",
	})
	CompensationFailure = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_compensation_failure_total",
		Help: "Stock restorations that failed after a partial checkout.",
	})
	BookkeepingNoop = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookkeeping_noop_total",
		Help: "Fire-and-forget counter updates that modified zero rows or errored.",
	})
)

// Handler exposes the registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
