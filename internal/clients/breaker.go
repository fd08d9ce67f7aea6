// internal/clients/breaker.go
package clients

import (
	"time"

	"github.com/sony/gobreaker"
)

// newBreaker builds the circuit breaker shared by all collaborator
// clients: trip after five consecutive failures, probe again after 30s.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}
