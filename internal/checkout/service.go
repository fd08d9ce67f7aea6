// internal/checkout/service.go
package checkout

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the checkout coordinator.
type Service interface {
	// Checkout claims exactly one unit of an item for a user. Failure
	// modes: ErrUnavailable when the item is missing or out of stock (no
	// side effects), ErrPartialFailure when the decrement landed but the
	// user credit did not (stock is restored best-effort first).
	Checkout(ctx context.Context, userID, itemID, fridgeID uuid.UUID) (*Result, error)
}
