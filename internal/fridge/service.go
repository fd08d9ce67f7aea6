// internal/fridge/service.go
package fridge

import (
	"context"

	"github.com/google/uuid"

	"fridgenet/internal/geo"
)

// Service defines the interface for fridge discovery and access control.
type Service interface {
	// Nearby returns fridges within the operational radius of origin,
	// ordered by ascending distance, each carrying its in-stock items.
	Nearby(ctx context.Context, origin geo.Point) ([]*NearbyFridge, error)

	// Unlock transitions the fridge to unlocked after consulting the
	// unlock policy. Idempotent; ErrNotFound for unknown fridges.
	Unlock(ctx context.Context, id uuid.UUID, origin *geo.Point) error

	// Lock transitions the fridge to locked. Idempotent.
	Lock(ctx context.Context, id uuid.UUID) error

	GetFridge(ctx context.Context, id uuid.UUID) (*Fridge, error)
}
