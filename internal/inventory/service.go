// internal/inventory/service.go
package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the inventory ledger.
type Service interface {
	// AddItem inserts a contribution and best-effort credits the
	// contributor's counter. The insert is never rolled back when the
	// credit misses; the miss is logged and counted instead.
	AddItem(ctx context.Context, params AddItemParams) (*Item, error)

	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)

	// InStockByFridges returns items with quantity > 0 grouped by fridge.
	InStockByFridges(ctx context.Context, fridgeIDs []uuid.UUID) (map[uuid.UUID][]Item, error)

	// ClaimUnit decrements the item's quantity by one, guarded by
	// quantity > 0 in the same statement. claimed is false when the guard
	// did not hold at mutation time.
	ClaimUnit(ctx context.Context, id uuid.UUID) (item *Item, claimed bool, err error)

	// RestoreUnit puts one unit back after a failed checkout. Best effort:
	// the restore window is not guarded against concurrent interleaving.
	RestoreUnit(ctx context.Context, id uuid.UUID) error
}
