// internal/inventory/domain.go
package inventory

import (
	"time"

	"github.com/google/uuid"

	"fridgenet/internal/fault"
)

// Categories an item may carry. The set matches the classifier
// collaborator's contract; empty means uncategorized.
const (
	CategoryFood      = "food"
	CategoryUtilities = "utilities"
	CategoryMedicine  = "medicine"
)

// Item is a unit of donated stock in one fridge. The fridge reference is
// weak: items survive fridge removal and stay visible at quantity 0.
type Item struct {
	ID          uuid.UUID `json:"id"`
	FridgeID    uuid.UUID `json:"fridgeId"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photo"`
	UserID      uuid.UUID `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AddItemParams carries a contribution. Description and Category are
// optional; everything else is required.
type AddItemParams struct {
	FridgeID    uuid.UUID
	Name        string
	Quantity    int
	UserID      uuid.UUID
	PhotoURL    string
	Description string
	Category    string
}

func (p AddItemParams) validate() error {
	switch {
	case p.Name == "":
		return fault.Validationf("missing name")
	case p.FridgeID == uuid.Nil:
		return fault.Validationf("missing fridgeId")
	case p.Quantity <= 0:
		return fault.Validationf("quantity must be positive")
	case p.UserID == uuid.Nil:
		return fault.Validationf("missing userId")
	case p.PhotoURL == "":
		return fault.Validationf("missing photo")
	}

	switch p.Category {
	case "", CategoryFood, CategoryUtilities, CategoryMedicine:
		return nil
	default:
		return fault.Validationf("unknown category %q", p.Category)
	}
}
