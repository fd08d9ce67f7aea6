// internal/fridge/domain.go
package fridge

import (
	"time"

	"github.com/google/uuid"

	"fridgenet/internal/inventory"
)

// Fridge is a shared donation locker tracked by location and lock state.
// No single actor owns it; only lock/unlock transitions mutate it.
type Fridge struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	IsLocked  bool      `json:"isLocked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NearbyFridge is a fridge within query range, annotated with its distance
// from the query point and its in-stock items. Items is empty, never null,
// so an empty-but-nearby fridge still renders.
type NearbyFridge struct {
	Fridge
	DistanceMeters float64          `json:"distance"`
	Items          []inventory.Item `json:"items"`
}
