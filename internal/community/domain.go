// internal/community/domain.go
package community

import (
	"time"

	"github.com/google/uuid"
)

// User is a community member with bookkeeping counters. Contributions
// count items added to fridges; unlocks count items claimed.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Contributions int       `json:"contributions"`
	Unlocks       int       `json:"unlocks"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
