// internal/checkout/domain.go
package checkout

import (
	"fridgenet/internal/community"
	"fridgenet/internal/inventory"
)

// Result is the post-mutation state returned by a successful checkout.
// User may be nil if the state read-back failed after both writes landed.
type Result struct {
	Item *inventory.Item `json:"itemResult"`
	User *community.User `json:"userResult"`
}
