// internal/community/service.go
package community

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the contribution ledger.
//
// The increment operations are upserts in spirit only: a missing user is
// reported as modified == 0 with a nil error, mirroring a zero-row update,
// so callers decide whether a silent miss is acceptable.
type Service interface {
	RegisterUser(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	IncrementContributions(ctx context.Context, id uuid.UUID) (int64, error)
	IncrementUnlocks(ctx context.Context, id uuid.UUID) (int64, error)
}
