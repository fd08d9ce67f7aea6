// internal/fridge/policy.go
package fridge

import (
	"errors"

	"fridgenet/internal/geo"
)

// ErrTooFar rejects an unlock attempted outside the enforcement radius.
var ErrTooFar = errors.New("caller is too far from the fridge")

// UnlockPolicy decides whether a caller may unlock a fridge. The state
// machine itself stays free of distance logic; this hook isolates the
// trust decision so server-side enforcement can be switched on without
// touching the transitions.
type UnlockPolicy interface {
	AuthorizeUnlock(origin *geo.Point, f *Fridge) error
}

// AllowAll trusts the caller's own distance check, reproducing the
// client-side-only proximity gate of the source system.
type AllowAll struct{}

func (AllowAll) AuthorizeUnlock(*geo.Point, *Fridge) error { return nil }

// WithinRadius enforces proximity on the server: the caller must report an
// origin within MaxMiles great-circle distance of the fridge.
type WithinRadius struct {
	MaxMiles float64
}

func (p WithinRadius) AuthorizeUnlock(origin *geo.Point, f *Fridge) error {
	if origin == nil || !origin.Valid() {
		return ErrTooFar
	}
	at := geo.Point{Latitude: f.Latitude, Longitude: f.Longitude}
	if geo.DistanceMiles(*origin, at) > p.MaxMiles {
		return ErrTooFar
	}
	return nil
}
