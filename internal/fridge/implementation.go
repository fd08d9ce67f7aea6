// internal/fridge/implementation.go
package fridge

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fridgenet/internal/eventlog"
	"fridgenet/internal/fault"
	"fridgenet/internal/geo"
	"fridgenet/internal/inventory"
)

// maxDistanceMeters bounds nearby queries; same operational constant as
// the source system's geo search.
const maxDistanceMeters = 3000.0

// ItemSource is the slice of the inventory ledger the nearby query needs.
type ItemSource interface {
	InStockByFridges(ctx context.Context, fridgeIDs []uuid.UUID) (map[uuid.UUID][]inventory.Item, error)
}

// service implements the Service interface.
type service struct {
	db     *sql.DB
	items  ItemSource
	policy UnlockPolicy
	events *eventlog.Log
	tracer trace.Tracer
}

// NewService creates the fridge service. policy gates unlocks; pass
// AllowAll{} to keep the proximity decision on the client.
func NewService(db *sql.DB, items ItemSource, policy UnlockPolicy, events *eventlog.Log) Service {
	return &service{
		db:     db,
		items:  items,
		policy: policy,
		events: events,
		tracer: otel.Tracer("fridgenet/fridge"),
	}
}

// Nearby runs the geo search and joins in-stock items onto each hit.
func (s *service) Nearby(ctx context.Context, origin geo.Point) ([]*NearbyFridge, error) {
	if !origin.Valid() {
		return nil, fault.Validationf("coordinates out of range")
	}

	ctx, span := s.tracer.Start(ctx, "fridge.nearby",
		trace.WithAttributes(
			attribute.Float64("origin.latitude", origin.Latitude),
			attribute.Float64("origin.longitude", origin.Longitude),
		),
	)
	defer span.End()

	// Haversine in SQL: filter by the radius bound and order ascending so
	// the nearest fridge comes first.
	query := `
		SELECT id, name, latitude, longitude, is_locked, created_at, updated_at, distance
		FROM (
			SELECT *,
				2 * 6371000 * asin(sqrt(
					pow(sin(radians(latitude - $1) / 2), 2) +
					cos(radians($1)) * cos(radians(latitude)) *
					pow(sin(radians(longitude - $2) / 2), 2)
				)) AS distance
			FROM fridges
		) f
		WHERE distance <= $3
		ORDER BY distance ASC
	`
	rows, err := s.db.QueryContext(ctx, query, origin.Latitude, origin.Longitude, maxDistanceMeters)
	if err != nil {
		return nil, fault.Internalf("nearby query: %v", err)
	}
	defer rows.Close()

	var nearby []*NearbyFridge
	for rows.Next() {
		nf := &NearbyFridge{Items: []inventory.Item{}}
		if err := rows.Scan(
			&nf.ID,
			&nf.Name,
			&nf.Latitude,
			&nf.Longitude,
			&nf.IsLocked,
			&nf.CreatedAt,
			&nf.UpdatedAt,
			&nf.DistanceMeters,
		); err != nil {
			return nil, fault.Internalf("scan fridge: %v", err)
		}
		nearby = append(nearby, nf)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Internalf("iterate fridges: %v", err)
	}

	if len(nearby) == 0 {
		return []*NearbyFridge{}, nil
	}

	ids := make([]uuid.UUID, len(nearby))
	for i, nf := range nearby {
		ids[i] = nf.ID
	}

	stock, err := s.items.InStockByFridges(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, nf := range nearby {
		if items, ok := stock[nf.ID]; ok {
			nf.Items = items
		}
	}

	span.SetAttributes(attribute.Int("fridge.count", len(nearby)))
	return nearby, nil
}

// Unlock sets the fridge open. Locking an unlocked fridge and vice versa
// are both plain idempotent writes; repeated calls only restamp updated_at.
func (s *service) Unlock(ctx context.Context, id uuid.UUID, origin *geo.Point) error {
	f, err := s.GetFridge(ctx, id)
	if err != nil {
		return err
	}

	if err := s.policy.AuthorizeUnlock(origin, f); err != nil {
		return err
	}

	if err := s.setLocked(ctx, id, false); err != nil {
		return err
	}

	if logErr := s.events.Append(ctx, eventlog.Event{FridgeID: id, Type: eventlog.TypeFridgeUnlocked}); logErr != nil {
		log.Printf("failed to record unlock: %v", logErr)
	}
	return nil
}

// Lock restores the locked state.
func (s *service) Lock(ctx context.Context, id uuid.UUID) error {
	if err := s.setLocked(ctx, id, true); err != nil {
		return err
	}

	if logErr := s.events.Append(ctx, eventlog.Event{FridgeID: id, Type: eventlog.TypeFridgeLocked}); logErr != nil {
		log.Printf("failed to record lock: %v", logErr)
	}
	return nil
}

func (s *service) setLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	ctx, span := s.tracer.Start(ctx, "fridge.set_locked",
		trace.WithAttributes(
			attribute.String("fridge.id", id.String()),
			attribute.Bool("fridge.locked", locked),
		),
	)
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE fridges
		SET is_locked = $1, updated_at = NOW()
		WHERE id = $2
	`, locked, id)
	if err != nil {
		return fault.Internalf("set lock state: %v", err)
	}

	modified, err := res.RowsAffected()
	if err != nil {
		return fault.Internalf("rows affected: %v", err)
	}
	if modified == 0 {
		return fault.NotFoundf("fridge %s", id)
	}
	return nil
}

// GetFridge retrieves a fridge by id.
func (s *service) GetFridge(ctx context.Context, id uuid.UUID) (*Fridge, error) {
	query := `
		SELECT id, name, latitude, longitude, is_locked, created_at, updated_at
		FROM fridges
		WHERE id = $1
	`
	f := &Fridge{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&f.ID,
		&f.Name,
		&f.Latitude,
		&f.Longitude,
		&f.IsLocked,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFoundf("fridge %s", id)
		}
		return nil, fault.Internalf("get fridge: %v", err)
	}

	return f, nil
}
