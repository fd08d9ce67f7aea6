// internal/inventory/implementation.go
package inventory

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fridgenet/internal/eventlog"
	"fridgenet/internal/fault"
	"fridgenet/internal/metrics"
)

// ContributionCrediter is the slice of the community service the ledger
// needs for contributor bookkeeping.
type ContributionCrediter interface {
	IncrementContributions(ctx context.Context, id uuid.UUID) (int64, error)
}

// service implements the Service interface.
type service struct {
	db       *sql.DB
	crediter ContributionCrediter
	events   *eventlog.Log
	tracer   trace.Tracer
}

// NewService creates a new inventory ledger over the shared pool.
func NewService(db *sql.DB, crediter ContributionCrediter, events *eventlog.Log) Service {
	return &service{
		db:       db,
		crediter: crediter,
		events:   events,
		tracer:   otel.Tracer("fridgenet/inventory"),
	}
}

// AddItem validates and inserts a contribution, then credits the
// contributor. A failed or zero-row credit does not undo the insert.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*Item, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "inventory.add_item",
		trace.WithAttributes(
			attribute.String("fridge.id", params.FridgeID.String()),
			attribute.Int("item.quantity", params.Quantity),
		),
	)
	defer span.End()

	item := &Item{
		ID:          uuid.New(),
		FridgeID:    params.FridgeID,
		Name:        params.Name,
		Quantity:    params.Quantity,
		Category:    params.Category,
		Description: params.Description,
		PhotoURL:    params.PhotoURL,
		UserID:      params.UserID,
	}

	query := `
		INSERT INTO items (id, fridge_id, name, quantity, category, description, photo_url, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		item.ID, item.FridgeID, item.Name, item.Quantity,
		item.Category, item.Description, item.PhotoURL, item.UserID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fault.Internalf("insert item: %v", err)
	}

	span.SetAttributes(attribute.String("item.id", item.ID.String()))

	// Fire-and-forget bookkeeping: the contribution stands even when the
	// counter misses, but the miss must be observable.
	modified, err := s.crediter.IncrementContributions(ctx, params.UserID)
	if err != nil || modified == 0 {
		log.Printf("contribution credit missed for user %s (modified=%d): %v", params.UserID, modified, err)
		metrics.BookkeepingNoop.Inc()
		if logErr := s.events.Append(ctx, eventlog.Event{
			FridgeID: params.FridgeID,
			Type:     eventlog.TypeBookkeepingNoop,
			Data:     map[string]string{"user_id": params.UserID.String(), "item_id": item.ID.String()},
		}); logErr != nil {
			log.Printf("failed to record bookkeeping miss: %v", logErr)
		}
		return item, nil
	}

	if logErr := s.events.Append(ctx, eventlog.Event{
		FridgeID: params.FridgeID,
		Type:     eventlog.TypeItemAdded,
		Data:     map[string]string{"user_id": params.UserID.String(), "item_id": item.ID.String()},
	}); logErr != nil {
		log.Printf("failed to record item addition: %v", logErr)
	}

	return item, nil
}

// GetItem retrieves an item by id.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	query := `
		SELECT id, fridge_id, name, quantity, category, description, photo_url, user_id, created_at, updated_at
		FROM items
		WHERE id = $1
	`
	item := &Item{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.FridgeID,
		&item.Name,
		&item.Quantity,
		&item.Category,
		&item.Description,
		&item.PhotoURL,
		&item.UserID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFoundf("item %s", id)
		}
		return nil, fault.Internalf("get item: %v", err)
	}

	return item, nil
}

// InStockByFridges fetches every in-stock item for the fridge set in one
// query and groups them in memory.
func (s *service) InStockByFridges(ctx context.Context, fridgeIDs []uuid.UUID) (map[uuid.UUID][]Item, error) {
	grouped := make(map[uuid.UUID][]Item, len(fridgeIDs))
	if len(fridgeIDs) == 0 {
		return grouped, nil
	}

	ids := make([]string, len(fridgeIDs))
	for i, id := range fridgeIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, fridge_id, name, quantity, category, description, photo_url, user_id, created_at, updated_at
		FROM items
		WHERE fridge_id = ANY($1) AND quantity > 0
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fault.Internalf("query in-stock items: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID,
			&item.FridgeID,
			&item.Name,
			&item.Quantity,
			&item.Category,
			&item.Description,
			&item.PhotoURL,
			&item.UserID,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fault.Internalf("scan item: %v", err)
		}
		grouped[item.FridgeID] = append(grouped[item.FridgeID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Internalf("iterate items: %v", err)
	}

	return grouped, nil
}

// ClaimUnit performs the single conditional decrement. The quantity > 0
// guard lives in the same statement as the write, so two concurrent claims
// on a last unit cannot both apply.
func (s *service) ClaimUnit(ctx context.Context, id uuid.UUID) (*Item, bool, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.claim_unit",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	query := `
		UPDATE items
		SET quantity = quantity - 1, updated_at = NOW()
		WHERE id = $1 AND quantity > 0
		RETURNING id, fridge_id, name, quantity, category, description, photo_url, user_id, created_at, updated_at
	`
	item := &Item{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.FridgeID,
		&item.Name,
		&item.Quantity,
		&item.Category,
		&item.Description,
		&item.PhotoURL,
		&item.UserID,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			span.SetAttributes(attribute.Bool("claim.applied", false))
			return nil, false, nil
		}
		return nil, false, fault.Internalf("claim unit: %v", err)
	}

	span.SetAttributes(attribute.Bool("claim.applied", true), attribute.Int("item.quantity", item.Quantity))
	return item, true, nil
}

// RestoreUnit compensates a failed checkout by putting the unit back.
func (s *service) RestoreUnit(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "inventory.restore_unit",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET quantity = quantity + 1, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fault.Internalf("restore unit: %v", err)
	}

	modified, err := res.RowsAffected()
	if err != nil {
		return fault.Internalf("rows affected: %v", err)
	}
	if modified == 0 {
		return fault.NotFoundf("item %s", id)
	}
	return nil
}
