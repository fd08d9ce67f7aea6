// internal/eventlog/eventlog.go
package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Event types recorded by the transaction core. The log is observability,
// not a source of truth: callers append best-effort and never read back.
const (
	TypeItemAdded           = "item_added"
	TypeItemClaimed         = "item_claimed"
	TypeFridgeUnlocked      = "fridge_unlocked"
	TypeFridgeLocked        = "fridge_locked"
	TypeBookkeepingNoop     = "bookkeeping_noop"
	TypeCompensationFailure = "compensation_failed"
)

// Event is one activity record tied to a fridge.
type Event struct {
	FridgeID uuid.UUID
	Type     string
	Data     interface{}
}

// Log appends activity events to the fridge_events table.
type Log struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewLog creates an activity log over the shared pool.
func NewLog(db *sql.DB) *Log {
	return &Log{
		db:     db,
		tracer: otel.Tracer("fridgenet/eventlog"),
	}
}

// Append records one event. A nil log discards events so callers in tests
// can skip the wiring.
func (l *Log) Append(ctx context.Context, event Event) error {
	if l == nil {
		return nil
	}

	ctx, span := l.tracer.Start(ctx, "eventlog.append",
		trace.WithAttributes(
			attribute.String("fridge.id", event.FridgeID.String()),
			attribute.String("event.type", event.Type),
		),
	)
	defer span.End()

	data := []byte("{}")
	if event.Data != nil {
		var err error
		data, err = json.Marshal(event.Data)
		if err != nil {
			return fmt.Errorf("marshal event data: %w", err)
		}
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO fridge_events (fridge_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4)
	`, event.FridgeID, event.Type, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	span.SetAttributes(attribute.Bool("append.success", true))
	return nil
}
