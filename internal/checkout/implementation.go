// internal/checkout/implementation.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fridgenet/internal/community"
	"fridgenet/internal/eventlog"
	"fridgenet/internal/fault"
	"fridgenet/internal/inventory"
	"fridgenet/internal/metrics"
)

// ItemStore is the slice of the inventory ledger the coordinator needs.
type ItemStore interface {
	GetItem(ctx context.Context, id uuid.UUID) (*inventory.Item, error)
	ClaimUnit(ctx context.Context, id uuid.UUID) (*inventory.Item, bool, error)
	RestoreUnit(ctx context.Context, id uuid.UUID) error
}

// UserStore is the slice of the contribution ledger the coordinator needs.
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*community.User, error)
	IncrementUnlocks(ctx context.Context, id uuid.UUID) (int64, error)
}

// service implements the Service interface.
type service struct {
	items  ItemStore
	users  UserStore
	events *eventlog.Log
	tracer trace.Tracer
}

// NewService creates a new checkout coordinator.
func NewService(items ItemStore, users UserStore, events *eventlog.Log) Service {
	return &service{
		items:  items,
		users:  users,
		events: events,
		tracer: otel.Tracer("fridgenet/checkout"),
	}
}

// Checkout orchestrates the claim: verify stock, decrement atomically,
// credit the user, compensate the decrement if the credit misses. The
// decrement happens-before the credit attempt within one call; across
// calls the only guarantee is the conditional decrement itself.
func (s *service) Checkout(ctx context.Context, userID, itemID, fridgeID uuid.UUID) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "checkout",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("item.id", itemID.String()),
			attribute.String("fridge.id", fridgeID.String()),
		),
	)
	defer span.End()

	// Step 1: cheap availability read. No side effects on refusal.
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, fault.ErrNotFound) {
			metrics.CheckoutUnavailable.Inc()
			return nil, fmt.Errorf("item %s: %w", itemID, fault.ErrUnavailable)
		}
		return nil, err
	}
	if item.Quantity <= 0 {
		metrics.CheckoutUnavailable.Inc()
		span.SetAttributes(attribute.Bool("checkout.out_of_stock", true))
		return nil, fmt.Errorf("item %s is out of stock: %w", itemID, fault.ErrUnavailable)
	}

	// Step 2-3: the atomic conditional decrement. Losing the race against
	// a concurrent claim on the last unit surfaces here, not as a negative
	// quantity.
	claimed, applied, err := s.items.ClaimUnit(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !applied {
		metrics.CheckoutUnavailable.Inc()
		span.SetAttributes(attribute.Bool("checkout.lost_race", true))
		return nil, fmt.Errorf("item %s was claimed concurrently: %w", itemID, fault.ErrUnavailable)
	}

	// Step 4: credit the user's unlock counter.
	modified, err := s.users.IncrementUnlocks(ctx, userID)
	if err != nil || modified == 0 {
		// Step 5: compensate the decrement once, best effort. The restore
		// window is not guarded against concurrent interleaving.
		s.compensate(ctx, itemID, fridgeID)
		metrics.CheckoutPartialFailure.Inc()
		span.SetAttributes(attribute.Bool("checkout.partial_failure", true))
		return nil, fmt.Errorf("crediting user %s failed (modified=%d, err=%v): %w",
			userID, modified, err, fault.ErrPartialFailure)
	}

	metrics.CheckoutSuccess.Inc()
	if logErr := s.events.Append(ctx, eventlog.Event{
		FridgeID: fridgeID,
		Type:     eventlog.TypeItemClaimed,
		Data:     map[string]string{"user_id": userID.String(), "item_id": itemID.String()},
	}); logErr != nil {
		log.Printf("failed to record claim: %v", logErr)
	}

	result := &Result{Item: claimed}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		// Both writes landed; only the read-back failed. Surfacing an
		// error here would invite a client retry and a double claim.
		log.Printf("checkout succeeded but user read-back failed for %s: %v", userID, err)
		return result, nil
	}
	result.User = user
	return result, nil
}

func (s *service) compensate(ctx context.Context, itemID, fridgeID uuid.UUID) {
	log.Printf("compensating failed checkout: restoring one unit of item %s", itemID)
	if err := s.items.RestoreUnit(ctx, itemID); err != nil {
		log.Printf("failed to restore item %s after partial checkout: %v", itemID, err)
		metrics.CompensationFailure.Inc()
		if logErr := s.events.Append(ctx, eventlog.Event{
			FridgeID: fridgeID,
			Type:     eventlog.TypeCompensationFailure,
			Data:     map[string]string{"item_id": itemID.String()},
		}); logErr != nil {
			log.Printf("failed to record compensation failure: %v", logErr)
		}
	}
}
