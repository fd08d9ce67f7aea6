// internal/community/implementation.go
package community

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fridgenet/internal/fault"
)

// service implements the Service interface.
type service struct {
	db *sql.DB
}

// NewService creates a new contribution ledger over the shared pool.
func NewService(db *sql.DB) Service {
	return &service{db: db}
}

// RegisterUser creates a user with zeroed counters. The identity itself
// comes from the external session provider; this only reserves the row the
// counters live on.
func (s *service) RegisterUser(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, fault.Validationf("missing email")
	}

	user := &User{
		ID:    uuid.New(),
		Email: email,
	}

	query := `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		RETURNING created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, user.ID, user.Email).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fault.Validationf("email %s already registered", email)
		}
		return nil, fault.Internalf("insert user: %v", err)
	}

	return user, nil
}

// GetUser retrieves a user by id.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, email, contributions, unlocks, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	user := &User{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Contributions,
		&user.Unlocks,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fault.NotFoundf("user %s", id)
		}
		return nil, fault.Internalf("get user: %v", err)
	}

	return user, nil
}

// IncrementContributions adds one to the user's contribution counter and
// reports how many rows changed.
func (s *service) IncrementContributions(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.increment(ctx, id, "contributions")
}

// IncrementUnlocks adds one to the user's unlock counter and reports how
// many rows changed.
func (s *service) IncrementUnlocks(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.increment(ctx, id, "unlocks")
}

func (s *service) increment(ctx context.Context, id uuid.UUID, column string) (int64, error) {
	// column is one of two fixed names, never caller input.
	query := fmt.Sprintf(`
		UPDATE users
		SET %s = %s + 1, updated_at = NOW()
		WHERE id = $1
	`, column, column)

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fault.Internalf("increment %s: %v", column, err)
	}

	modified, err := res.RowsAffected()
	if err != nil {
		return 0, fault.Internalf("rows affected: %v", err)
	}
	return modified, nil
}
