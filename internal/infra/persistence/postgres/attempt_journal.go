package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domcheckout "example.com/storefront/internal/domain/checkout"
	domorder "example.com/storefront/internal/domain/order"
)

type AttemptJournal struct {
	pool *pgxpool.Pool
}

func NewAttemptJournal(pool *pgxpool.Pool) *AttemptJournal {
	return &AttemptJournal{pool: pool}
}

func (j *AttemptJournal) Record(ctx context.Context, a domcheckout.Attempt) error {
	_, err := j.pool.Exec(ctx, `
        INSERT INTO checkout_attempts (attempt_id, user_id, order_id, payment_method, phase, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, a.ID, a.UserID, a.OrderID, string(a.PaymentMethod), string(a.Phase), a.StoredMessage(), a.At)
	if err != nil {
		return fmt.Errorf("insert checkout attempt: %w", err)
	}
	return nil
}

func (j *AttemptJournal) ListByAttempt(ctx context.Context, attemptID string) ([]domcheckout.Attempt, error) {
	rows, err := j.pool.Query(ctx, `
        SELECT attempt_id::text, user_id, order_id, payment_method, phase, message, created_at
        FROM checkout_attempts
        WHERE attempt_id = $1
        ORDER BY id
    `, attemptID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domcheckout.Attempt, error) {
		var (
			a             domcheckout.Attempt
			method, phase string
		)
		if err := row.Scan(&a.ID, &a.UserID, &a.OrderID, &method, &phase, &a.Message, &a.At); err != nil {
			return domcheckout.Attempt{}, err
		}
		a.PaymentMethod = domorder.PaymentMethod(method)
		a.Phase = domcheckout.Phase(phase)
		return a, nil
	})
}

// Ping is used by the readiness endpoint.
func (j *AttemptJournal) Ping(ctx context.Context) error {
	return j.pool.Ping(ctx)
}
