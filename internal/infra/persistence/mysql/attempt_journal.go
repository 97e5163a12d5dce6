package mysql

import (
	"context"
	"database/sql"
	"fmt"

	domcheckout "example.com/storefront/internal/domain/checkout"
	domorder "example.com/storefront/internal/domain/order"
)

type AttemptJournal struct {
	db *sql.DB
}

func NewAttemptJournal(db *sql.DB) *AttemptJournal {
	return &AttemptJournal{db: db}
}

func (j *AttemptJournal) Record(ctx context.Context, a domcheckout.Attempt) error {
	_, err := j.db.ExecContext(ctx, `
        INSERT INTO checkout_attempts (attempt_id, user_id, order_id, payment_method, phase, message, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, a.ID, a.UserID, a.OrderID, string(a.PaymentMethod), string(a.Phase), a.StoredMessage(), a.At.UTC())
	if err != nil {
		return fmt.Errorf("insert checkout attempt: %w", err)
	}
	return nil
}

func (j *AttemptJournal) ListByAttempt(ctx context.Context, attemptID string) ([]domcheckout.Attempt, error) {
	rows, err := j.db.QueryContext(ctx, `
        SELECT attempt_id, user_id, order_id, payment_method, phase, message, created_at
        FROM checkout_attempts
        WHERE attempt_id = ?
        ORDER BY id
    `, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domcheckout.Attempt
	for rows.Next() {
		var (
			a             domcheckout.Attempt
			method, phase string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.OrderID, &method, &phase, &a.Message, &a.At); err != nil {
			return nil, err
		}
		a.PaymentMethod = domorder.PaymentMethod(method)
		a.Phase = domcheckout.Phase(phase)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (j *AttemptJournal) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}
