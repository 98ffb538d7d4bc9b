package records

import (
	"context"
	"fmt"

	"github.com/aureapp/aure/internal/dbx"
)

type PostgresPaymentRepository struct {
	db dbx.DBTX
}

func NewPostgresPaymentRepository(db dbx.DBTX) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

func (r *PostgresPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*Payment, error) {

	query :=
		`SELECT id, user_id, job_id, amount_cents, currency, status, due_date,
		        received_at, notes, created_at, updated_at
		 FROM payments
		 WHERE user_id = $1
		 ORDER BY due_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Payment
	for rows.Next() {
		p := &Payment{}
		err := rows.Scan(&p.ID, &p.UserID, &p.JobID, &p.AmountCents, &p.Currency, &p.Status,
			&p.DueDate, &p.ReceivedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresPaymentRepository) Create(ctx context.Context, payment *Payment) (*Payment, error) {

	query :=
		`INSERT INTO payments (user_id, job_id, amount_cents, currency, status, due_date,
		                       received_at, notes)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		payment.UserID, payment.JobID, payment.AmountCents, payment.Currency, payment.Status,
		payment.DueDate, payment.ReceivedAt, payment.Notes).
		Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return payment, nil
}

func (r *PostgresPaymentRepository) Update(ctx context.Context, payment *Payment) error {

	query :=
		`UPDATE payments
		 SET job_id = $3, amount_cents = $4, currency = $5, status = $6,
		     due_date = $7, received_at = $8, notes = $9, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.UserID, payment.JobID, payment.AmountCents, payment.Currency,
		payment.Status, payment.DueDate, payment.ReceivedAt, payment.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRowAffected(res)
}

func (r *PostgresPaymentRepository) Delete(ctx context.Context, userID, id string) error {

	query := `DELETE FROM payments WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRowAffected(res)
}

func (r *PostgresPaymentRepository) DeleteAllForUser(ctx context.Context, userID string) error {

	query := `DELETE FROM payments WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
