package records

import (
	"context"
	"fmt"

	"github.com/aureapp/aure/internal/common"
	"github.com/aureapp/aure/internal/dbx"
)

type PostgresJobRepository struct {
	db dbx.DBTX
}

func NewPostgresJobRepository(db dbx.DBTX) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListByUser(ctx context.Context, userID string) ([]*Job, error) {

	query :=
		`SELECT id, user_id, agency_id, title, client_name, location, rate_cents,
		        status, starts_at, ends_at, notes, created_at, updated_at
		 FROM jobs
		 WHERE user_id = $1
		 ORDER BY starts_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Job
	for rows.Next() {
		j := &Job{}
		err := rows.Scan(&j.ID, &j.UserID, &j.AgencyID, &j.Title, &j.ClientName, &j.Location,
			&j.RateCents, &j.Status, &j.StartsAt, &j.EndsAt, &j.Notes, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresJobRepository) Create(ctx context.Context, job *Job) (*Job, error) {

	query :=
		`INSERT INTO jobs (user_id, agency_id, title, client_name, location, rate_cents,
		                   status, starts_at, ends_at, notes)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		job.UserID, job.AgencyID, job.Title, job.ClientName, job.Location, job.RateCents,
		job.Status, job.StartsAt, job.EndsAt, job.Notes).
		Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return job, nil
}

func (r *PostgresJobRepository) Update(ctx context.Context, job *Job) error {

	query :=
		`UPDATE jobs
		 SET agency_id = $3, title = $4, client_name = $5, location = $6,
		     rate_cents = $7, status = $8, starts_at = $9, ends_at = $10,
		     notes = $11, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		job.ID, job.UserID, job.AgencyID, job.Title, job.ClientName, job.Location,
		job.RateCents, job.Status, job.StartsAt, job.EndsAt, job.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRowAffected(res)
}

func (r *PostgresJobRepository) Delete(ctx context.Context, userID, id string) error {

	query := `DELETE FROM jobs WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRowAffected(res)
}

func (r *PostgresJobRepository) DeleteAllForUser(ctx context.Context, userID string) error {

	query := `DELETE FROM jobs WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// requireRowAffected converts "no rows touched" into common.ErrNotFound.
// A zero count means the id did not exist or belongs to another user; both
// look identical to the caller on purpose.
func requireRowAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
