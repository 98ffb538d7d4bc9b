package records

import (
	"context"
	"fmt"

	"github.com/aureapp/aure/internal/dbx"
)

type PostgresAgencyRepository struct {
	db dbx.DBTX
}

func NewPostgresAgencyRepository(db dbx.DBTX) *PostgresAgencyRepository {
	return &PostgresAgencyRepository{db: db}
}

func (r *PostgresAgencyRepository) ListByUser(ctx context.Context, userID string) ([]*Agency, error) {

	query :=
		`SELECT id, user_id, name, contact_name, email, phone, commission_percent,
		        notes, created_at, updated_at
		 FROM agencies
		 WHERE user_id = $1
		 ORDER BY name
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Agency
	for rows.Next() {
		a := &Agency{}
		err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.ContactName, &a.Email, &a.Phone,
			&a.CommissionPercent, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresAgencyRepository) Create(ctx context.Context, agency *Agency) (*Agency, error) {

	query :=
		`INSERT INTO agencies (user_id, name, contact_name, email, phone, commission_percent, notes)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		agency.UserID, agency.Name, agency.ContactName, agency.Email, agency.Phone,
		agency.CommissionPercent, agency.Notes).
		Scan(&agency.ID, &agency.CreatedAt, &agency.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return agency, nil
}

func (r *PostgresAgencyRepository) Update(ctx context.Context, agency *Agency) error {

	query :=
		`UPDATE agencies
		 SET name = $3, contact_name = $4, email = $5, phone = $6,
		     commission_percent = $7, notes = $8, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		agency.ID, agency.UserID, agency.Name, agency.ContactName, agency.Email, agency.Phone,
		agency.CommissionPercent, agency.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRowAffected(res)
}

func (r *PostgresAgencyRepository) Delete(ctx context.Context, userID, id string) error {

	query := `DELETE FROM agencies WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRowAffected(res)
}

func (r *PostgresAgencyRepository) DeleteAllForUser(ctx context.Context, userID string) error {

	query := `DELETE FROM agencies WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
