package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aureapp/aure/internal/common"
	"github.com/aureapp/aure/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID, sessionID, token string, validity time.Duration) error {

	query :=
		`INSERT INTO refresh_tokens (user_id, session_id, token, expires_at)
         VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query, userID, sessionID, token, time.Now().Add(validity))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Consume(ctx context.Context, token string) (string, string, error) {

	query :=
		`DELETE FROM refresh_tokens
		 WHERE token = $1
		 RETURNING user_id, session_id, expires_at
		 `

	var userID, sessionID string
	var expiresAt time.Time
	err := r.db.QueryRowContext(ctx, query, token).Scan(&userID, &sessionID, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", common.ErrNotFound
		}
		return "", "", fmt.Errorf("db error: %w", err)
	}

	if time.Now().After(expiresAt) {
		return "", "", common.ErrRefreshTokenExpired
	}

	return userID, sessionID, nil
}

func (r *PostgresRepository) DeleteBySession(ctx context.Context, userID, sessionID string) error {

	query :=
		`DELETE FROM refresh_tokens
		 WHERE user_id = $1 AND session_id = $2
		 `

	_, err := r.db.ExecContext(ctx, query, userID, sessionID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {

	query :=
		`DELETE FROM refresh_tokens
		 WHERE expires_at < now()
		 `

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
