package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aureapp/aure/internal/common"
	"github.com/aureapp/aure/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, doc *Document) error {

	query :=
		`INSERT INTO documents (id, user_id, file_name, content_type, size_bytes,
		                        storage_key, upload_status, year)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		doc.ID, doc.UserID, doc.FileName, doc.ContentType, doc.SizeBytes,
		doc.StorageKey, doc.UploadStatus, doc.Year).Scan(&doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*Document, error) {

	query :=
		`SELECT id, user_id, file_name, content_type, size_bytes, storage_key,
		        upload_status, year, created_at
		 FROM documents
		 WHERE id = $1 AND user_id = $2
		 `

	doc := &Document{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&doc.ID, &doc.UserID, &doc.FileName, &doc.ContentType, &doc.SizeBytes,
		&doc.StorageKey, &doc.UploadStatus, &doc.Year, &doc.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*Document, error) {

	query :=
		`SELECT id, user_id, file_name, content_type, size_bytes, storage_key,
		        upload_status, year, created_at
		 FROM documents
		 WHERE user_id = $1
		 ORDER BY id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Document
	for rows.Next() {
		doc := &Document{}
		err := rows.Scan(&doc.ID, &doc.UserID, &doc.FileName, &doc.ContentType, &doc.SizeBytes,
			&doc.StorageKey, &doc.UploadStatus, &doc.Year, &doc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, userID, id string) error {

	query :=
		`UPDATE documents SET upload_status = 'uploaded'
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {

	query := `DELETE FROM documents WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
