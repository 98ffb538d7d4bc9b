package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aureapp/aure/internal/server/documents"
	"github.com/aureapp/aure/internal/server/migrations"
	"github.com/aureapp/aure/internal/server/records"
	"github.com/aureapp/aure/internal/server/refreshtokens"
	"github.com/aureapp/aure/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db            *sql.DB
	users         users.Repository
	refreshTokens refreshtokens.Repository
	jobs          records.JobRepository
	payments      records.PaymentRepository
	agencies      records.AgencyRepository
	documents     documents.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m *PostgresRepositoryManager) Jobs() records.JobRepository {
	return m.jobs
}

func (m *PostgresRepositoryManager) Payments() records.PaymentRepository {
	return m.payments
}

func (m *PostgresRepositoryManager) Agencies() records.AgencyRepository {
	return m.agencies
}

func (m *PostgresRepositoryManager) Documents() documents.Repository {
	return m.documents
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// the caller runs migrations explicitly, with its own context
	m := &PostgresRepositoryManager{
		db:            db,
		users:         users.NewPostgresRepository(db),
		refreshTokens: refreshtokens.NewPostgresRepository(db),
		jobs:          records.NewPostgresJobRepository(db),
		payments:      records.NewPostgresPaymentRepository(db),
		agencies:      records.NewPostgresAgencyRepository(db),
		documents:     documents.NewPostgresRepository(db),
	}

	return m, nil
}
