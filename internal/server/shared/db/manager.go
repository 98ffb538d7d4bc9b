// Package db wires the PostgreSQL connection, repositories, and migrations
// into a single repository manager.
package db

import (
	"database/sql"

	"github.com/aureapp/aure/internal/server/documents"
	"github.com/aureapp/aure/internal/server/records"
	"github.com/aureapp/aure/internal/server/refreshtokens"
	"github.com/aureapp/aure/internal/server/users"
)

// RepositoryManager hands out the repositories backed by one shared
// connection pool.
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Jobs() records.JobRepository
	Payments() records.PaymentRepository
	Agencies() records.AgencyRepository
	Documents() documents.Repository
	Close() error
}
