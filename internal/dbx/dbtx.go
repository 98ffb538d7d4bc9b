// Package dbx holds the small database plumbing shared by every repository:
// the statement surface repositories depend on, and a transaction runner.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the repositories use. It is satisfied
// by both *sql.DB and *sql.Tx, so the same repository code runs standalone
// or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs work inside a transaction on conn: commit when work returns
// nil, roll back when it returns an error or panics. A panic is rethrown
// after the rollback.
func WithTx(ctx context.Context, conn *sql.DB, opts *sql.TxOptions, work func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := conn.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = work(ctx, tx)
	return err
}
