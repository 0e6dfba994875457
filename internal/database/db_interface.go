// Package database provides the connection pool, transactions and small
// query helpers shared by the repositories.
package database

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB and *sql.Tx used by the repositories,
// so the same code runs inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Ensure the standard types implement Querier.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)
