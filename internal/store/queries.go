package store

import (
	"context"
	"database/sql"
)

// DBTX is the minimal database surface the query layer needs. Both *sql.DB
// and *sql.Tx satisfy it, so the same queries run inside and outside a
// transaction.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries wraps a database handle and exposes one method per query.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
