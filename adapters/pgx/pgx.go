// Package pgx adapts a PostgreSQL pool to bantay.AuthStorage.
//
// Expected schema: a public.users table with UNIQUE constraints on
// username and email (the duplicate-account guarantee lives there, not in
// application code) and a public.sessions table keyed by the session ID.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lborres/bantay"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ bantay.AuthStorage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
