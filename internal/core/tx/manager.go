// Package tx defines the transaction boundary used by domain services.
// The PostgreSQL implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs a unit of work inside a database transaction.
//
// fn receives a context carrying the transaction; repositories called with
// that context participate in it. A non-nil error from fn rolls back.
// Nested calls reuse the transaction already present in ctx.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
