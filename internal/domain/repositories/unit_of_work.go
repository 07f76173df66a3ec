package repositories

import (
	"context"
)

// UnitOfWork runs a read-validate-write sequence atomically.
// Repositories called with the ctx passed to fn join the same transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
