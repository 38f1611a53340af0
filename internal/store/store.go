package store

import (
	"context"

	"budget/internal/core"
)

// Store is the accessor port for account records, keyed by user. The HTTP
// layer is the only mutator; implementations own their records exclusively
// and hand out copies.
type Store interface {
	// Get returns the account for the given user, or core.ErrUserNotFound.
	Get(ctx context.Context, user string) (core.Account, error)

	// Put inserts or replaces the account keyed by its user.
	Put(ctx context.Context, account core.Account) error

	// Delete removes the account for the given user, or core.ErrUserNotFound.
	Delete(ctx context.Context, user string) error
}
