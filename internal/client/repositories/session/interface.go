// Package session persists the signed-in identity of the inventory client
// as a small key/value table in the local SQLite database.
package session

import (
	"context"

	"github.com/hackinpovo/inventory/internal/dbx"
)

// Repository is a key/value store for session data. Get returns (nil, nil)
// when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error

	// WithDB returns a repository bound to db, typically a transaction.
	WithDB(db dbx.DBTX) Repository
}
