package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no item exists under the key.
var ErrNotFound = errors.New("item not found")

// Key identifies a single item. Every table in this system uses a
// single string hash key.
type Key map[string]string

// Store is the item store contract: single-item get/put/update/delete
// plus a whole-table scan. Update sets only the named fields and never
// touches the rest of the item. Scan loads the entire table; tables
// here are demo-fleet sized and nothing paginates.
type Store interface {
	Get(ctx context.Context, table string, key Key, out any) error
	Put(ctx context.Context, table string, item any) error
	Update(ctx context.Context, table string, key Key, changes map[string]any) error
	Delete(ctx context.Context, table string, key Key) error
	Scan(ctx context.Context, table string, out any) error
}
