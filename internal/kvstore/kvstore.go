// Package kvstore is the persistence collaborator: a durable mapping from a
// fixed set of named keys to JSON documents. The only write primitive is a
// whole-value overwrite of a single key; the engine never relies on anything
// stronger.
package kvstore

import "context"

const (
	KeyProducts = "products"
	KeyCart     = "cart"
	KeySales    = "sales"
	KeyUsers    = "users"
)

type Store interface {
	// Get returns the stored value for key, or nil when the key has never
	// been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the value for key.
	Put(ctx context.Context, key string, value []byte) error
}
