// Package kvstore defines the string-keyed blob store the ledgers persist
// into, with in-memory, file, Postgres and DynamoDB backends.
package kvstore

import "context"

// Store is the persistence boundary for every ledger. Values are opaque
// JSON documents; keys are owned by the codec package.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys enumerates every stored key, in no particular order.
	Keys(ctx context.Context) ([]string, error)
}
