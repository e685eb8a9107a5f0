// Package storage provides the durable key/value media the cart is kept in.
//
// None of the stores offer compare-and-swap. A Get followed by a Set from two
// clients can interleave, and the last Set wins.
package storage

import "context"

const (
	BackendSQL    = "sql"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Store is a string key/value medium with a health probe
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
