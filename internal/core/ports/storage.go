package ports

import "context"

// Storage is the durable key-value store holding per-session state. Exactly
// two key families pass through it: the sealed upstream credential and the
// active-workspace id. Get returns ("", false, nil) when the key is absent.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
