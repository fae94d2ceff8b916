package services

import "context"

// Locker serialises work across processes on a named key.
type Locker interface {
	// Acquire blocks until key is held or ctx ends. The returned func releases it.
	Acquire(ctx context.Context, key string) (release func(context.Context), err error)
}
