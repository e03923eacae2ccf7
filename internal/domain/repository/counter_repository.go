package repository

import "context"

// CounterRepository allocates values from named monotonic counters
type CounterRepository interface {
	// Next atomically increments the named counter and returns the new
	// value. Concurrent callers never receive the same value.
	Next(ctx context.Context, name string) (int64, error)
}
