package client

import (
	"context"
	"sync"
)

// Optimistic holds a locally displayed value that is updated before the
// server confirms a change and rolled back if it refuses.
type Optimistic[T any] struct {
	mu       sync.Mutex
	value    T
	version  uint64
	onChange func(T)
}

// NewOptimistic starts from initial. onChange, if set, sees every value the
// view should show.
func NewOptimistic[T any](initial T, onChange func(T)) *Optimistic[T] {
	return &Optimistic[T]{value: initial, onChange: onChange}
}

// Get returns the current value.
func (o *Optimistic[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set replaces the value, e.g. after a refetch.
func (o *Optimistic[T]) Set(v T) {
	o.mu.Lock()
	o.value = v
	o.version++
	o.mu.Unlock()
	o.notify(v)
}

// Apply shows mutate(current) immediately, then runs remote. On success the
// value becomes remote's result; on failure the previous value is restored
// unless something else changed it meanwhile. The remote error is returned.
func (o *Optimistic[T]) Apply(ctx context.Context, mutate func(T) T, remote func(ctx context.Context) (T, error)) (T, error) {
	o.mu.Lock()
	previous := o.value
	o.value = mutate(previous)
	o.version++
	version := o.version
	optimistic := o.value
	o.mu.Unlock()
	o.notify(optimistic)

	result, err := remote(ctx)

	o.mu.Lock()
	if o.version != version {
		// A later change wins; leave it alone.
		current := o.value
		o.mu.Unlock()
		return current, err
	}
	if err != nil {
		o.value = previous
	} else {
		o.value = result
	}
	o.version++
	final := o.value
	o.mu.Unlock()
	o.notify(final)
	return final, err
}

func (o *Optimistic[T]) notify(v T) {
	if o.onChange != nil {
		o.onChange(v)
	}
}
