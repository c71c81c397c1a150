package client

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/lostfound/pkg/api"
)

// Refetcher implements subscribe-then-refetch: change notifications only
// trigger it, and a burst of triggers within Delay costs one fetch.
type Refetcher struct {
	fetch  func(ctx context.Context) error
	delay  time.Duration
	logger *slog.Logger
	signal chan struct{}
}

// NewRefetcher creates a refetcher around fetch. Call Run to start it.
func NewRefetcher(delay time.Duration, fetch func(ctx context.Context) error, logger *slog.Logger) *Refetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refetcher{
		fetch:  fetch,
		delay:  delay,
		logger: logger,
		signal: make(chan struct{}, 1),
	}
}

// Trigger schedules a fetch. It never blocks.
func (r *Refetcher) Trigger() {
	select {
	case r.signal <- struct{}{}:
	default:
	}
}

// Watch triggers a fetch on every change to keys, plus one right away. The
// returned function stops watching.
func (r *Refetcher) Watch(w *Watcher, keys ...string) (stop func()) {
	unsubs := make([]func(), 0, len(keys))
	for _, key := range keys {
		unsubs = append(unsubs, w.Subscribe(key, func(*api.Change) { r.Trigger() }))
	}
	r.Trigger()
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Run performs fetches until ctx is done. Triggers that arrive while a
// fetch runs cause exactly one more fetch.
func (r *Refetcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.signal:
		}

		if r.delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.delay):
			}
			// Triggers during the delay are part of this burst.
			select {
			case <-r.signal:
			default:
			}
		}

		if err := r.fetch(ctx); err != nil && ctx.Err() == nil {
			r.logger.Warn("Refetch failed", "error", err)
		}
	}
}
