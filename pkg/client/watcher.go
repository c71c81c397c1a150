package client

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/cenkalti/backoff/v4"

	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// WatcherOptions configures a Watcher.
type WatcherOptions struct {
	// MinBackoff and MaxBackoff bound the reconnect delay. Defaults are
	// 500ms and 30s.
	MinBackoff time.Duration
	MaxBackoff time.Duration
	Logger     *slog.Logger
}

// Watcher multiplexes key subscriptions over one realtime stream. When the
// key set changes the stream is reopened; when it breaks the watcher
// reconnects with exponential backoff. Every (re)open starts with a resync
// for each key, so callers refetch whatever they may have missed.
type Watcher struct {
	rt         apiconnect.RealtimeServiceClient
	minBackoff time.Duration
	maxBackoff time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	subs    map[string]map[int]func(*api.Change)
	next    int
	changed chan struct{}
}

// NewWatcher creates a watcher. Call Run to start streaming.
func NewWatcher(rt apiconnect.RealtimeServiceClient, opts WatcherOptions) *Watcher {
	if opts.MinBackoff <= 0 {
		opts.MinBackoff = 500 * time.Millisecond
	}
	if opts.MaxBackoff < opts.MinBackoff {
		opts.MaxBackoff = max(30*time.Second, opts.MinBackoff)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Watcher{
		rt:         rt,
		minBackoff: opts.MinBackoff,
		maxBackoff: opts.MaxBackoff,
		logger:     opts.Logger,
		subs:       make(map[string]map[int]func(*api.Change)),
		changed:    make(chan struct{}, 1),
	}
}

// Subscribe calls onChange for every change on key until unsubscribe is
// called. Callbacks run on the stream goroutine and must not block.
func (w *Watcher) Subscribe(key string, onChange func(*api.Change)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.next
	w.next++
	fns, ok := w.subs[key]
	if !ok {
		fns = make(map[int]func(*api.Change))
		w.subs[key] = fns
	}
	fns[id] = onChange
	w.mu.Unlock()
	if !ok {
		w.signal()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs[key], id)
			last := len(w.subs[key]) == 0
			if last {
				delete(w.subs, key)
			}
			w.mu.Unlock()
			if last {
				w.signal()
			}
		})
	}
}

func (w *Watcher) signal() {
	select {
	case w.changed <- struct{}{}:
	default:
	}
}

func (w *Watcher) keys() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Sorted(maps.Keys(w.subs))
}

func (w *Watcher) dispatch(ch *api.Change) {
	w.mu.Lock()
	fns := slices.Collect(maps.Values(w.subs[ch.Key]))
	w.mu.Unlock()
	for _, fn := range fns {
		fn(ch)
	}
}

// Run streams until ctx is done. It returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	retry := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(w.minBackoff),
		backoff.WithMaxInterval(w.maxBackoff),
		backoff.WithMaxElapsedTime(0),
	)

	for {
		// The snapshot below already reflects any pending key change.
		select {
		case <-w.changed:
		default:
		}
		keys := w.keys()
		if len(keys) == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-w.changed:
				continue
			}
		}

		restarted, received, err := w.stream(ctx, keys)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if restarted || received {
			retry.Reset()
		}
		if restarted {
			continue
		}

		wait := retry.NextBackOff()
		w.logger.Warn("Realtime stream ended, reconnecting", "error", err, "backoff", wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		case <-w.changed:
		}
	}
}

// stream runs one stream. restarted is true when it was closed because the
// key set changed; received is true if any change arrived.
func (w *Watcher) stream(ctx context.Context, keys []string) (restarted, received bool, err error) {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-streamCtx.Done():
		case <-w.changed:
			restarted = true
			cancel()
		}
	}()

	s, err := w.rt.Subscribe(streamCtx, connect.NewRequest(&api.SubscribeRequest{Keys: keys}))
	if err == nil {
		for s.Receive() {
			received = true
			w.dispatch(s.Msg().Change)
		}
		err = s.Err()
		s.Close()
	}
	cancel()
	<-watchDone

	if restarted {
		return true, received, nil
	}
	if err == nil {
		err = errors.New("stream closed by server")
	}
	return false, received, err
}
