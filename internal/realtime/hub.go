package realtime

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Token identifies one subscription. The zero Token is never issued.
type Token uint64

// Sink receives every change published locally on a hub, e.g. to relay it to
// other instances. Forward must not block.
type Sink interface {
	Forward(Change)
}

// HubOptions configures a Hub.
type HubOptions struct {
	// Buffer is the per-subscriber queue length before changes collapse into
	// a resync. Defaults to 64.
	Buffer int
	// Origin names this hub in published changes. Defaults to a random UUID.
	Origin  string
	Metrics *Metrics
	Logger  *slog.Logger
}

// Hub delivers changes to subscribers of a resource key. Publish never
// blocks; each subscriber has its own goroutine that invokes its callback
// sequentially, in publish order.
type Hub struct {
	buffer  int
	origin  string
	metrics *Metrics
	logger  *slog.Logger

	mu     sync.RWMutex
	byKey  map[string]map[Token]*subscriber
	byTok  map[Token]*subscriber
	sinks  []Sink
	next   Token
	closed bool
}

// NewHub creates an empty hub.
func NewHub(opts HubOptions) *Hub {
	if opts.Buffer <= 0 {
		opts.Buffer = 64
	}
	if opts.Origin == "" {
		opts.Origin = uuid.NewString()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Hub{
		buffer:  opts.Buffer,
		origin:  opts.Origin,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		byKey:   make(map[string]map[Token]*subscriber),
		byTok:   make(map[Token]*subscriber),
	}
}

// Origin returns the name this hub stamps on its own changes.
func (h *Hub) Origin() string { return h.origin }

// AddSink registers s to receive every locally published change.
func (h *Hub) AddSink(s Sink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks = append(h.sinks, s)
}

// Subscribe registers onChange for key. The callback runs on a dedicated
// goroutine, one change at a time. Subscribing on a closed hub returns the
// zero Token and never calls onChange.
func (h *Hub) Subscribe(key string, onChange func(Change)) Token {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return 0
	}

	h.next++
	sub := &subscriber{
		token:  h.next,
		key:    key,
		fn:     onChange,
		limit:  h.buffer,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: h.logger,
	}
	subs, ok := h.byKey[key]
	if !ok {
		subs = make(map[Token]*subscriber)
		h.byKey[key] = subs
	}
	subs[sub.token] = sub
	h.byTok[sub.token] = sub
	h.metrics.subscribed(1)

	go sub.run(h.metrics)
	return sub.token
}

// Unsubscribe removes the subscription. It is idempotent and safe to call
// from inside the subscription's own callback. Once it returns, queued
// changes for tok are discarded; a callback already running finishes.
func (h *Hub) Unsubscribe(tok Token) {
	h.mu.Lock()
	sub, ok := h.byTok[tok]
	if ok {
		delete(h.byTok, tok)
		if subs := h.byKey[sub.key]; subs != nil {
			delete(subs, tok)
			if len(subs) == 0 {
				delete(h.byKey, sub.key)
			}
		}
	}
	h.mu.Unlock()

	if ok {
		sub.stop()
		h.metrics.subscribed(-1)
	}
}

// Publish stamps and delivers changes to local subscribers, then hands them
// to every sink.
func (h *Hub) Publish(changes ...Change) {
	for _, c := range changes {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Origin == "" {
			c.Origin = h.origin
		}
		if c.At == 0 {
			c.At = time.Now().UnixMilli()
		}
		h.metrics.publishedChange(c.Table)

		sinks := h.deliver(c)
		for _, s := range sinks {
			s.Forward(c)
		}
	}
}

// Deliver hands a change received from another instance to local
// subscribers only.
func (h *Hub) Deliver(c Change) {
	h.deliver(c)
}

func (h *Hub) deliver(c Change) []Sink {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return nil
	}
	for _, sub := range h.byKey[c.Key] {
		sub.enqueue(c)
	}
	return h.sinks
}

// Subscribers returns the number of active subscriptions for key.
func (h *Hub) Subscribers(key string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byKey[key])
}

// Close stops every subscription. Later publishes are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := h.byTok
	h.byTok = make(map[Token]*subscriber)
	h.byKey = make(map[string]map[Token]*subscriber)
	h.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
		h.metrics.subscribed(-1)
	}
}

type subscriber struct {
	token  Token
	key    string
	fn     func(Change)
	limit  int
	logger *slog.Logger

	mu      sync.Mutex
	queue   []Change
	wake    chan struct{}
	done    chan struct{}
	stopped atomic.Bool
	once    sync.Once
}

// enqueue appends c. A full queue is replaced by one resync change.
func (s *subscriber) enqueue(c Change) {
	if s.stopped.Load() {
		return
	}
	s.mu.Lock()
	if len(s.queue) >= s.limit {
		s.queue = append(s.queue[:0], Change{
			ID:       uuid.NewString(),
			Key:      s.key,
			Table:    c.Table,
			Op:       OpResync,
			TenantID: c.TenantID,
			Origin:   c.Origin,
			At:       time.Now().UnixMilli(),
		})
		s.mu.Unlock()
		s.logger.Warn("Subscriber queue full, collapsing to resync", "key", s.key, "token", s.token)
	} else {
		s.queue = append(s.queue, c)
		s.mu.Unlock()
	}

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) stop() {
	s.once.Do(func() {
		s.stopped.Store(true)
		close(s.done)
	})
}

func (s *subscriber) run(m *Metrics) {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, c := range batch {
			if s.stopped.Load() {
				return
			}
			if c.Op == OpResync {
				m.resynced()
			}
			s.call(c)
		}
	}
}

func (s *subscriber) call(c Change) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Subscriber callback panicked", "key", s.key, "panic", r)
		}
	}()
	s.fn(c)
}
