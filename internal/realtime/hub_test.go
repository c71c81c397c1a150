package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects changes delivered to one subscription.
type recorder struct {
	mu      sync.Mutex
	changes []Change
	notify  chan struct{}
}

func newRecorder() *recorder {
	return &recorder{notify: make(chan struct{}, 1024)}
}

func (r *recorder) onChange(c Change) {
	r.mu.Lock()
	r.changes = append(r.changes, c)
	r.mu.Unlock()
	r.notify <- struct{}{}
}

func (r *recorder) wait(t *testing.T, n int) []Change {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		r.mu.Lock()
		got := len(r.changes)
		r.mu.Unlock()
		if got >= n {
			break
		}
		select {
		case <-r.notify:
		case <-deadline:
			t.Fatalf("timed out waiting for %d changes, got %d", n, got)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Change(nil), r.changes...)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}

func TestHub_DeliversInOrderPerKey(t *testing.T) {
	hub := NewHub(HubOptions{Buffer: 128, Origin: "test"})
	defer hub.Close()

	rec := newRecorder()
	hub.Subscribe(ItemsKey("t1"), rec.onChange)

	other := newRecorder()
	hub.Subscribe(ItemsKey("t2"), other.onChange)

	for i := 0; i < 20; i++ {
		hub.Publish(Change{Key: ItemsKey("t1"), Table: TableItems, Op: OpInsert, RowID: string(rune('a' + i))})
	}

	got := rec.wait(t, 20)
	for i, c := range got {
		assert.Equal(t, string(rune('a'+i)), c.RowID)
		assert.Equal(t, "test", c.Origin)
		assert.NotEmpty(t, c.ID)
		assert.NotZero(t, c.At)
	}
	assert.Zero(t, other.count())
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub(HubOptions{})
	defer hub.Close()

	rec := newRecorder()
	key := NotificationsKey("u1")
	tok := hub.Subscribe(key, rec.onChange)
	require.NotZero(t, tok)
	assert.Equal(t, 1, hub.Subscribers(key))

	hub.Unsubscribe(tok)
	hub.Unsubscribe(tok)
	hub.Unsubscribe(Token(9999))
	assert.Equal(t, 0, hub.Subscribers(key))

	hub.Publish(Change{Key: key, Table: TableNotifications, Op: OpInsert})
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, rec.count())
}

func TestHub_UnsubscribeFromCallback(t *testing.T) {
	hub := NewHub(HubOptions{})
	defer hub.Close()

	key := ConversationKey("c1")
	var tok Token
	calls := make(chan Change, 10)
	var once sync.Once
	ready := make(chan struct{})
	tok = hub.Subscribe(key, func(c Change) {
		<-ready
		calls <- c
		once.Do(func() { hub.Unsubscribe(tok) })
	})
	close(ready)

	hub.Publish(Change{Key: key, Table: TableMessages, Op: OpInsert})
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never ran")
	}

	hub.Publish(Change{Key: key, Table: TableMessages, Op: OpInsert})
	select {
	case c := <-calls:
		t.Fatalf("unexpected delivery after unsubscribe: %+v", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SlowSubscriberCollapsesToResync(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	hub := NewHub(HubOptions{Buffer: 4, Metrics: metrics})
	defer hub.Close()

	key := ClaimsKey("i1")
	release := make(chan struct{})
	rec := newRecorder()
	first := true
	hub.Subscribe(key, func(c Change) {
		if first {
			first = false
			<-release
		}
		rec.onChange(c)
	})

	// The first change blocks the callback; the rest pile up in the queue.
	hub.Publish(Change{Key: key, Table: TableClaims, Op: OpInsert, RowID: "0"})
	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		for i := 1; i <= 10; i++ {
			hub.Publish(Change{Key: key, Table: TableClaims, Op: OpUpdate, RowID: "x"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	close(release)

	time.Sleep(100 * time.Millisecond)
	got := rec.wait(t, 2)
	assert.Equal(t, "0", got[0].RowID)

	var resyncs int
	for _, c := range got[1:] {
		if c.Op == OpResync {
			resyncs++
			assert.Equal(t, key, c.Key)
		}
	}
	assert.Equal(t, 1, resyncs, "overflow should collapse into exactly one resync")
	assert.LessOrEqual(t, len(got), 1+4)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.resyncs))
	assert.Equal(t, float64(11), testutil.ToFloat64(metrics.published.WithLabelValues(TableClaims)))
}

func TestHub_CallbackPanicDoesNotKillSubscription(t *testing.T) {
	hub := NewHub(HubOptions{})
	defer hub.Close()

	key := ProfileKey("u1")
	rec := newRecorder()
	hub.Subscribe(key, func(c Change) {
		if c.RowID == "boom" {
			panic("boom")
		}
		rec.onChange(c)
	})

	hub.Publish(
		Change{Key: key, Table: TableProfiles, Op: OpUpdate, RowID: "boom"},
		Change{Key: key, Table: TableProfiles, Op: OpUpdate, RowID: "ok"},
	)
	got := rec.wait(t, 1)
	assert.Equal(t, "ok", got[0].RowID)
}

type sinkFunc func(Change)

func (f sinkFunc) Forward(c Change) { f(c) }

func TestHub_SinksSeeLocalChangesOnly(t *testing.T) {
	hub := NewHub(HubOptions{Origin: "local"})
	defer hub.Close()

	var mu sync.Mutex
	var forwarded []Change
	hub.AddSink(sinkFunc(func(c Change) {
		mu.Lock()
		forwarded = append(forwarded, c)
		mu.Unlock()
	}))

	rec := newRecorder()
	key := ItemsKey("t1")
	hub.Subscribe(key, rec.onChange)

	hub.Publish(Change{Key: key, Table: TableItems, Op: OpInsert, RowID: "local"})
	hub.Deliver(Change{Key: key, Table: TableItems, Op: OpInsert, RowID: "remote", Origin: "elsewhere"})

	got := rec.wait(t, 2)
	assert.Equal(t, "local", got[0].RowID)
	assert.Equal(t, "remote", got[1].RowID)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, forwarded, 1)
	assert.Equal(t, "local", forwarded[0].RowID)
}

func TestHub_Close(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	hub := NewHub(HubOptions{Metrics: metrics})

	hub.Subscribe(ItemsKey("t1"), func(Change) {})
	hub.Subscribe(ItemsKey("t2"), func(Change) {})
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.subscribers))

	hub.Close()
	hub.Close()
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.subscribers))
	assert.Zero(t, hub.Subscribe(ItemsKey("t1"), func(Change) {}))
	hub.Publish(Change{Key: ItemsKey("t1")})
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key      string
		wantKind string
		wantID   string
		wantErr  bool
	}{
		{key: ProfileKey("u1"), wantKind: KindProfile, wantID: "u1"},
		{key: ItemsKey("t1"), wantKind: KindItems, wantID: "t1"},
		{key: ConversationsKey("u1"), wantKind: KindConversations, wantID: "u1"},
		{key: "claims:abc:def", wantKind: KindClaims, wantID: "abc:def"},
		{key: "items:", wantErr: true},
		{key: "items", wantErr: true},
		{key: "groups:g1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			kind, id, err := ParseKey(tt.key)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
