package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	sdk "github.com/segmentio/kafka-go"
)

// KafkaRelayParams configures a KafkaRelay.
type KafkaRelayParams struct {
	// Required
	Brokers []string
	Topic   string

	// Optional. Every instance needs its own group so that it sees every
	// change; an empty GroupID derives one from the hub origin.
	GroupID          string
	ToProduceBufSize int
}

// ValidateKafkaParams ensures required params are set.
func ValidateKafkaParams(p KafkaRelayParams) error {
	if len(p.Brokers) == 0 {
		return errors.New("kafka brokers are required")
	}
	if p.Topic == "" {
		return errors.New("kafka topic is required")
	}
	return nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...sdk.Message) error
	Close() error
}

type messageReader interface {
	ReadMessage(ctx context.Context) (sdk.Message, error)
	Close() error
}

// envelope is the record value written to the topic.
type envelope struct {
	ID     uuid.UUID `json:"id"`
	Change Change    `json:"change"`
}

// KafkaRelay mirrors locally published changes to a Kafka topic and delivers
// changes published by other instances to the local hub. Messages are keyed
// by resource key so per-key order survives partitioning.
type KafkaRelay struct {
	hub    *Hub
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	writer messageWriter
	reader messageReader
	retry  backoff.BackOff

	toProduce chan Change
	closeOnce sync.Once
}

// NewKafkaRelay connects a relay to hub. Call Start to begin relaying.
func NewKafkaRelay(hub *Hub, params KafkaRelayParams) (*KafkaRelay, error) {
	if err := ValidateKafkaParams(params); err != nil {
		return nil, err
	}
	if params.GroupID == "" {
		params.GroupID = "lostfound-" + hub.Origin()
	}

	writer := &sdk.Writer{
		Addr:                   sdk.TCP(params.Brokers...),
		Topic:                  params.Topic,
		RequiredAcks:           sdk.RequireOne,
		Balancer:               &sdk.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	reader := sdk.NewReader(sdk.ReaderConfig{
		Brokers:     params.Brokers,
		Topic:       params.Topic,
		GroupID:     params.GroupID,
		StartOffset: sdk.LastOffset,
		MaxWait:     250 * time.Millisecond,
	})

	return newKafkaRelay(hub, writer, reader, params.ToProduceBufSize), nil
}

func newKafkaRelay(hub *Hub, writer messageWriter, reader messageReader, bufSize int) *KafkaRelay {
	if bufSize <= 0 {
		bufSize = 1024
	}
	return &KafkaRelay{
		hub:       hub,
		logger:    hub.logger.With("component", "kafka-relay"),
		writer:    writer,
		reader:    reader,
		retry:     newRetry(250*time.Millisecond, 30*time.Second),
		toProduce: make(chan Change, bufSize),
	}
}

// newRetry returns an exponential backoff that never gives up.
func newRetry(initial, maxInterval time.Duration) *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(initial),
		backoff.WithMaxInterval(maxInterval),
		backoff.WithMaxElapsedTime(0),
	)
}

// Start registers the relay as a hub sink and launches the producer and
// consumer workers. They stop when ctx is cancelled or Close is called.
func (r *KafkaRelay) Start(ctx context.Context) {
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.hub.AddSink(r)

	r.wg.Add(2)
	go r.produce()
	go r.consume()
}

// Forward queues a local change for the topic. A full queue drops the
// change; remote subscribers recover on their next resync.
func (r *KafkaRelay) Forward(c Change) {
	if c.Origin != r.hub.Origin() {
		return
	}
	select {
	case r.toProduce <- c:
	default:
		r.logger.Warn("Relay queue full, dropping change", "key", c.Key, "table", c.Table)
	}
}

func (r *KafkaRelay) produce() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case c := <-r.toProduce:
			serialized, err := json.Marshal(envelope{ID: uuid.New(), Change: c})
			if err != nil {
				r.logger.Error("Failed to encode change", "error", err)
				continue
			}
			err = r.writer.WriteMessages(r.ctx, sdk.Message{
				Key:   []byte(c.Key),
				Value: serialized,
			})
			if err != nil {
				if r.ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to publish change", "key", c.Key, "error", err)
				continue
			}
			r.hub.metrics.relayedChange("out")
		}
	}
}

func (r *KafkaRelay) consume() {
	defer r.wg.Done()

	for {
		msg, err := r.reader.ReadMessage(r.ctx)
		if err != nil {
			if r.ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			wait := r.retry.NextBackOff()
			r.logger.Error("Failed to read change", "error", err, "retry_in", wait)
			select {
			case <-r.ctx.Done():
				return
			case <-time.After(wait):
			}
			continue
		}
		r.retry.Reset()

		var env envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			r.logger.Warn("Skipping malformed change", "offset", msg.Offset, "error", err)
			continue
		}
		if env.Change.Origin == r.hub.Origin() {
			continue
		}
		r.hub.metrics.relayedChange("in")
		r.hub.Deliver(env.Change)
	}
}

// Close stops the workers and closes the Kafka connections.
func (r *KafkaRelay) Close() error {
	var errs []error
	r.closeOnce.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
		if err := r.reader.Close(); err != nil {
			errs = append(errs, err)
		}
		r.wg.Wait()
		if err := r.writer.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

var _ Sink = (*KafkaRelay)(nil)
