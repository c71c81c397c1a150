package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsInterceptor records request counts and latencies per procedure and
// tracks open server streams.
type MetricsInterceptor struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	streams  *prometheus.GaugeVec
}

var _ connect.Interceptor = (*MetricsInterceptor)(nil)

// NewMetricsInterceptor registers the RPC metrics with reg.
func NewMetricsInterceptor(reg prometheus.Registerer) *MetricsInterceptor {
	f := promauto.With(reg)
	return &MetricsInterceptor{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lostfound",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "RPCs handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lostfound",
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "Unary RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		streams: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "lostfound",
			Subsystem: "rpc",
			Name:      "open_streams",
			Help:      "Server streams currently open.",
		}, []string{"procedure"}),
	}
}

func (m *MetricsInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		procedure := req.Spec().Procedure
		start := time.Now()
		resp, err := next(ctx, req)
		m.duration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(procedure, codeOf(err)).Inc()
		return resp, err
	}
}

func (m *MetricsInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (m *MetricsInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		procedure := conn.Spec().Procedure
		gauge := m.streams.WithLabelValues(procedure)
		gauge.Inc()
		defer gauge.Dec()

		err := next(ctx, conn)
		m.requests.WithLabelValues(procedure, codeOf(err)).Inc()
		return err
	}
}

func codeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}
