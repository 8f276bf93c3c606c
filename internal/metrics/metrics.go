// Package metrics holds the process-wide Prometheus collectors and the
// /metrics HTTP endpoint.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	// RPCRequests counts unary calls.
	// Labels:
	//   - method: full gRPC method name
	//   - code: gRPC status code name
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelread_rpc_requests_total",
			Help: "Total number of unary gRPC requests",
		},
		[]string{"method", "code"},
	)

	// RPCDuration measures handler latency.
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelread_rpc_duration_seconds",
			Help:    "Duration of unary gRPC requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method"},
	)

	// RatingRecomputeFailures counts aggregate recomputes that failed after
	// the review write succeeded. The media row keeps stale aggregates until
	// its next review mutation.
	RatingRecomputeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelread_rating_recompute_failures_total",
			Help: "Total number of failed avg_rating/rating_count recomputes",
		},
		[]string{"kind"},
	)

	// CollectionConflicts counts optimistic-concurrency retries.
	// Labels:
	//   - outcome: "retried", "exhausted"
	CollectionConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelread_collection_conflicts_total",
			Help: "Conditional collection updates that lost to a concurrent write",
		},
		[]string{"outcome"},
	)

	// RecapCache counts recap cache lookups.
	// Labels:
	//   - result: "hit", "miss"
	RecapCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelread_recap_cache_total",
			Help: "Recap cache lookups by result",
		},
		[]string{"result"},
	)

	// PushDeliveries counts push batches.
	// Labels:
	//   - outcome: "sent", "failed", "skipped", "breaker_open"
	PushDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelread_push_deliveries_total",
			Help: "Push notification batches by outcome",
		},
		[]string{"outcome"},
	)
)

// UnaryServerInterceptor records RPCRequests and RPCDuration.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		RPCDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		RPCRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		return resp, err
	}
}

// Serve exposes the default registry on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
