package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draftkit_cache_hits_total",
		Help: "Memoized reads served from the cache",
	}, []string{"source"})
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draftkit_cache_misses_total",
		Help: "Memoized reads that called the underlying source",
	}, []string{"source"})
	cacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draftkit_cache_errors_total",
		Help: "Cache store failures, by operation",
	}, []string{"op"})
)

// DefaultFetchTimeout bounds a shared fetch once it is detached from its
// callers.
const DefaultFetchTimeout = 30 * time.Second

// Memo wraps a Store with JSON encoding and metrics. Store failures are
// logged and bypassed; they never fail a read. Concurrent misses on one key
// share a single fetch, which outlives any one caller's context.
type Memo struct {
	store        Store
	logger       *zap.SugaredLogger
	flight       singleflight.Group
	fetchTimeout time.Duration
}

// NewMemo creates a memo over store.
func NewMemo(store Store, logger *zap.Logger) *Memo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memo{store: store, logger: logger.Sugar(), fetchTimeout: DefaultFetchTimeout}
}

// WithFetchTimeout sets the bound on shared fetches. Non-positive values
// keep the current bound.
func (m *Memo) WithFetchTimeout(d time.Duration) *Memo {
	if d > 0 {
		m.fetchTimeout = d
	}
	return m
}

// Key joins a source name and its arguments.
func Key(source string, args ...string) string {
	k := source
	for _, a := range args {
		k += ":" + a
	}
	return k
}

// Fetch returns the cached value for key or calls fetch and caches its result
// for ttl. Errors from fetch are returned and never cached.
func Fetch[T any](ctx context.Context, m *Memo, source, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	raw, ok, err := m.store.Get(ctx, key)
	if err != nil {
		cacheErrors.WithLabelValues("get").Inc()
		m.logger.Warnw("Cache read failed", "key", key, "error", err)
	}
	if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			cacheHits.WithLabelValues(source).Inc()
			return v, nil
		}
		cacheErrors.WithLabelValues("decode").Inc()
		m.logger.Warnw("Discarding undecodable cache entry", "key", key)
	}

	cacheMisses.WithLabelValues(source).Inc()
	ch := m.flight.DoChan(key, func() (any, error) {
		// Callers wait on their own contexts; the fetch keeps the values of
		// the first one but not its cancellation.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.fetchTimeout)
		defer cancel()
		v, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		m.put(fctx, key, v, ttl)
		return v, nil
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Refresh calls fetch unconditionally and overwrites the cached value.
func Refresh[T any](ctx context.Context, m *Memo, key string, ttl time.Duration, fetch func(context.Context) (T, error)) error {
	v, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", key, err)
	}
	m.put(ctx, key, v, ttl)
	return nil
}

// Invalidate drops key from the store.
func (m *Memo) Invalidate(ctx context.Context, key string) error {
	return m.store.Delete(ctx, key)
}

func (m *Memo) put(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		cacheErrors.WithLabelValues("encode").Inc()
		m.logger.Warnw("Cache encode failed", "key", key, "error", err)
		return
	}
	if err := m.store.Set(ctx, key, raw, ttl); err != nil {
		cacheErrors.WithLabelValues("set").Inc()
		m.logger.Warnw("Cache write failed", "key", key, "error", err)
	}
}
