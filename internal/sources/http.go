package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultTimeout = 15 * time.Second

var (
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "draftkit_source_fetch_duration_seconds",
		Help:    "Upstream fetch latency by source",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	fetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draftkit_source_fetch_failures_total",
		Help: "Upstream fetches that failed, by source",
	}, []string{"source"})
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw, fallback string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return fallback
	}
	return base
}

// get issues a GET and returns the open body on 200. The caller closes it.
func get(ctx context.Context, client httpDoer, source, url string) (io.ReadCloser, error) {
	start := time.Now()
	defer func() { fetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds()) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fetchFailures.WithLabelValues(source).Inc()
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		fetchFailures.WithLabelValues(source).Inc()
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		fetchFailures.WithLabelValues(source).Inc()
		return nil, fmt.Errorf("%s: unexpected status %d: %s", source, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp.Body, nil
}

func getJSON(ctx context.Context, client httpDoer, source, url string, out any) error {
	body, err := get(ctx, client, source, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		fetchFailures.WithLabelValues(source).Inc()
		return fmt.Errorf("%s: decode: %w", source, err)
	}
	return nil
}
