package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealth(t *testing.T) {
	h := newTestHandler(Config{})
	rr := do(newTestRouter(h), "GET", "/health", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantStatus int
		wantChecks int
	}{
		{
			name:       "No dependencies configured",
			cfg:        Config{},
			wantStatus: http.StatusOK,
			wantChecks: 0,
		},
		{
			name: "All healthy",
			cfg: Config{
				Redis:    &MockRedisPinger{},
				Postgres: &MockPgPinger{},
				Refresh:  &MockRefreshQueue{Depth: 3},
			},
			wantStatus: http.StatusOK,
			wantChecks: 2,
		},
		{
			name: "Redis down",
			cfg: Config{
				Redis:    &MockRedisPinger{Err: errors.New("connection refused")},
				Postgres: &MockPgPinger{},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: 2,
		},
		{
			name:       "Postgres down",
			cfg:        Config{Postgres: &MockPgPinger{Err: errors.New("timeout")}},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.cfg)
			rr := do(newTestRouter(h), "GET", "/ready", "")

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			var body struct {
				Ready      bool            `json:"ready"`
				Checks     map[string]bool `json:"checks"`
				QueueDepth int             `json:"queueDepth"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if len(body.Checks) != tt.wantChecks {
				t.Errorf("expected %d checks, got %v", tt.wantChecks, body.Checks)
			}
			if body.Ready != (tt.wantStatus == http.StatusOK) {
				t.Errorf("ready flag %v does not match status %d", body.Ready, rr.Code)
			}
			if q, ok := tt.cfg.Refresh.(*MockRefreshQueue); ok && body.QueueDepth != q.Depth {
				t.Errorf("expected queue depth %d, got %d", q.Depth, body.QueueDepth)
			}
		})
	}
}
