package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/draftkit/valuation-api/internal/dynasty"
	"github.com/draftkit/valuation-api/internal/logic"
	"github.com/draftkit/valuation-api/internal/models"
	"github.com/draftkit/valuation-api/internal/sources"
	"github.com/draftkit/valuation-api/internal/worker"
)

// MockValuationService
type MockValuationService struct {
	RunFunc func(ctx context.Context, in logic.Inputs) (*models.Valuation, error)
}

func (m *MockValuationService) Run(ctx context.Context, in logic.Inputs) (*models.Valuation, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, in)
	}
	return &models.Valuation{Players: []models.ValuedPlayer{}}, nil
}

// MockDynastyReporter
type MockDynastyReporter struct {
	ReportFunc func(ctx context.Context, req dynasty.ReportRequest) (*models.DynastyReport, error)
}

func (m *MockDynastyReporter) Report(ctx context.Context, req dynasty.ReportRequest) (*models.DynastyReport, error) {
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx, req)
	}
	return &models.DynastyReport{LeagueID: req.LeagueID, Format: req.Format}, nil
}

// MockTracker records tracked leagues.
type MockTracker struct {
	Tracked []string
}

func (m *MockTracker) TrackLeague(leagueID, sheet, tab string) {
	m.Tracked = append(m.Tracked, leagueID+"|"+sheet+"|"+tab)
}

func (m *MockTracker) Jobs(leagueID, sheet, tab string) []worker.Job {
	noop := func(ctx context.Context) error { return nil }
	return []worker.Job{
		{Name: "league:" + leagueID, Run: noop},
		{Name: "market:" + sheet + ":" + tab, Run: noop},
	}
}

// MockRefreshQueue accepts up to Capacity jobs; zero means unlimited.
type MockRefreshQueue struct {
	Depth    int
	Capacity int
	Jobs     []worker.Job
}

func (m *MockRefreshQueue) Enqueue(job worker.Job) bool {
	if m.Capacity > 0 && len(m.Jobs) >= m.Capacity {
		return false
	}
	m.Jobs = append(m.Jobs, job)
	return true
}
func (m *MockRefreshQueue) QueueDepth() int { return m.Depth }

type MockRedisPinger struct {
	Err error
}

func (m *MockRedisPinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.Err)
}

type MockPgPinger struct {
	Err error
}

func (m *MockPgPinger) Ping(ctx context.Context) error { return m.Err }

type MockProjectionSource struct {
	LoadFunc func(ctx context.Context) (*sources.TableSet, error)
}

func (m *MockProjectionSource) Load(ctx context.Context) (*sources.TableSet, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return &sources.TableSet{}, nil
}

// newTestRouter wires h the way cmd/api does.
func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Route("/api/v1", h.Routes)
	return r
}

func newTestHandler(cfg Config) *Handler {
	cfg.Logger = zap.NewNop()
	if cfg.Valuation == nil {
		cfg.Valuation = &MockValuationService{}
	}
	return New(cfg)
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func valued(name string, pos models.Position, points float64, rank int) models.ValuedPlayer {
	return models.ValuedPlayer{
		ScoredPlayer: models.ScoredPlayer{
			ProjectionRecord: models.ProjectionRecord{Name: name, Position: pos},
			FantasyPoints:    points,
			PositionRank:     rank,
		},
		VORP: points / 2,
		VOBP: points / 4,
		ADP:  models.Inf,
	}
}
