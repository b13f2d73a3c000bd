package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/draftkit/valuation-api/internal/dynasty"
	"github.com/draftkit/valuation-api/internal/logic"
	"github.com/draftkit/valuation-api/internal/models"
	"github.com/draftkit/valuation-api/internal/sources"
	"github.com/draftkit/valuation-api/internal/worker"
)

// MaxBodySize limits the size of JSON request bodies to 1MB
const MaxBodySize = 1048576

// MaxUploadSize limits the size of CSV table uploads to 10MB
const MaxUploadSize = 10 * MaxBodySize

// RefreshQueue defines the interface for the background refresh pool
type RefreshQueue interface {
	Enqueue(job worker.Job) bool
	QueueDepth() int
}

// DynastyReporter builds dynasty league reports
type DynastyReporter interface {
	Report(ctx context.Context, req dynasty.ReportRequest) (*models.DynastyReport, error)
}

// LeagueTracker schedules background refreshes for requested leagues
type LeagueTracker interface {
	TrackLeague(leagueID, sheet, tab string)
	Jobs(leagueID, sheet, tab string) []worker.Job
}

// RedisPinger is satisfied by *redis.Client
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// PgPinger is satisfied by *pgxpool.Pool
type PgPinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Refresh  RefreshQueue
	Redis    RedisPinger
	Postgres PgPinger
	Logger   *zap.Logger
	// Services
	Valuation logic.ValuationService
	Dynasty   DynastyReporter
	Tracker   LeagueTracker
	Defaults  sources.ProjectionSource
	Sessions  *SessionStore
	// Request defaults
	HeadCount   int
	MarketSheet string
	MarketTab   string
}

type Handler struct {
	refresh     RefreshQueue
	redis       RedisPinger
	pg          PgPinger
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	valuation   logic.ValuationService
	dynasty     DynastyReporter
	tracker     LeagueTracker
	defaults    sources.ProjectionSource
	sessions    *SessionStore
	headCount   int
	marketSheet string
	marketTab   string
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessions := cfg.Sessions
	if sessions == nil {
		sessions = NewSessionStore(0)
	}
	headCount := cfg.HeadCount
	if headCount <= 0 {
		headCount = logic.DefaultHeadCount
	}
	return &Handler{
		refresh:     cfg.Refresh,
		redis:       cfg.Redis,
		pg:          cfg.Postgres,
		logger:      logger.Sugar(),
		validator:   validator.New(),
		valuation:   cfg.Valuation,
		dynasty:     cfg.Dynasty,
		tracker:     cfg.Tracker,
		defaults:    cfg.Defaults,
		sessions:    sessions,
		headCount:   headCount,
		marketSheet: cfg.MarketSheet,
		marketTab:   cfg.MarketTab,
	}
}
