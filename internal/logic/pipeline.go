package logic

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/draftkit/valuation-api/internal/models"
)

// Prometheus metrics
var (
	valuationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "draftkit_valuation_duration_seconds",
		Help:    "Duration of a full valuation pass",
		Buckets: prometheus.DefBuckets,
	})

	valuationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "draftkit_valuation_failures_total",
		Help: "Total number of valuation passes that returned an error",
	})

	playersValued = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "draftkit_players_valued",
		Help: "Number of players in the last valuation pass",
	})

	adpUnmatched = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "draftkit_adp_unmatched_players",
		Help: "Players without a market ADP in the last valuation pass",
	})
)

// EngineConfig holds the league assumptions used when a request does not
// override them.
type EngineConfig struct {
	Weights                 models.ScoringWeights
	Policy                  models.RosterSpotPolicy
	LeagueSize              int
	IncludeZeroPointPlayers bool
	Logger                  *zap.Logger
}

// Inputs is everything one valuation pass reads. Nothing is taken from
// shared state.
type Inputs struct {
	Tables  []models.ProjectionTable
	ADP     []models.ADPEntry
	Drafted []string

	// Optional overrides
	LeagueSize              int
	IncludeZeroPointPlayers *bool
}

// Engine implements ValuationService.
type Engine struct {
	config EngineConfig
	logger *zap.SugaredLogger
}

// NewEngine creates a valuation engine, filling in default weights, policy
// and league size.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Weights == nil {
		cfg.Weights = models.DefaultScoringWeights()
	}
	if cfg.Policy == nil {
		cfg.Policy = models.DefaultRosterSpotPolicy()
	}
	if cfg.LeagueSize <= 0 {
		cfg.LeagueSize = 10
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{config: cfg, logger: cfg.Logger.Sugar()}
}

// Run executes one full valuation pass.
func (e *Engine) Run(ctx context.Context, in Inputs) (*models.Valuation, error) {
	start := time.Now()
	defer func() { valuationDuration.Observe(time.Since(start).Seconds()) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	leagueSize := e.config.LeagueSize
	if in.LeagueSize > 0 {
		leagueSize = in.LeagueSize
	}
	includeZero := e.config.IncludeZeroPointPlayers
	if in.IncludeZeroPointPlayers != nil {
		includeZero = *in.IncludeZeroPointPlayers
	}

	var scored []models.ScoredPlayer
	seen := make(map[string]bool)
	duplicates := 0
	for _, table := range in.Tables {
		for _, p := range ScoreRecords(table.Records, e.config.Weights) {
			key := string(p.Position) + "|" + p.Name
			if seen[key] {
				duplicates++
				continue
			}
			seen[key] = true
			scored = append(scored, p)
		}
	}
	if duplicates > 0 {
		e.logger.Warnw("Dropped duplicate projection rows", "count", duplicates)
	}

	if !includeZero {
		before := len(scored)
		scored = DropNonPositive(scored)
		e.logger.Debugw("Filtered non-positive players", "dropped", before-len(scored))
	}

	ranked := RankByPosition(scored)

	valued, baselines, err := ComputeReplacementValues(ranked, e.config.Policy, leagueSize)
	if err != nil {
		valuationFailures.Inc()
		e.logger.Errorw("Replacement value computation failed", "error", err, "leagueSize", leagueSize)
		return nil, err
	}

	merged, unmatched := MergeADP(valued, in.ADP)

	board := NewDraftBoard(merged)
	board.ApplyDrafted(in.Drafted)

	playersValued.Set(float64(len(merged)))
	adpUnmatched.Set(float64(len(unmatched)))

	e.logger.Infow("Valuation complete",
		"players", len(merged),
		"unmatchedADP", len(unmatched),
		"drafted", board.DraftedCount(),
		"leagueSize", leagueSize,
		"includeZero", includeZero,
		"duration", time.Since(start),
	)

	return &models.Valuation{
		Players:      board.Players(),
		Baselines:    baselines,
		UnmatchedADP: unmatched,
		LeagueSize:   leagueSize,
	}, nil
}
