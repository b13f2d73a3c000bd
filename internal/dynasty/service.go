package dynasty

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/draftkit/valuation-api/internal/models"
)

// View names used as keys in DynastyReport.Errors.
const (
	ViewTeams     = "teams"
	ViewPicks     = "picks"
	ViewUndrafted = "undrafted"
)

var (
	reportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "draftkit_dynasty_report_duration_seconds",
		Help:    "Time spent fetching and resolving a dynasty report",
		Buckets: prometheus.DefBuckets,
	})
	viewErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "draftkit_dynasty_view_errors_total",
		Help: "Dynasty report views that could not be rendered",
	}, []string{"view"})
)

// LeagueSource reads league state from a fantasy platform.
type LeagueSource interface {
	League(ctx context.Context, leagueID string) (*models.LeagueInfo, error)
	Users(ctx context.Context, leagueID string) ([]models.LeagueUser, error)
	Rosters(ctx context.Context, leagueID string) ([]models.LeagueRoster, error)
	TradedPicks(ctx context.Context, leagueID string) ([]models.TradeRecord, error)
	Players(ctx context.Context) (map[string]models.LeaguePlayer, error)
}

// MarketSource reads a market value table.
type MarketSource interface {
	Market(ctx context.Context, sheet, tab string) ([]models.MarketEntry, error)
}

// ServiceConfig holds dynasty service dependencies.
type ServiceConfig struct {
	League      LeagueSource
	Market      MarketSource
	Logger      *zap.Logger
	FuzzyCutoff float64
	Seasons     int
	Rounds      int
}

// Service assembles dynasty reports from live sources.
type Service struct {
	league  LeagueSource
	market  MarketSource
	logger  *zap.SugaredLogger
	cutoff  float64
	seasons int
	rounds  int
}

// NewService creates a dynasty service.
func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		league:  cfg.League,
		market:  cfg.Market,
		logger:  logger.Sugar(),
		cutoff:  cfg.FuzzyCutoff,
		seasons: cfg.Seasons,
		rounds:  cfg.Rounds,
	}
}

// ReportRequest identifies the league and market table to resolve.
type ReportRequest struct {
	LeagueID string
	Sheet    string
	Tab      string
	Format   models.MarketFormat
}

// fetched holds each independent input with its own error.
type fetched struct {
	info       *models.LeagueInfo
	infoErr    error
	users      []models.LeagueUser
	usersErr   error
	rosters    []models.LeagueRoster
	rostersErr error
	trades     []models.TradeRecord
	tradesErr  error
	players    map[string]models.LeaguePlayer
	playersErr error
	market     []models.MarketEntry
	marketErr  error
}

// Report fetches every input concurrently and renders each view whose inputs
// arrived. A failed input marks only the views that depend on it.
func (s *Service) Report(ctx context.Context, req ReportRequest) (*models.DynastyReport, error) {
	if req.LeagueID == "" {
		return nil, fmt.Errorf("league id is required")
	}
	start := time.Now()
	defer func() { reportDuration.Observe(time.Since(start).Seconds()) }()

	f := s.fetch(ctx, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &models.DynastyReport{
		LeagueID:  req.LeagueID,
		Format:    req.Format,
		Teams:     []models.TeamValuation{},
		Picks:     []models.DraftPick{},
		Undrafted: []models.AssetValue{},
		Errors:    map[string]string{},
	}
	if report.Format == "" {
		report.Format = models.MarketFormatSuperflex
	}

	data := LeagueData{
		LeagueID:    req.LeagueID,
		Users:       f.users,
		Rosters:     f.rosters,
		TradedPicks: f.trades,
		Players:     f.players,
	}
	if f.info != nil {
		data.FirstSeason = f.info.FirstDraftSeason()
	}
	resolver := NewResolver(NewMatcher(f.market, s.cutoff), report.Format, s.seasons, s.rounds)

	var picks []models.DraftPick
	if err := firstErr(
		named("market", f.marketErr),
		named("league", f.infoErr),
		named("rosters", f.rostersErr),
		named("traded picks", f.tradesErr),
	); err != nil {
		s.viewFailed(report, ViewPicks, err)
	} else {
		picks, report.Warnings = resolver.ResolvePicks(data)
		report.Picks = picks
	}

	if err := firstErr(
		named("market", f.marketErr),
		named("rosters", f.rostersErr),
		named("users", f.usersErr),
		named("players", f.playersErr),
	); err != nil {
		s.viewFailed(report, ViewTeams, err)
	} else {
		report.Teams = resolver.TeamValuations(data, picks)
	}

	if err := firstErr(
		named("market", f.marketErr),
		named("rosters", f.rostersErr),
		named("players", f.playersErr),
	); err != nil {
		s.viewFailed(report, ViewUndrafted, err)
	} else {
		report.Undrafted = resolver.UndraftedPlayers(data)
	}

	s.logger.Infow("Dynasty report resolved",
		"league", req.LeagueID,
		"format", report.Format,
		"teams", len(report.Teams),
		"picks", len(report.Picks),
		"undrafted", len(report.Undrafted),
		"warnings", len(report.Warnings),
		"errors", len(report.Errors),
	)
	return report, nil
}

func (s *Service) fetch(ctx context.Context, req ReportRequest) *fetched {
	f := &fetched{}
	g, ctx := errgroup.WithContext(ctx)

	// Fetch errors are recorded on f rather than returned so one failing
	// source does not cancel the others.
	g.Go(func() error {
		f.info, f.infoErr = s.league.League(ctx, req.LeagueID)
		return nil
	})
	g.Go(func() error {
		f.users, f.usersErr = s.league.Users(ctx, req.LeagueID)
		return nil
	})
	g.Go(func() error {
		f.rosters, f.rostersErr = s.league.Rosters(ctx, req.LeagueID)
		return nil
	})
	g.Go(func() error {
		f.trades, f.tradesErr = s.league.TradedPicks(ctx, req.LeagueID)
		return nil
	})
	g.Go(func() error {
		f.players, f.playersErr = s.league.Players(ctx)
		return nil
	})
	g.Go(func() error {
		f.market, f.marketErr = s.market.Market(ctx, req.Sheet, req.Tab)
		return nil
	})

	_ = g.Wait()
	return f
}

func (s *Service) viewFailed(report *models.DynastyReport, view string, err error) {
	viewErrors.WithLabelValues(view).Inc()
	report.Errors[view] = err.Error()
	s.logger.Warnw("Dynasty view unavailable", "league", report.LeagueID, "view", view, "error", err)
}

func named(source string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", source, err)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
