package worker

import (
	"context"

	"go.uber.org/zap"
)

// LeagueWarmer re-fetches league-scoped and directory reads into the cache.
type LeagueWarmer interface {
	RefreshLeague(ctx context.Context, leagueID string) error
	RefreshPlayers(ctx context.Context) error
}

// MarketWarmer re-fetches one market table into the cache.
type MarketWarmer interface {
	Refresh(ctx context.Context, sheet, tab string) error
}

// Tracker registers refresh jobs for the leagues and market tables that
// requests actually use.
type Tracker struct {
	schedule *Schedule
	league   LeagueWarmer
	market   MarketWarmer
	logger   *zap.SugaredLogger
}

// NewTracker creates a tracker and registers the player directory job.
func NewTracker(schedule *Schedule, league LeagueWarmer, market MarketWarmer, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{schedule: schedule, league: league, market: market, logger: logger.Sugar()}
	schedule.Register("players", league.RefreshPlayers)
	return t
}

// TrackLeague schedules refreshes for a league and the market table it was
// valued against.
func (t *Tracker) TrackLeague(leagueID, sheet, tab string) {
	for _, job := range t.Jobs(leagueID, sheet, tab) {
		if !t.schedule.Register(job.Name, job.Run) {
			t.logger.Warnw("Refresh schedule full, job not tracked", "job", job.Name)
		}
	}
}

// Jobs builds the refresh jobs for a league and its market table without
// scheduling them.
func (t *Tracker) Jobs(leagueID, sheet, tab string) []Job {
	return []Job{
		{Name: "league:" + leagueID, Run: func(ctx context.Context) error {
			return t.league.RefreshLeague(ctx, leagueID)
		}},
		{Name: "market:" + sheet + ":" + tab, Run: func(ctx context.Context) error {
			return t.market.Refresh(ctx, sheet, tab)
		}},
	}
}
