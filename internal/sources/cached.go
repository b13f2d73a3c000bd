package sources

import (
	"context"
	"time"

	"github.com/draftkit/valuation-api/internal/cache"
	"github.com/draftkit/valuation-api/internal/models"
)

// LeagueProvider is implemented by SleeperClient.
type LeagueProvider interface {
	League(ctx context.Context, leagueID string) (*models.LeagueInfo, error)
	Users(ctx context.Context, leagueID string) ([]models.LeagueUser, error)
	Rosters(ctx context.Context, leagueID string) ([]models.LeagueRoster, error)
	TradedPicks(ctx context.Context, leagueID string) ([]models.TradeRecord, error)
	Players(ctx context.Context) (map[string]models.LeaguePlayer, error)
}

// MarketProvider is implemented by MarketSheetClient.
type MarketProvider interface {
	Market(ctx context.Context, sheet, tab string) ([]models.MarketEntry, error)
}

// CachedLeague memoizes a LeagueProvider. The player directory uses
// PlayersTTL; league-scoped reads use LeagueTTL.
type CachedLeague struct {
	next       LeagueProvider
	memo       *cache.Memo
	playersTTL time.Duration
	leagueTTL  time.Duration
}

// NewCachedLeague wraps next with memo.
func NewCachedLeague(next LeagueProvider, memo *cache.Memo, playersTTL, leagueTTL time.Duration) *CachedLeague {
	return &CachedLeague{next: next, memo: memo, playersTTL: playersTTL, leagueTTL: leagueTTL}
}

func (c *CachedLeague) League(ctx context.Context, leagueID string) (*models.LeagueInfo, error) {
	return cache.Fetch(ctx, c.memo, "sleeper_league", cache.Key("sleeper", "league", leagueID), c.leagueTTL,
		func(ctx context.Context) (*models.LeagueInfo, error) { return c.next.League(ctx, leagueID) })
}

func (c *CachedLeague) Users(ctx context.Context, leagueID string) ([]models.LeagueUser, error) {
	return cache.Fetch(ctx, c.memo, "sleeper_users", cache.Key("sleeper", "users", leagueID), c.leagueTTL,
		func(ctx context.Context) ([]models.LeagueUser, error) { return c.next.Users(ctx, leagueID) })
}

func (c *CachedLeague) Rosters(ctx context.Context, leagueID string) ([]models.LeagueRoster, error) {
	return cache.Fetch(ctx, c.memo, "sleeper_rosters", cache.Key("sleeper", "rosters", leagueID), c.leagueTTL,
		func(ctx context.Context) ([]models.LeagueRoster, error) { return c.next.Rosters(ctx, leagueID) })
}

func (c *CachedLeague) TradedPicks(ctx context.Context, leagueID string) ([]models.TradeRecord, error) {
	return cache.Fetch(ctx, c.memo, "sleeper_traded_picks", cache.Key("sleeper", "traded_picks", leagueID), c.leagueTTL,
		func(ctx context.Context) ([]models.TradeRecord, error) { return c.next.TradedPicks(ctx, leagueID) })
}

func (c *CachedLeague) Players(ctx context.Context) (map[string]models.LeaguePlayer, error) {
	return cache.Fetch(ctx, c.memo, "sleeper_players", cache.Key("sleeper", "players"), c.playersTTL, c.next.Players)
}

// RefreshPlayers re-fetches the player directory into the cache.
func (c *CachedLeague) RefreshPlayers(ctx context.Context) error {
	return cache.Refresh(ctx, c.memo, cache.Key("sleeper", "players"), c.playersTTL, c.next.Players)
}

// RefreshLeague re-fetches every league-scoped read into the cache.
func (c *CachedLeague) RefreshLeague(ctx context.Context, leagueID string) error {
	if err := cache.Refresh(ctx, c.memo, cache.Key("sleeper", "league", leagueID), c.leagueTTL,
		func(ctx context.Context) (*models.LeagueInfo, error) { return c.next.League(ctx, leagueID) }); err != nil {
		return err
	}
	if err := cache.Refresh(ctx, c.memo, cache.Key("sleeper", "users", leagueID), c.leagueTTL,
		func(ctx context.Context) ([]models.LeagueUser, error) { return c.next.Users(ctx, leagueID) }); err != nil {
		return err
	}
	if err := cache.Refresh(ctx, c.memo, cache.Key("sleeper", "rosters", leagueID), c.leagueTTL,
		func(ctx context.Context) ([]models.LeagueRoster, error) { return c.next.Rosters(ctx, leagueID) }); err != nil {
		return err
	}
	return cache.Refresh(ctx, c.memo, cache.Key("sleeper", "traded_picks", leagueID), c.leagueTTL,
		func(ctx context.Context) ([]models.TradeRecord, error) { return c.next.TradedPicks(ctx, leagueID) })
}

// CachedMarket memoizes a MarketProvider per sheet and tab.
type CachedMarket struct {
	next MarketProvider
	memo *cache.Memo
	ttl  time.Duration
}

// NewCachedMarket wraps next with memo.
func NewCachedMarket(next MarketProvider, memo *cache.Memo, ttl time.Duration) *CachedMarket {
	return &CachedMarket{next: next, memo: memo, ttl: ttl}
}

func (c *CachedMarket) Market(ctx context.Context, sheet, tab string) ([]models.MarketEntry, error) {
	return cache.Fetch(ctx, c.memo, "market", cache.Key("market", sheet, tab), c.ttl,
		func(ctx context.Context) ([]models.MarketEntry, error) { return c.next.Market(ctx, sheet, tab) })
}

// Refresh re-fetches one market table into the cache.
func (c *CachedMarket) Refresh(ctx context.Context, sheet, tab string) error {
	return cache.Refresh(ctx, c.memo, cache.Key("market", sheet, tab), c.ttl,
		func(ctx context.Context) ([]models.MarketEntry, error) { return c.next.Market(ctx, sheet, tab) })
}
