package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/draftkit/valuation-api/internal/models"
)

// DefaultSleeperBaseURL is the public Sleeper API root.
const DefaultSleeperBaseURL = "https://api.sleeper.app/v1"

// SleeperConfig controls how the Sleeper client reaches the API.
type SleeperConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// SleeperClient reads league state from the Sleeper API.
type SleeperClient struct {
	baseURL    string
	httpClient httpDoer
}

// NewSleeperClient constructs a Sleeper client.
func NewSleeperClient(cfg SleeperConfig) *SleeperClient {
	return &SleeperClient{
		baseURL:    normalizeBaseURL(cfg.BaseURL, DefaultSleeperBaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

type sleeperLeague struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"total_rosters"`
}

type sleeperUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

type sleeperRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
	Starters []string `json:"starters"`
	Reserve  []string `json:"reserve"`
	Taxi     []string `json:"taxi"`
	Settings struct {
		Wins        int `json:"wins"`
		Losses      int `json:"losses"`
		Fpts        int `json:"fpts"`
		FptsDecimal int `json:"fpts_decimal"`
	} `json:"settings"`
}

type sleeperTradedPick struct {
	Season          string `json:"season"`
	Round           int    `json:"round"`
	RosterID        int    `json:"roster_id"`
	PreviousOwnerID int    `json:"previous_owner_id"`
	OwnerID         int    `json:"owner_id"`
}

type sleeperPlayer struct {
	PlayerID         string   `json:"player_id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Team             string   `json:"team"`
	FantasyPositions []string `json:"fantasy_positions"`
	Age              float64  `json:"age"`
	YearsExp         int      `json:"years_exp"`
}

func (c *SleeperClient) leagueURL(leagueID, suffix string) string {
	return c.baseURL + "/league/" + url.PathEscape(leagueID) + suffix
}

// League returns league metadata.
func (c *SleeperClient) League(ctx context.Context, leagueID string) (*models.LeagueInfo, error) {
	var raw sleeperLeague
	if err := getJSON(ctx, c.httpClient, "sleeper", c.leagueURL(leagueID, ""), &raw); err != nil {
		return nil, err
	}
	season, _ := strconv.Atoi(raw.Season)
	return &models.LeagueInfo{
		LeagueID:     raw.LeagueID,
		Name:         raw.Name,
		Season:       season,
		Status:       raw.Status,
		TotalRosters: raw.TotalRosters,
	}, nil
}

// Users returns the league's members.
func (c *SleeperClient) Users(ctx context.Context, leagueID string) ([]models.LeagueUser, error) {
	var raw []sleeperUser
	if err := getJSON(ctx, c.httpClient, "sleeper", c.leagueURL(leagueID, "/users"), &raw); err != nil {
		return nil, err
	}
	users := make([]models.LeagueUser, 0, len(raw))
	for _, u := range raw {
		users = append(users, models.LeagueUser{
			UserID:      u.UserID,
			DisplayName: u.DisplayName,
			TeamName:    u.Metadata.TeamName,
		})
	}
	return users, nil
}

// Rosters returns every roster with its record.
func (c *SleeperClient) Rosters(ctx context.Context, leagueID string) ([]models.LeagueRoster, error) {
	var raw []sleeperRoster
	if err := getJSON(ctx, c.httpClient, "sleeper", c.leagueURL(leagueID, "/rosters"), &raw); err != nil {
		return nil, err
	}
	rosters := make([]models.LeagueRoster, 0, len(raw))
	for _, r := range raw {
		rosters = append(rosters, models.LeagueRoster{
			RosterID:  r.RosterID,
			OwnerID:   r.OwnerID,
			Players:   r.Players,
			Starters:  r.Starters,
			Reserve:   r.Reserve,
			Taxi:      r.Taxi,
			Wins:      r.Settings.Wins,
			Losses:    r.Settings.Losses,
			PointsFor: float64(r.Settings.Fpts) + float64(r.Settings.FptsDecimal)/100,
		})
	}
	return rosters, nil
}

// TradedPicks returns the league's traded picks as trade records. Sleeper
// reports the current owner of each moved pick, so each becomes a single
// move from the original roster to the current owner.
func (c *SleeperClient) TradedPicks(ctx context.Context, leagueID string) ([]models.TradeRecord, error) {
	var raw []sleeperTradedPick
	if err := getJSON(ctx, c.httpClient, "sleeper", c.leagueURL(leagueID, "/traded_picks"), &raw); err != nil {
		return nil, err
	}
	trades := make([]models.TradeRecord, 0, len(raw))
	for _, p := range raw {
		if p.OwnerID == p.RosterID {
			continue
		}
		season, _ := strconv.Atoi(p.Season)
		trades = append(trades, models.TradeRecord{
			Season:        season,
			Round:         p.Round,
			OriginalOwner: p.RosterID,
			From:          p.RosterID,
			To:            p.OwnerID,
		})
	}
	return trades, nil
}

// Players returns the full NFL player directory keyed by player id.
func (c *SleeperClient) Players(ctx context.Context) (map[string]models.LeaguePlayer, error) {
	var raw map[string]sleeperPlayer
	if err := getJSON(ctx, c.httpClient, "sleeper", c.baseURL+"/players/nfl", &raw); err != nil {
		return nil, err
	}
	players := make(map[string]models.LeaguePlayer, len(raw))
	for id, p := range raw {
		if p.PlayerID == "" {
			p.PlayerID = id
		}
		players[id] = models.LeaguePlayer{
			ID:        p.PlayerID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Team:      p.Team,
			Positions: p.FantasyPositions,
			Age:       p.Age,
			YearsExp:  p.YearsExp,
		}
	}
	return players, nil
}
