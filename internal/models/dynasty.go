package models

import "fmt"

// MarketFormat selects which market value column is read.
type MarketFormat string

const (
	MarketFormatOneQB     MarketFormat = "1QB"
	MarketFormatSuperflex MarketFormat = "SF"
)

// MarketEntry is one row of the crowd-sourced trade value table. Name holds
// either a player name or a synthesized draft pick label.
type MarketEntry struct {
	Name    string  `json:"name"`
	Team    string  `json:"team,omitempty"`
	Value   float64 `json:"value"`
	SFValue float64 `json:"sf_value"`
}

// ValueFor returns the entry's value in the requested format. Superflex
// falls back to the 1QB column when the sheet has no SF value.
func (e MarketEntry) ValueFor(format MarketFormat) float64 {
	if format == MarketFormatSuperflex && e.SFValue != 0 {
		return e.SFValue
	}
	return e.Value
}

// MatchKind classifies how an asset was resolved against the market table.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchFuzzy     MatchKind = "fuzzy"
	MatchRule      MatchKind = "rule"
	MatchUnmatched MatchKind = "unmatched"
)

// MatchResult is the outcome of one identity lookup.
type MatchResult struct {
	Kind  MatchKind    `json:"kind"`
	Score float64      `json:"score,omitempty"`
	Entry *MarketEntry `json:"entry,omitempty"`
	// Candidates is how many market rows satisfied the policy that matched.
	// More than one means the pick was ambiguous.
	Candidates int `json:"candidates,omitempty"`
}

// Matched reports whether the lookup found a market row.
func (m MatchResult) Matched() bool {
	return m.Kind != MatchUnmatched && m.Entry != nil
}

// PickPosition tags where a slot falls within its round.
type PickPosition string

const (
	PickEarly PickPosition = "Early"
	PickMid   PickPosition = "Mid"
	PickLate  PickPosition = "Late"
)

// OwnershipEvent records one change of hands for a draft pick.
type OwnershipEvent struct {
	Sequence int `json:"sequence"`
	From     int `json:"from"`
	To       int `json:"to"`
}

// DraftPick is a future rookie draft pick identified by season, round and
// original owner roster.
type DraftPick struct {
	Season        int              `json:"season"`
	Round         int              `json:"round"`
	OriginalOwner int              `json:"original_owner"`
	PickInRound   int              `json:"pick_in_round"`
	OverallPick   int              `json:"overall_pick"`
	Position      PickPosition     `json:"pick_position"`
	Owner         int              `json:"owner"`
	IsTraded      bool             `json:"is_traded"`
	History       []OwnershipEvent `json:"history,omitempty"`
	Label         string           `json:"label"`
	Value         float64          `json:"value"`
	Matched       bool             `json:"matched"`
}

// PickLabel builds the market table key, e.g. "2026 Early 1st".
func PickLabel(season int, position PickPosition, round int) string {
	return fmt.Sprintf("%d %s %d%s", season, position, round, OrdinalSuffix(round))
}

// OrdinalSuffix returns "st", "nd", "rd" or "th" for n.
func OrdinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// TradeRecord moves one pick from one roster to another. Season and
// OriginalOwner narrow the lookup when non-zero.
type TradeRecord struct {
	Season        int `json:"season,omitempty"`
	Round         int `json:"round" validate:"gte=1"`
	OriginalOwner int `json:"original_owner,omitempty"`
	From          int `json:"from"`
	To            int `json:"to"`
}

// Standing is one team's record used to derive draft order.
type Standing struct {
	RosterID  int     `json:"roster_id"`
	TeamName  string  `json:"team_name"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	PointsFor float64 `json:"points_for"`
}

// LeagueUser is a league member.
type LeagueUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	TeamName    string `json:"team_name"`
}

// LeagueRoster is one team's set of rostered player ids.
type LeagueRoster struct {
	RosterID  int      `json:"roster_id"`
	OwnerID   string   `json:"owner_id"`
	Players   []string `json:"players"`
	Starters  []string `json:"starters"`
	Reserve   []string `json:"reserve"`
	Taxi      []string `json:"taxi"`
	Wins      int      `json:"wins"`
	Losses    int      `json:"losses"`
	PointsFor float64  `json:"points_for"`
}

// LeaguePlayer is an entry from the league provider's player directory.
type LeaguePlayer struct {
	ID        string   `json:"player_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Team      string   `json:"team"`
	Positions []string `json:"fantasy_positions"`
	Age       float64  `json:"age"`
	YearsExp  int      `json:"years_exp"`
}

// FullName joins first and last names.
func (p LeaguePlayer) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// AssetValue is a resolved player asset.
type AssetValue struct {
	PlayerID  string      `json:"player_id"`
	Name      string      `json:"name"`
	Team      string      `json:"team,omitempty"`
	Positions []string    `json:"positions,omitempty"`
	Slot      string      `json:"slot,omitempty"`
	Value     float64     `json:"value"`
	Match     MatchResult `json:"match"`
}

// TeamValuation summarizes one roster's market value.
type TeamValuation struct {
	RosterID    int          `json:"roster_id"`
	Owner       string       `json:"owner"`
	TeamName    string       `json:"team_name"`
	Players     []AssetValue `json:"players"`
	Picks       []DraftPick  `json:"picks"`
	PlayerValue float64      `json:"player_value"`
	PickValue   float64      `json:"pick_value"`
	TotalValue  float64      `json:"total_value"`
	PlayerCount int          `json:"player_count"`
	Unmatched   []string     `json:"unmatched"`
}

// PickWarning flags a pick whose ownership history looks inconsistent.
type PickWarning struct {
	Label   string `json:"label"`
	Season  int    `json:"season"`
	Round   int    `json:"round"`
	Events  int    `json:"events"`
	Trades  int    `json:"trades"`
	Message string `json:"message"`
}

// DynastyReport is the output of one resolver pass. Errors carries per-view
// failures so unaffected views still render.
type DynastyReport struct {
	LeagueID  string            `json:"league_id"`
	Format    MarketFormat      `json:"format"`
	Teams     []TeamValuation   `json:"teams"`
	Picks     []DraftPick       `json:"picks"`
	Undrafted []AssetValue      `json:"undrafted"`
	Warnings  []PickWarning     `json:"warnings,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// LeagueInfo is the league-level metadata used to anchor the pick window.
type LeagueInfo struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       int    `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"total_rosters"`
}

// FirstDraftSeason is the season of the next rookie draft: the league's own
// season before its draft has run, the following season afterwards.
func (l LeagueInfo) FirstDraftSeason() int {
	switch l.Status {
	case "pre_draft", "drafting":
		return l.Season
	}
	return l.Season + 1
}
