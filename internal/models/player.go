package models

import (
	"strings"
	"unicode"
)

// Position is a fantasy roster position.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

// Positions lists every position in display order.
var Positions = []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDST}

var positionAliases = map[string]Position{
	"QB":   PositionQB,
	"RB":   PositionRB,
	"WR":   PositionWR,
	"TE":   PositionTE,
	"K":    PositionK,
	"PK":   PositionK,
	"DST":  PositionDST,
	"D/ST": PositionDST,
	"DEF":  PositionDST,
	"D":    PositionDST,
}

// ParsePosition maps a raw position cell to a Position. Rank suffixes such as
// "WR12" are dropped first. Unknown positions fall back to RB so the player
// still flows through replacement math; ok reports whether the value was known.
func ParsePosition(raw string) (pos Position, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimRightFunc(s, unicode.IsDigit)
	if p, found := positionAliases[s]; found {
		return p, true
	}
	return PositionRB, false
}

// ProjectionRecord is one player's projected stat line from a source table.
type ProjectionRecord struct {
	Name     string   `json:"name" validate:"required"`
	Team     string   `json:"team"`
	Position Position `json:"position"`
	Stats    StatLine `json:"stats"`
}

// ScoredPlayer is a projection with its fantasy point total and position rank.
type ScoredPlayer struct {
	ProjectionRecord
	FantasyPoints float64 `json:"fantasy_points"`
	PositionRank  int     `json:"position_rank"`
}

// ValuedPlayer carries replacement and market metrics on top of a ScoredPlayer.
type ValuedPlayer struct {
	ScoredPlayer
	VORP           float64 `json:"vorp"`
	VOBP           float64 `json:"vobp"`
	ADP            Float   `json:"adp"`
	Drafted        bool    `json:"drafted"`
	VORPRank       int     `json:"vorp_rank"`
	VOBPRank       int     `json:"vobp_rank"`
	VORPValueVsADP Float   `json:"vorp_value_vs_adp"`
	VOBPValueVsADP Float   `json:"vobp_value_vs_adp"`
}

// HasADP reports whether the player matched the ADP table.
func (p ValuedPlayer) HasADP() bool {
	return p.ADP.Finite()
}

// ReplacementBaseline holds both replacement levels for one position.
type ReplacementBaseline struct {
	Position     Position `json:"position"`
	WaiverCutoff int      `json:"waiver_cutoff"`
	WaiverLevel  float64  `json:"waiver_level"`
	BenchCutoff  int      `json:"bench_cutoff"`
	BenchLevel   float64  `json:"bench_level"`
	PoolSize     int      `json:"pool_size"`
}

// ADPEntry is one row of the market average-draft-position table.
type ADPEntry struct {
	Name string  `json:"name"`
	ADP  float64 `json:"adp"`
}

// Valuation is the output of one valuation pass.
type Valuation struct {
	Players      []ValuedPlayer        `json:"players"`
	Baselines    []ReplacementBaseline `json:"baselines"`
	UnmatchedADP []string              `json:"unmatched_adp"`
	LeagueSize   int                   `json:"league_size"`
}

// ProjectionTable is one source table, e.g. the QB or FLX projections.
type ProjectionTable struct {
	Name    string             `json:"name"`
	Records []ProjectionRecord `json:"records"`
}
