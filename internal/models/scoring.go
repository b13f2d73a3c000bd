package models

// ScoringWeights maps a stat code to the fantasy points awarded per unit.
type ScoringWeights map[string]float64

// DefaultScoringWeights returns a fresh copy of the league scoring table
// (half-PPR, 4-point passing touchdowns).
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		"PY":   0.04,
		"PTD":  4,
		"INT":  -2,
		"2PC":  2,
		"RY":   0.01,
		"RTD":  6,
		"2PR":  2,
		"REY":  0.1,
		"REC":  0.5,
		"2PRE": 2,
		"PAT":  1,
		"FGM":  -1,
		"FG0":  3,
		"FG40": 4,
		"FG50": 5,
		"FG60": 5,
		// Defense
		"DSACK":   1,
		"DINT":    2,
		"DFR":     2,
		"DTD":     6,
		"DSAFETY": 2,
	}
}

// RosterSpot describes how many players of a position a team carries.
type RosterSpot struct {
	Starters      int `json:"starters" validate:"gte=0"`
	LikelyBenched int `json:"likely_benched" validate:"gte=0"`
	// Max is the hard bench cap. Informational only.
	Max int `json:"max" validate:"gte=0"`
}

// RosterSpotPolicy is the roster construction assumption per position.
type RosterSpotPolicy map[Position]RosterSpot

// DefaultRosterSpotPolicy returns the standard ten-team roster policy.
func DefaultRosterSpotPolicy() RosterSpotPolicy {
	return RosterSpotPolicy{
		PositionQB:  {Starters: 1, LikelyBenched: 2, Max: 4},
		PositionRB:  {Starters: 2, LikelyBenched: 2, Max: 8},
		PositionWR:  {Starters: 2, LikelyBenched: 2, Max: 8},
		PositionTE:  {Starters: 1, LikelyBenched: 1, Max: 3},
		PositionK:   {Starters: 1, LikelyBenched: 0, Max: 3},
		PositionDST: {Starters: 1, LikelyBenched: 0, Max: 3},
	}
}
