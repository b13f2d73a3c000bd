package logic

import (
	"errors"
	"fmt"

	"github.com/draftkit/valuation-api/internal/models"
)

var (
	// ErrMissingRosterPolicy is returned when a position in the pool has no
	// roster spot configuration. There is no safe default for it.
	ErrMissingRosterPolicy = errors.New("position missing from roster spot policy")
	// ErrInvalidLeagueSize is returned for a non-positive league size.
	ErrInvalidLeagueSize = errors.New("league size must be positive")
)

// ComputeReplacementValues derives VORP and VOBP for every player.
//
// The waiver level of a position is the best point total among players ranked
// beyond leagueSize*(starters+likely_benched); the bench level uses
// leagueSize*starters. An empty pool beyond the cutoff yields a zero level.
// Callers decide which rows make up the pool; ranks must already be assigned.
func ComputeReplacementValues(pool []models.ScoredPlayer, policy models.RosterSpotPolicy, leagueSize int) ([]models.ValuedPlayer, []models.ReplacementBaseline, error) {
	if leagueSize <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidLeagueSize, leagueSize)
	}

	counts := make(map[models.Position]int)
	var order []models.Position
	for _, p := range pool {
		if _, seen := counts[p.Position]; !seen {
			order = append(order, p.Position)
		}
		counts[p.Position]++
	}

	baselines := make(map[models.Position]*models.ReplacementBaseline, len(order))
	for _, pos := range order {
		spot, ok := policy[pos]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingRosterPolicy, pos)
		}
		baselines[pos] = &models.ReplacementBaseline{
			Position:     pos,
			WaiverCutoff: leagueSize * (spot.Starters + spot.LikelyBenched),
			BenchCutoff:  leagueSize * spot.Starters,
			PoolSize:     counts[pos],
		}
	}

	// Levels start at zero so a shallow pool yields a zero baseline. Points
	// beyond the cutoff may be negative; the max still starts from the first
	// qualifying player.
	waiverSeen := make(map[models.Position]bool)
	benchSeen := make(map[models.Position]bool)
	for _, p := range pool {
		b := baselines[p.Position]
		if p.PositionRank > b.WaiverCutoff {
			if !waiverSeen[p.Position] || p.FantasyPoints > b.WaiverLevel {
				b.WaiverLevel = p.FantasyPoints
				waiverSeen[p.Position] = true
			}
		}
		if p.PositionRank > b.BenchCutoff {
			if !benchSeen[p.Position] || p.FantasyPoints > b.BenchLevel {
				b.BenchLevel = p.FantasyPoints
				benchSeen[p.Position] = true
			}
		}
	}

	valued := make([]models.ValuedPlayer, len(pool))
	for i, p := range pool {
		b := baselines[p.Position]
		valued[i] = models.ValuedPlayer{
			ScoredPlayer: p,
			VORP:         p.FantasyPoints - b.WaiverLevel,
			VOBP:         p.FantasyPoints - b.BenchLevel,
			ADP:          models.Inf,
		}
	}

	out := make([]models.ReplacementBaseline, 0, len(order))
	for _, pos := range orderedPositions(order) {
		out = append(out, *baselines[pos])
	}
	return valued, out, nil
}

// orderedPositions sorts positions in display order, keeping unknown ones last.
func orderedPositions(present []models.Position) []models.Position {
	seen := make(map[models.Position]bool, len(present))
	for _, p := range present {
		seen[p] = true
	}
	out := make([]models.Position, 0, len(present))
	for _, p := range models.Positions {
		if seen[p] {
			out = append(out, p)
			delete(seen, p)
		}
	}
	for _, p := range present {
		if seen[p] {
			out = append(out, p)
		}
	}
	return out
}
