package logic

import (
	"sort"

	"github.com/draftkit/valuation-api/internal/models"
)

// CompetitionRanks ranks values in descending order using standard
// competition ranking: equal values share a rank and the next distinct value
// is ranked by the count of strictly better values plus one.
func CompetitionRanks(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] > values[idx[b]]
	})

	ranks := make([]int, len(values))
	for pos, i := range idx {
		if pos > 0 && values[i] == values[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
			continue
		}
		ranks[i] = pos + 1
	}
	return ranks
}

// RankByPosition assigns PositionRank within each position group by fantasy
// points. Row order is preserved.
func RankByPosition(players []models.ScoredPlayer) []models.ScoredPlayer {
	out := make([]models.ScoredPlayer, len(players))
	copy(out, players)

	groups := make(map[models.Position][]int)
	for i, p := range out {
		groups[p.Position] = append(groups[p.Position], i)
	}

	for _, members := range groups {
		points := make([]float64, len(members))
		for j, i := range members {
			points[j] = out[i].FantasyPoints
		}
		for j, rank := range CompetitionRanks(points) {
			out[members[j]].PositionRank = rank
		}
	}
	return out
}

// PositionView returns the players at pos ordered by position rank.
func PositionView(players []models.ValuedPlayer, pos models.Position) []models.ValuedPlayer {
	view := make([]models.ValuedPlayer, 0)
	for _, p := range players {
		if p.Position == pos {
			view = append(view, p)
		}
	}
	sort.SliceStable(view, func(i, j int) bool {
		return view[i].PositionRank < view[j].PositionRank
	})
	return view
}
