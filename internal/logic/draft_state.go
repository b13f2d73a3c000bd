package logic

import (
	"sort"

	"github.com/draftkit/valuation-api/internal/models"
)

// DefaultHeadCount is the size of each "best available" list.
const DefaultHeadCount = 5

// DefaultCombinedLimit caps the combined top-metrics view.
const DefaultCombinedLimit = 10

// DraftBoard tracks which players are gone and derives the best-available
// views from the valued pool. It owns a private copy of the pool.
type DraftBoard struct {
	players []models.ValuedPlayer
	drafted int
}

// NewDraftBoard copies players into a new board.
func NewDraftBoard(players []models.ValuedPlayer) *DraftBoard {
	b := &DraftBoard{players: make([]models.ValuedPlayer, len(players))}
	copy(b.players, players)
	for _, p := range b.players {
		if p.Drafted {
			b.drafted++
		}
	}
	return b
}

// ApplyDrafted replaces the drafted flags with membership in names. The set is
// a full override, not a diff.
func (b *DraftBoard) ApplyDrafted(names []string) {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	b.drafted = 0
	for i := range b.players {
		_, ok := set[b.players[i].Name]
		b.players[i].Drafted = ok
		if ok {
			b.drafted++
		}
	}
}

// Players returns a copy of the board's pool.
func (b *DraftBoard) Players() []models.ValuedPlayer {
	out := make([]models.ValuedPlayer, len(b.players))
	copy(out, b.players)
	return out
}

// DraftedCount returns how many players are flagged drafted.
func (b *DraftBoard) DraftedCount() int {
	return b.drafted
}

// TopByADP returns the k undrafted players with the lowest ADP. Players
// without a market rank sort last.
func (b *DraftBoard) TopByADP(k int) []models.BoardEntry {
	return b.top(k, func(p models.ValuedPlayer) float64 { return float64(p.ADP) }, true)
}

// TopByVORP returns the k undrafted players with the highest VORP.
func (b *DraftBoard) TopByVORP(k int) []models.BoardEntry {
	return b.top(k, func(p models.ValuedPlayer) float64 { return p.VORP }, false)
}

// TopByVOBP returns the k undrafted players with the highest VOBP.
func (b *DraftBoard) TopByVOBP(k int) []models.BoardEntry {
	return b.top(k, func(p models.ValuedPlayer) float64 { return p.VOBP }, false)
}

func (b *DraftBoard) top(k int, metric func(models.ValuedPlayer) float64, ascending bool) []models.BoardEntry {
	if k <= 0 {
		k = DefaultHeadCount
	}
	available := make([]models.ValuedPlayer, 0, len(b.players))
	for _, p := range b.players {
		if !p.Drafted {
			available = append(available, p)
		}
	}
	sort.SliceStable(available, func(i, j int) bool {
		if ascending {
			return metric(available[i]) < metric(available[j])
		}
		return metric(available[i]) > metric(available[j])
	})
	if len(available) > k {
		available = available[:k]
	}

	entries := make([]models.BoardEntry, len(available))
	for i, p := range available {
		entries[i] = models.BoardEntry{Name: p.Name, Position: p.Position, Value: models.Float(metric(p))}
	}
	return entries
}

// CombinedTopMetrics counts, for every player in any of the three top-k
// lists, how many lists contain them. Results are ordered by count, then by
// the sum of their 1-based list positions (absent lists count as k+1), then
// by name.
func (b *DraftBoard) CombinedTopMetrics(k, limit int) []models.CombinedMetric {
	if k <= 0 {
		k = DefaultHeadCount
	}
	if limit <= 0 {
		limit = DefaultCombinedLimit
	}

	lists := [3][]models.BoardEntry{b.TopByADP(k), b.TopByVORP(k), b.TopByVOBP(k)}

	byName := make(map[string]*models.CombinedMetric)
	var order []string
	for li, list := range lists {
		for pos, e := range list {
			m, ok := byName[e.Name]
			if !ok {
				m = &models.CombinedMetric{Name: e.Name, PositionSum: 3 * (k + 1)}
				byName[e.Name] = m
				order = append(order, e.Name)
			}
			switch li {
			case 0:
				m.InTopADP = true
			case 1:
				m.InTopVORP = true
			case 2:
				m.InTopVOBP = true
			}
			m.Count++
			m.PositionSum -= (k + 1) - (pos + 1)
		}
	}

	out := make([]models.CombinedMetric, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].PositionSum != out[j].PositionSum {
			return out[i].PositionSum < out[j].PositionSum
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// View builds the full live draft view for k.
func (b *DraftBoard) View(k int) models.DraftBoardView {
	if k <= 0 {
		k = DefaultHeadCount
	}
	return models.DraftBoardView{
		K:        k,
		Drafted:  b.drafted,
		TopADP:   b.TopByADP(k),
		TopVORP:  b.TopByVORP(k),
		TopVOBP:  b.TopByVOBP(k),
		Combined: b.CombinedTopMetrics(k, DefaultCombinedLimit),
	}
}
