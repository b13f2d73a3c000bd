package logic

import (
	"sort"
	"strings"

	"github.com/draftkit/valuation-api/internal/models"
)

const defenseSuffix = " D/ST"

// FreeAgentBoard joins a league's free-agent names to the valued pool.
// League feeds list defenses by nickname ("49ers D/ST") while projection
// tables use the full team name, so names that miss the exact join are
// matched by substring against DST rows. Names matching nothing are dropped.
// The result is ordered by fantasy points, best first.
func FreeAgentBoard(names []string, pool []models.ValuedPlayer) []models.FreeAgent {
	byName := make(map[string]int, len(pool))
	var defenses []int
	for i, p := range pool {
		if _, dup := byName[p.Name]; !dup {
			byName[p.Name] = i
		}
		if p.Position == models.PositionDST {
			defenses = append(defenses, i)
		}
	}

	out := make([]models.FreeAgent, 0, len(names))
	for _, listed := range names {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(listed), defenseSuffix))
		if name == "" {
			continue
		}
		if i, ok := byName[name]; ok {
			out = append(out, models.FreeAgent{ListedName: listed, ValuedPlayer: pool[i]})
			continue
		}
		for _, i := range defenses {
			full := pool[i].Name
			if full != name && strings.Contains(full, name) {
				out = append(out, models.FreeAgent{ListedName: listed, ValuedPlayer: pool[i]})
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FantasyPoints > out[j].FantasyPoints
	})
	return out
}

// Weekly free-agent filters: a position needs at least minWeeklyFreeAgents
// candidates, each projected for at least minWeeklyPoints.
const (
	minWeeklyFreeAgents = 2
	minWeeklyPoints     = 0.1
)

// WeeklyImprovements compares a roster's weekly projections to the best
// free agent at each position. Free agents under minWeeklyPoints are
// ignored, as are positions with fewer than minWeeklyFreeAgents of them.
// Positions are ordered by their best free agent, highest first; within a
// position, rostered players the best free agent beats are listed by
// improvement, largest first.
func WeeklyImprovements(freeAgents, roster []models.WeeklyPlayer) []models.PositionImprovement {
	count := make(map[models.Position]int)
	for _, fa := range freeAgents {
		count[fa.Position]++
	}

	byPos := make(map[models.Position][]models.WeeklyPlayer)
	var order []models.Position
	for _, fa := range freeAgents {
		if count[fa.Position] < minWeeklyFreeAgents || fa.ProjectedPoints < minWeeklyPoints {
			continue
		}
		if _, seen := byPos[fa.Position]; !seen {
			order = append(order, fa.Position)
		}
		byPos[fa.Position] = append(byPos[fa.Position], fa)
	}

	out := make([]models.PositionImprovement, 0, len(order))
	for _, pos := range order {
		agents := byPos[pos]
		sort.SliceStable(agents, func(i, j int) bool {
			return agents[i].ProjectedPoints > agents[j].ProjectedPoints
		})
		best := agents[0]
		entry := models.PositionImprovement{
			Position:     pos,
			BestName:     best.Name,
			BestPoints:   models.Float(best.ProjectedPoints),
			FreeAgents:   len(agents),
			Improvements: []models.Improvement{},
		}
		for _, p := range roster {
			if p.Position != pos {
				continue
			}
			gain := best.ProjectedPoints - p.ProjectedPoints
			if gain <= 0 {
				continue
			}
			options := 0
			for _, fa := range agents {
				if fa.ProjectedPoints > p.ProjectedPoints {
					options++
				}
			}
			entry.Improvements = append(entry.Improvements, models.Improvement{
				Name:        p.Name,
				Improvement: models.Float(gain),
				Options:     options,
			})
		}
		sort.SliceStable(entry.Improvements, func(i, j int) bool {
			return entry.Improvements[i].Improvement > entry.Improvements[j].Improvement
		})
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BestPoints > out[j].BestPoints
	})
	return out
}
