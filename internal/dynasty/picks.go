package dynasty

import (
	"sort"

	"github.com/draftkit/valuation-api/internal/models"
)

// DefaultRounds is the number of rookie draft rounds synthesized per season.
const DefaultRounds = 5

// DefaultSeasons is the width of the future pick window.
const DefaultSeasons = 3

// DraftOrder returns roster ids in pick order: the worst record picks first.
// Ties fall to more losses, then fewer points for, then roster id.
func DraftOrder(standings []models.Standing) []int {
	sorted := make([]models.Standing, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Wins != b.Wins {
			return a.Wins < b.Wins
		}
		if a.Losses != b.Losses {
			return a.Losses > b.Losses
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor < b.PointsFor
		}
		return a.RosterID < b.RosterID
	})

	order := make([]int, len(sorted))
	for i, s := range sorted {
		order[i] = s.RosterID
	}
	return order
}

// PickPositionFor tags a slot as Early (first 25% of the round), Late (last
// 25%) or Mid.
func PickPositionFor(pickInRound, teams int) models.PickPosition {
	if teams <= 0 {
		return models.PickMid
	}
	frac := float64(pickInRound) / float64(teams)
	switch {
	case frac <= 0.25:
		return models.PickEarly
	case frac > 0.75:
		return models.PickLate
	default:
		return models.PickMid
	}
}

// BuildDraftPicks lays out seasons × rounds picks in the reversed-standings
// order. Every round uses the same order.
func BuildDraftPicks(standings []models.Standing, firstSeason, seasons, rounds int) []models.DraftPick {
	if seasons <= 0 {
		seasons = DefaultSeasons
	}
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	order := DraftOrder(standings)
	teams := len(order)

	picks := make([]models.DraftPick, 0, seasons*rounds*teams)
	for season := firstSeason; season < firstSeason+seasons; season++ {
		for round := 1; round <= rounds; round++ {
			for i, rosterID := range order {
				pos := PickPositionFor(i+1, teams)
				picks = append(picks, models.DraftPick{
					Season:        season,
					Round:         round,
					OriginalOwner: rosterID,
					PickInRound:   i + 1,
					OverallPick:   (round-1)*teams + i + 1,
					Position:      pos,
					Owner:         rosterID,
					Label:         models.PickLabel(season, pos, round),
				})
			}
		}
	}
	return picks
}

// ApplyTrades replays trades in the supplied order. Each trade moves the
// first pick (season, round, pick order) whose round matches, whose current
// owner is From, and whose season and original owner match when the trade
// names them. Trades that locate no pick are returned unapplied.
func ApplyTrades(picks []models.DraftPick, trades []models.TradeRecord) (unapplied []models.TradeRecord) {
	for seq, tr := range trades {
		idx := findTradedPick(picks, tr)
		if idx < 0 {
			unapplied = append(unapplied, tr)
			continue
		}
		p := &picks[idx]
		p.History = append(p.History, models.OwnershipEvent{Sequence: seq + 1, From: p.Owner, To: tr.To})
		p.Owner = tr.To
		p.IsTraded = p.Owner != p.OriginalOwner
	}
	return unapplied
}

func findTradedPick(picks []models.DraftPick, tr models.TradeRecord) int {
	for i, p := range picks {
		if p.Round != tr.Round || p.Owner != tr.From {
			continue
		}
		if tr.Season != 0 && p.Season != tr.Season {
			continue
		}
		if tr.OriginalOwner != 0 && p.OriginalOwner != tr.OriginalOwner {
			continue
		}
		return i
	}
	return -1
}

// ValidatePicks flags picks with more ownership events than trades that could
// reference them.
func ValidatePicks(picks []models.DraftPick, trades []models.TradeRecord) []models.PickWarning {
	var warnings []models.PickWarning
	for _, p := range picks {
		if len(p.History) == 0 {
			continue
		}
		referencing := 0
		for _, tr := range trades {
			if tr.Round != p.Round {
				continue
			}
			if tr.Season != 0 && tr.Season != p.Season {
				continue
			}
			if tr.OriginalOwner != 0 && tr.OriginalOwner != p.OriginalOwner {
				continue
			}
			referencing++
		}
		if len(p.History) > referencing {
			warnings = append(warnings, models.PickWarning{
				Label:   p.Label,
				Season:  p.Season,
				Round:   p.Round,
				Events:  len(p.History),
				Trades:  referencing,
				Message: "more ownership changes than trades referencing this pick",
			})
		}
	}
	return warnings
}

// ValuePicks looks every pick's label up in the market table. Misses are
// worth zero.
func ValuePicks(picks []models.DraftPick, matcher *Matcher, format models.MarketFormat) {
	for i := range picks {
		res := matcher.MatchLabel(picks[i].Label)
		picks[i].Matched = res.Matched()
		picks[i].Value = 0
		if res.Matched() {
			picks[i].Value = res.Entry.ValueFor(format)
		}
	}
}
