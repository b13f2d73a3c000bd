package logic

import (
	"github.com/draftkit/valuation-api/internal/models"
)

// FantasyPoints sums value*weight over the stat codes present in both the
// stat line and the weight table. Codes without a weight are ignored.
func FantasyPoints(stats models.StatLine, weights models.ScoringWeights) float64 {
	var total float64
	for code, value := range stats {
		weight, ok := weights[code]
		if !ok {
			continue
		}
		total += value * weight
	}
	return total
}

// ScoreRecords produces one ScoredPlayer per record, in input order.
// Positions are normalised so every player carries a known position.
func ScoreRecords(records []models.ProjectionRecord, weights models.ScoringWeights) []models.ScoredPlayer {
	scored := make([]models.ScoredPlayer, 0, len(records))
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		rec.Position, _ = models.ParsePosition(string(rec.Position))
		scored = append(scored, models.ScoredPlayer{
			ProjectionRecord: rec,
			FantasyPoints:    FantasyPoints(rec.Stats, weights),
		})
	}
	return scored
}

// DropNonPositive removes players with zero or negative fantasy points.
func DropNonPositive(players []models.ScoredPlayer) []models.ScoredPlayer {
	out := make([]models.ScoredPlayer, 0, len(players))
	for _, p := range players {
		if p.FantasyPoints > 0 {
			out = append(out, p)
		}
	}
	return out
}
