package logic

import (
	"math"

	"github.com/draftkit/valuation-api/internal/models"
)

// MergeADP left-joins the ADP table onto the valued pool by exact name.
// Players without a market rank get ADP = +Inf and are listed in unmatched.
// VORPRank and VOBPRank are recomputed over the merged pool and the
// value-vs-market deltas are rank minus ADP, so a negative delta means the
// market drafts the player later than its value rank suggests.
// VORP and VOBP themselves are never touched.
func MergeADP(pool []models.ValuedPlayer, adp []models.ADPEntry) (merged []models.ValuedPlayer, unmatched []string) {
	byName := make(map[string]float64, len(adp))
	for _, e := range adp {
		if e.Name == "" {
			continue
		}
		if _, dup := byName[e.Name]; dup {
			continue
		}
		if math.IsNaN(e.ADP) || math.IsInf(e.ADP, 0) {
			continue
		}
		byName[e.Name] = e.ADP
	}

	merged = make([]models.ValuedPlayer, len(pool))
	copy(merged, pool)

	vorp := make([]float64, len(merged))
	vobp := make([]float64, len(merged))
	for i := range merged {
		if v, ok := byName[merged[i].Name]; ok {
			merged[i].ADP = models.Float(v)
		} else {
			merged[i].ADP = models.Inf
			unmatched = append(unmatched, merged[i].Name)
		}
		vorp[i] = merged[i].VORP
		vobp[i] = merged[i].VOBP
	}

	vorpRanks := CompetitionRanks(vorp)
	vobpRanks := CompetitionRanks(vobp)
	for i := range merged {
		merged[i].VORPRank = vorpRanks[i]
		merged[i].VOBPRank = vobpRanks[i]
		merged[i].VORPValueVsADP = models.Float(float64(vorpRanks[i]) - float64(merged[i].ADP))
		merged[i].VOBPValueVsADP = models.Float(float64(vobpRanks[i]) - float64(merged[i].ADP))
	}
	return merged, unmatched
}
