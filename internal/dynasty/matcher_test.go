package dynasty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftkit/valuation-api/internal/models"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Amon-Ra St. Brown", "amonra st brown"},
		{"Kenneth Walker III", "kenneth walker"},
		{"  Odell   Beckham Jr. ", "odell beckham"},
		{"D.J. Moore", "dj moore"},
		{"V", "v"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), tt.in)
	}
}

func TestMatcher_Exact(t *testing.T) {
	m := NewMatcher([]models.MarketEntry{
		{Name: "Kenneth Walker", Value: 5000, SFValue: 5100},
	}, 0)

	res := m.Match("Kenneth", "Walker III", "SEA")
	require.True(t, res.Matched())
	assert.Equal(t, models.MatchExact, res.Kind)
	assert.Equal(t, 5100.0, res.Entry.ValueFor(models.MarketFormatSuperflex))
}

func TestMatcher_FuzzyBeforeRule(t *testing.T) {
	m := NewMatcher([]models.MarketEntry{
		{Name: "Marquise Browne", Value: 3000},
		{Name: "Travis Kelce", Value: 4000},
	}, 0.8)

	res := m.Match("Marquise", "Brown", "KC")
	require.True(t, res.Matched())
	assert.Equal(t, models.MatchFuzzy, res.Kind)
	assert.Equal(t, "Marquise Browne", res.Entry.Name)
	assert.InDelta(t, 28.0/29.0, res.Score, 1e-9)

	// The rule policy accepts the same row; Match still reports fuzzy.
	rule := m.MatchRule("Marquise", "Brown", "")
	assert.Equal(t, models.MatchRule, rule.Kind)
}

func TestMatcher_RuleFallback(t *testing.T) {
	m := NewMatcher([]models.MarketEntry{
		{Name: "Josh Allen QB BUF", Team: "BUF", Value: 9000},
		{Name: "Josh Allen LB JAC", Team: "JAC", Value: 10},
	}, 0.8)

	tests := []struct {
		name      string
		team      string
		wantValue float64
		wantCands int
	}{
		{"team selects row", "BUF", 9000, 1},
		{"alias selects row", "JAX", 10, 1},
		{"no team takes first", "", 9000, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Match("Josh", "Allen", tt.team)
			require.True(t, res.Matched())
			assert.Equal(t, models.MatchRule, res.Kind)
			assert.Equal(t, tt.wantValue, res.Entry.Value)
			assert.Equal(t, tt.wantCands, res.Candidates)
		})
	}

	res := m.Match("Josh", "Allen", "MIA")
	assert.False(t, res.Matched())
	assert.Equal(t, models.MatchUnmatched, res.Kind)
}

func TestMatcher_RuleRequiresOrder(t *testing.T) {
	m := NewMatcher([]models.MarketEntry{{Name: "Allen Josh Something", Value: 1}}, 0.99)

	res := m.MatchRule("Josh", "Allen", "")
	assert.False(t, res.Matched())
}

func TestMatcher_MatchLabel(t *testing.T) {
	m := NewMatcher([]models.MarketEntry{
		{Name: "2026 Early 1st", Value: 6000},
		{Name: "2026 Mid 1st", Value: 5000},
	}, 0)

	res := m.MatchLabel("2026 Mid 1st")
	require.True(t, res.Matched())
	assert.Equal(t, 5000.0, res.Entry.Value)

	assert.False(t, m.MatchLabel("2026 Late 1st").Matched())
	assert.Equal(t, 2, m.Len())
}

func TestMatcher_EmptyName(t *testing.T) {
	m := NewMatcher([]models.MarketEntry{{Name: "Some Player", Value: 1}}, 0)
	assert.False(t, m.Match("", "", "").Matched())
	assert.False(t, m.MatchRule("", "Player", "").Matched())
}
