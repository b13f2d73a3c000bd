package dynasty

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/draftkit/valuation-api/internal/models"
)

// DefaultFuzzyCutoff is the minimum similarity ratio for a fuzzy match.
const DefaultFuzzyCutoff = 0.8

// teamAliases maps league-feed abbreviations to the market sheet's.
var teamAliases = map[string]string{
	"JAX": "JAC",
	"WSH": "WAS",
	"LAR": "LA",
}

var nameSuffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

// NormalizeName lowercases a name, drops punctuation and generational
// suffixes and collapses whitespace: "Amon-Ra St. Brown Jr." -> "amonra st brown".
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	fields := strings.Fields(b.String())
	for len(fields) > 1 && nameSuffixes[fields[len(fields)-1]] {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

type marketRow struct {
	entry      models.MarketEntry
	normalized string
	chars      []string
	team       string
}

// Matcher resolves player names and pick labels against a market table.
// It is safe for concurrent use once built.
type Matcher struct {
	rows    []marketRow
	byName  map[string]int
	byLabel map[string]int
	cutoff  float64
}

// NewMatcher indexes the market table. A cutoff <= 0 uses DefaultFuzzyCutoff.
func NewMatcher(entries []models.MarketEntry, cutoff float64) *Matcher {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultFuzzyCutoff
	}
	m := &Matcher{
		rows:    make([]marketRow, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		byLabel: make(map[string]int, len(entries)),
		cutoff:  cutoff,
	}
	for _, e := range entries {
		norm := NormalizeName(e.Name)
		if norm == "" {
			continue
		}
		idx := len(m.rows)
		m.rows = append(m.rows, marketRow{
			entry:      e,
			normalized: norm,
			chars:      strings.Split(norm, ""),
			team:       strings.ToUpper(strings.TrimSpace(e.Team)),
		})
		if _, dup := m.byName[norm]; !dup {
			m.byName[norm] = idx
		}
		label := strings.TrimSpace(e.Name)
		if _, dup := m.byLabel[label]; !dup {
			m.byLabel[label] = idx
		}
	}
	return m
}

// Len returns the number of indexed market rows.
func (m *Matcher) Len() int {
	return len(m.rows)
}

// Match resolves a roster player: exact normalized name, then the best fuzzy
// candidate above the cutoff, then the rule match.
func (m *Matcher) Match(first, last, team string) models.MatchResult {
	full := NormalizeName(strings.TrimSpace(first + " " + last))
	if full == "" {
		return unmatched()
	}
	if idx, ok := m.byName[full]; ok {
		return m.result(models.MatchExact, 1, idx, 1)
	}
	if res := m.matchFuzzy(full); res.Matched() {
		return res
	}
	return m.MatchRule(first, last, team)
}

// MatchRule applies only the rule policy: the first and last names both
// appear in the market name, the first name before the last, and the team
// abbreviation (or its alias) appears when a team is known. The first
// qualifying row in table order wins; Candidates reports how many qualified.
func (m *Matcher) MatchRule(first, last, team string) models.MatchResult {
	f := NormalizeName(first)
	l := NormalizeName(last)
	if f == "" || l == "" {
		return unmatched()
	}
	t := strings.ToUpper(strings.TrimSpace(team))

	found := -1
	candidates := 0
	for i, row := range m.rows {
		fi := strings.Index(row.normalized, f)
		li := strings.LastIndex(row.normalized, l)
		if fi < 0 || li < 0 || fi >= li {
			continue
		}
		if t != "" && !teamMatches(row, t) {
			continue
		}
		if found < 0 {
			found = i
		}
		candidates++
	}
	if found < 0 {
		return unmatched()
	}
	return m.result(models.MatchRule, 1, found, candidates)
}

// MatchLabel looks a synthesized pick label up by exact string.
func (m *Matcher) MatchLabel(label string) models.MatchResult {
	if idx, ok := m.byLabel[strings.TrimSpace(label)]; ok {
		return m.result(models.MatchExact, 1, idx, 1)
	}
	return unmatched()
}

func (m *Matcher) matchFuzzy(name string) models.MatchResult {
	query := strings.Split(name, "")
	sm := difflib.NewMatcher(nil, query)

	best := -1
	bestScore := 0.0
	for i, row := range m.rows {
		sm.SetSeq1(row.chars)
		if sm.RealQuickRatio() < m.cutoff || sm.QuickRatio() < m.cutoff {
			continue
		}
		if score := sm.Ratio(); score >= m.cutoff && score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return unmatched()
	}
	return m.result(models.MatchFuzzy, bestScore, best, 1)
}

func (m *Matcher) result(kind models.MatchKind, score float64, idx, candidates int) models.MatchResult {
	entry := m.rows[idx].entry
	return models.MatchResult{Kind: kind, Score: score, Entry: &entry, Candidates: candidates}
}

// teamMatches checks abbreviation containment. Rows without a team column
// carry no team information and are not constrained.
func teamMatches(row marketRow, team string) bool {
	if row.team == "" {
		return true
	}
	if strings.Contains(row.team, team) {
		return true
	}
	if alias, ok := teamAliases[team]; ok && strings.Contains(row.team, alias) {
		return true
	}
	return false
}

func unmatched() models.MatchResult {
	return models.MatchResult{Kind: models.MatchUnmatched}
}
