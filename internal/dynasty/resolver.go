package dynasty

import (
	"fmt"
	"sort"

	"github.com/draftkit/valuation-api/internal/models"
)

// Roster slots reported on player assets.
const (
	SlotStarter = "starter"
	SlotBench   = "bench"
	SlotReserve = "reserve"
	SlotTaxi    = "taxi"
)

// LeagueData is everything the resolver reads from a league provider.
type LeagueData struct {
	LeagueID    string
	Users       []models.LeagueUser
	Rosters     []models.LeagueRoster
	TradedPicks []models.TradeRecord
	Players     map[string]models.LeaguePlayer
	FirstSeason int
}

// Resolver values league assets against one market table.
type Resolver struct {
	matcher *Matcher
	format  models.MarketFormat
	seasons int
	rounds  int
}

// NewResolver builds a resolver. Zero seasons or rounds use the defaults.
func NewResolver(matcher *Matcher, format models.MarketFormat, seasons, rounds int) *Resolver {
	if format == "" {
		format = models.MarketFormatSuperflex
	}
	return &Resolver{matcher: matcher, format: format, seasons: seasons, rounds: rounds}
}

// Standings derives draft-order standings from rosters, naming teams from users.
func Standings(rosters []models.LeagueRoster, users []models.LeagueUser) []models.Standing {
	names := teamNames(users)
	out := make([]models.Standing, 0, len(rosters))
	for _, r := range rosters {
		out = append(out, models.Standing{
			RosterID:  r.RosterID,
			TeamName:  names[r.OwnerID].TeamName,
			Wins:      r.Wins,
			Losses:    r.Losses,
			PointsFor: r.PointsFor,
		})
	}
	return out
}

// ResolvePicks builds the pick table, replays traded picks and values every
// pick by label.
func (r *Resolver) ResolvePicks(data LeagueData) ([]models.DraftPick, []models.PickWarning) {
	picks := BuildDraftPicks(Standings(data.Rosters, data.Users), data.FirstSeason, r.seasons, r.rounds)
	ApplyTrades(picks, data.TradedPicks)
	ValuePicks(picks, r.matcher, r.format)
	return picks, ValidatePicks(picks, data.TradedPicks)
}

// ValuePlayer resolves one league player with the full match policy.
func (r *Resolver) ValuePlayer(id string, p models.LeaguePlayer) models.AssetValue {
	return r.asset(id, p, r.matcher.Match(p.FirstName, p.LastName, p.Team))
}

func (r *Resolver) asset(id string, p models.LeaguePlayer, res models.MatchResult) models.AssetValue {
	a := models.AssetValue{
		PlayerID:  id,
		Name:      p.FullName(),
		Team:      p.Team,
		Positions: p.Positions,
		Match:     res,
	}
	if res.Matched() {
		a.Value = res.Entry.ValueFor(r.format)
	}
	return a
}

// TeamValuations values every roster. picks may be nil when the pick table
// is unavailable; pick totals are then zero. Teams are sorted by total value
// descending.
func (r *Resolver) TeamValuations(data LeagueData, picks []models.DraftPick) []models.TeamValuation {
	names := teamNames(data.Users)
	teams := make([]models.TeamValuation, 0, len(data.Rosters))

	for _, roster := range data.Rosters {
		user := names[roster.OwnerID]
		team := models.TeamValuation{
			RosterID:  roster.RosterID,
			Owner:     user.DisplayName,
			TeamName:  user.TeamName,
			Players:   []models.AssetValue{},
			Picks:     []models.DraftPick{},
			Unmatched: []string{},
		}
		if team.TeamName == "" {
			team.TeamName = fmt.Sprintf("Team %d", roster.RosterID)
		}

		slots := rosterSlots(roster)
		for _, id := range rosterIDs(roster) {
			p, ok := data.Players[id]
			if !ok {
				p = models.LeaguePlayer{ID: id, LastName: id}
			}
			asset := r.ValuePlayer(id, p)
			asset.Slot = slots[id]
			if !asset.Match.Matched() {
				team.Unmatched = append(team.Unmatched, asset.Name)
			}
			team.PlayerValue += asset.Value
			team.Players = append(team.Players, asset)
		}
		sort.SliceStable(team.Players, func(i, j int) bool {
			return team.Players[i].Value > team.Players[j].Value
		})
		team.PlayerCount = len(team.Players)

		for _, p := range picks {
			if p.Owner == roster.RosterID {
				team.Picks = append(team.Picks, p)
				team.PickValue += p.Value
			}
		}
		team.TotalValue = team.PlayerValue + team.PickValue
		teams = append(teams, team)
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].TotalValue > teams[j].TotalValue
	})
	return teams
}

// UndraftedPlayers lists directory players on no roster that the rule policy
// matches to the market table, sorted by value descending then name.
func (r *Resolver) UndraftedPlayers(data LeagueData) []models.AssetValue {
	rostered := make(map[string]bool)
	for _, roster := range data.Rosters {
		for _, id := range rosterIDs(roster) {
			rostered[id] = true
		}
	}

	out := []models.AssetValue{}
	for id, p := range data.Players {
		if rostered[id] {
			continue
		}
		res := r.matcher.MatchRule(p.FirstName, p.LastName, p.Team)
		if !res.Matched() {
			continue
		}
		out = append(out, r.asset(id, p, res))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// Resolve runs every view over complete data.
func (r *Resolver) Resolve(data LeagueData) *models.DynastyReport {
	picks, warnings := r.ResolvePicks(data)
	return &models.DynastyReport{
		LeagueID:  data.LeagueID,
		Format:    r.format,
		Teams:     r.TeamValuations(data, picks),
		Picks:     picks,
		Undrafted: r.UndraftedPlayers(data),
		Warnings:  warnings,
	}
}

func teamNames(users []models.LeagueUser) map[string]models.LeagueUser {
	out := make(map[string]models.LeagueUser, len(users))
	for _, u := range users {
		out[u.UserID] = u
	}
	return out
}

// rosterIDs returns the union of players, reserve and taxi in first-seen order.
func rosterIDs(r models.LeagueRoster) []string {
	seen := make(map[string]bool, len(r.Players)+len(r.Reserve)+len(r.Taxi))
	var ids []string
	for _, list := range [][]string{r.Players, r.Reserve, r.Taxi} {
		for _, id := range list {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func rosterSlots(r models.LeagueRoster) map[string]string {
	slots := make(map[string]string)
	for _, id := range r.Players {
		slots[id] = SlotBench
	}
	for _, id := range r.Starters {
		slots[id] = SlotStarter
	}
	for _, id := range r.Reserve {
		slots[id] = SlotReserve
	}
	for _, id := range r.Taxi {
		slots[id] = SlotTaxi
	}
	return slots
}
