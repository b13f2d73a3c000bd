package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newSleeperServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/league/L1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"league_id":"L1","name":"Dynasty","season":"2026","status":"in_season","total_rosters":2}`))
	})
	mux.HandleFunc("/league/L1/users", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"user_id":"u1","display_name":"alpha","metadata":{"team_name":"Alpha Dogs"}},{"user_id":"u2","display_name":"bravo","metadata":{}}]`))
	})
	mux.HandleFunc("/league/L1/rosters", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"roster_id":1,"owner_id":"u1","players":["p1","p2"],"starters":["p1"],"reserve":null,"taxi":["p3"],"settings":{"wins":9,"losses":5,"fpts":1502,"fpts_decimal":50}}]`))
	})
	mux.HandleFunc("/league/L1/traded_picks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"season":"2027","round":1,"roster_id":2,"previous_owner_id":2,"owner_id":1},{"season":"2027","round":2,"roster_id":1,"previous_owner_id":2,"owner_id":1}]`))
	})
	mux.HandleFunc("/players/nfl", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"p1":{"player_id":"p1","first_name":"Josh","last_name":"Allen","team":"BUF","fantasy_positions":["QB"],"age":30,"years_exp":8},"DAL":{"first_name":"Dallas","last_name":"Cowboys","team":"DAL","fantasy_positions":["DEF"]}}`))
	})
	mux.HandleFunc("/league/BAD/users", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSleeperClient(t *testing.T) {
	srv := newSleeperServer(t)
	c := NewSleeperClient(SleeperConfig{BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	ctx := context.Background()

	info, err := c.League(ctx, "L1")
	if err != nil {
		t.Fatalf("League: %v", err)
	}
	if info.Season != 2026 || info.FirstDraftSeason() != 2027 {
		t.Errorf("league info = %+v", info)
	}

	users, err := c.Users(ctx, "L1")
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) != 2 || users[0].TeamName != "Alpha Dogs" || users[1].TeamName != "" {
		t.Errorf("users = %+v", users)
	}

	rosters, err := c.Rosters(ctx, "L1")
	if err != nil {
		t.Fatalf("Rosters: %v", err)
	}
	if len(rosters) != 1 {
		t.Fatalf("rosters = %+v", rosters)
	}
	r := rosters[0]
	if r.Wins != 9 || r.Losses != 5 || r.PointsFor != 1502.5 || len(r.Taxi) != 1 {
		t.Errorf("roster = %+v", r)
	}

	trades, err := c.TradedPicks(ctx, "L1")
	if err != nil {
		t.Fatalf("TradedPicks: %v", err)
	}
	// The second pick is back with its original owner and yields no move.
	if len(trades) != 1 {
		t.Fatalf("trades = %+v", trades)
	}
	if tr := trades[0]; tr.Season != 2027 || tr.Round != 1 || tr.OriginalOwner != 2 || tr.From != 2 || tr.To != 1 {
		t.Errorf("trade = %+v", tr)
	}

	players, err := c.Players(ctx)
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if players["p1"].FullName() != "Josh Allen" {
		t.Errorf("p1 = %+v", players["p1"])
	}
	if players["DAL"].ID != "DAL" {
		t.Errorf("directory key should fill a missing id, got %+v", players["DAL"])
	}
}

func TestSleeperClient_Status(t *testing.T) {
	srv := newSleeperServer(t)
	c := NewSleeperClient(SleeperConfig{BaseURL: srv.URL, HTTPClient: srv.Client()})

	_, err := c.Users(context.Background(), "BAD")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status error, got %v", err)
	}
}
