package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/draftkit/valuation-api/internal/logic"
	"github.com/draftkit/valuation-api/internal/models"
	"github.com/draftkit/valuation-api/internal/sources"
)

func defaultTables() *sources.TableSet {
	return &sources.TableSet{
		Tables: []models.ProjectionTable{
			{Name: sources.TableQB, Records: []models.ProjectionRecord{
				{Name: "Josh Allen", Position: models.PositionQB},
				{Name: "Jalen Hurts", Position: models.PositionQB},
			}},
			{Name: sources.TableK, Records: []models.ProjectionRecord{
				{Name: "Justin Tucker", Position: models.PositionK},
			}},
		},
		ADP: []models.ADPEntry{{Name: "Josh Allen", ADP: 20}},
	}
}

func samplePool() []models.ValuedPlayer {
	return []models.ValuedPlayer{
		valued("Josh Allen", models.PositionQB, 400, 1),
		valued("Tyreek Hill", models.PositionWR, 300, 1),
		valued("Jalen Hurts", models.PositionQB, 380, 2),
		valued("CeeDee Lamb", models.PositionWR, 290, 2),
		valued("San Francisco 49ers", models.PositionDST, 120, 1),
	}
}

// seededSession stores a session directly and returns its id.
func seededSession(h *Handler) uuid.UUID {
	return h.sessions.Create(defaultTables(), 0, nil).ID
}

func TestCreateSession(t *testing.T) {
	h := newTestHandler(Config{
		Defaults: &MockProjectionSource{LoadFunc: func(ctx context.Context) (*sources.TableSet, error) {
			return defaultTables(), nil
		}},
	})
	router := newTestRouter(h)

	rr := do(router, "POST", "/api/v1/sessions", `{"league_size": 12}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.CreateSessionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Players != 3 {
		t.Errorf("expected 3 players, got %d", resp.Players)
	}

	rr = do(router, "GET", "/api/v1/sessions/"+resp.SessionID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var summary models.SessionSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.LeagueSize != 12 || summary.ADPRows != 1 || summary.Tables[sources.TableQB] != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestCreateSession_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		loadErr    error
		wantStatus int
	}{
		{"Empty body uses defaults", "", nil, http.StatusCreated},
		{"Invalid JSON", `{"league_size":`, nil, http.StatusBadRequest},
		{"League too small", `{"league_size": 1}`, nil, http.StatusBadRequest},
		{"League too large", `{"league_size": 40}`, nil, http.StatusBadRequest},
		{"Default tables unavailable", `{}`, errors.New("disk gone"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(Config{
				Defaults: &MockProjectionSource{LoadFunc: func(ctx context.Context) (*sources.TableSet, error) {
					if tt.loadErr != nil {
						return nil, tt.loadErr
					}
					return defaultTables(), nil
				}},
			})
			rr := do(newTestRouter(h), "POST", "/api/v1/sessions", tt.body)
			if rr.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestDeleteSession(t *testing.T) {
	h := newTestHandler(Config{})
	router := newTestRouter(h)
	id := seededSession(h)

	if rr := do(router, "DELETE", "/api/v1/sessions/"+id.String(), ""); rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr := do(router, "DELETE", "/api/v1/sessions/"+id.String(), ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rr.Code)
	}
}

func TestUnknownSession(t *testing.T) {
	h := newTestHandler(Config{})
	router := newTestRouter(h)

	paths := []string{
		"/api/v1/sessions/not-a-uuid",
		"/api/v1/sessions/" + uuid.NewString(),
		"/api/v1/sessions/" + uuid.NewString() + "/valuations",
		"/api/v1/sessions/" + uuid.NewString() + "/board",
	}
	for _, p := range paths {
		if rr := do(router, "GET", p, ""); rr.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", p, rr.Code)
		}
	}
}

func TestPutTable(t *testing.T) {
	h := newTestHandler(Config{})
	router := newTestRouter(h)
	id := seededSession(h)

	qb := "Player,Team,YDS,TDS,INTS,YDS,TDS,FPTS\n" +
		"Josh Allen,BUF,4300,30,10,500,6,400\n" +
		"Lamar Jackson,BAL,3600,26,8,900,5,380\n" +
		"Patrick Mahomes,KC,4500,32,11,300,2,370\n"

	tests := []struct {
		name       string
		table      string
		body       string
		wantStatus int
		wantRows   int
	}{
		{"Projection table", "QB", qb, http.StatusOK, 3},
		{"ADP table", "adp", "Player,POS,AVG\nJosh Allen,QB1,20.5\nLamar Jackson,QB2,\n", http.StatusOK, 1},
		{"Unknown table", "ol", qb, http.StatusBadRequest, 0},
		{"Missing name column", "k", "Kicker,FG\nTucker,30\n", http.StatusBadRequest, 0},
		{"ADP missing AVG column", "adp", "Player,POS\nJosh Allen,QB1\n", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(router, "PUT", fmt.Sprintf("/api/v1/sessions/%s/tables/%s", id, tt.table), tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp models.TableUploadResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Rows != tt.wantRows {
				t.Errorf("expected %d rows, got %d", tt.wantRows, resp.Rows)
			}
		})
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		t.Fatalf("session lost: %v", err)
	}
	if got := len(s.Tables[sources.TableQB].Records); got != 3 {
		t.Errorf("expected qb table replaced with 3 rows, got %d", got)
	}
	if len(s.ADP) != 1 || s.ADP[0].Name != "Josh Allen" {
		t.Errorf("expected ADP table replaced, got %+v", s.ADP)
	}
	if got := len(s.Tables[sources.TableK].Records); got != 1 {
		t.Errorf("expected k table untouched, got %d rows", got)
	}
}

func TestGetValuations(t *testing.T) {
	var got logic.Inputs
	h := newTestHandler(Config{
		Valuation: &MockValuationService{RunFunc: func(ctx context.Context, in logic.Inputs) (*models.Valuation, error) {
			got = in
			return &models.Valuation{Players: samplePool(), LeagueSize: 10}, nil
		}},
	})
	router := newTestRouter(h)
	includeZero := true
	id := h.sessions.Create(defaultTables(), 12, &includeZero).ID

	rr := do(router, "GET", "/api/v1/sessions/"+id.String()+"/valuations", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var val models.Valuation
	if err := json.Unmarshal(rr.Body.Bytes(), &val); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(val.Players) != 5 {
		t.Errorf("expected 5 players, got %d", len(val.Players))
	}
	if val.Players[0].HasADP() {
		t.Errorf("missing ADP should decode back to the sentinel")
	}

	if got.LeagueSize != 12 || got.IncludeZeroPointPlayers == nil || !*got.IncludeZeroPointPlayers {
		t.Errorf("session overrides not passed through: %+v", got)
	}
	if len(got.Tables) != 2 || got.Tables[0].Name != sources.TableQB || got.Tables[1].Name != sources.TableK {
		t.Errorf("tables not passed in load order: %+v", got.Tables)
	}
}

func TestGetValuations_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Missing roster policy", fmt.Errorf("%w: FB", logic.ErrMissingRosterPolicy), http.StatusUnprocessableEntity},
		{"Invalid league size", fmt.Errorf("%w: 0", logic.ErrInvalidLeagueSize), http.StatusBadRequest},
		{"Unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(Config{
				Valuation: &MockValuationService{RunFunc: func(ctx context.Context, in logic.Inputs) (*models.Valuation, error) {
					return nil, tt.err
				}},
			})
			id := seededSession(h)
			rr := do(newTestRouter(h), "GET", "/api/v1/sessions/"+id.String()+"/valuations", "")
			if rr.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestGetPosition(t *testing.T) {
	h := newTestHandler(Config{
		Valuation: &MockValuationService{RunFunc: func(ctx context.Context, in logic.Inputs) (*models.Valuation, error) {
			return &models.Valuation{Players: samplePool()}, nil
		}},
	})
	router := newTestRouter(h)
	id := seededSession(h)

	rr := do(router, "GET", "/api/v1/sessions/"+id.String()+"/positions/wr", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var players []models.ValuedPlayer
	if err := json.Unmarshal(rr.Body.Bytes(), &players); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(players) != 2 || players[0].Name != "Tyreek Hill" || players[1].Name != "CeeDee Lamb" {
		t.Errorf("unexpected WR view: %+v", players)
	}

	if rr := do(router, "GET", "/api/v1/sessions/"+id.String()+"/positions/FB", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown position, got %d", rr.Code)
	}
}

func TestPutDrafted(t *testing.T) {
	h := newTestHandler(Config{
		Valuation: &MockValuationService{RunFunc: func(ctx context.Context, in logic.Inputs) (*models.Valuation, error) {
			return &models.Valuation{Players: samplePool()}, nil
		}},
	})
	router := newTestRouter(h)
	id := seededSession(h)

	rr := do(router, "PUT", "/api/v1/sessions/"+id.String()+"/drafted",
		`{"players": [" Josh Allen ", "Josh Allen", "Mystery Man", "Tyreek Hill"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.DraftedResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Drafted != 3 {
		t.Errorf("expected 3 drafted, got %d", resp.Drafted)
	}
	if len(resp.Unknown) != 1 || resp.Unknown[0] != "Mystery Man" {
		t.Errorf("expected Mystery Man unknown, got %v", resp.Unknown)
	}

	// A second call replaces the set.
	rr = do(router, "PUT", "/api/v1/sessions/"+id.String()+"/drafted", `{"players": []}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	s, _ := h.sessions.Get(id)
	if len(s.Drafted) != 0 {
		t.Errorf("expected drafted set cleared, got %v", s.Drafted)
	}

	if rr := do(router, "PUT", "/api/v1/sessions/"+id.String()+"/drafted", `{"players": [""]}`); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank name, got %d", rr.Code)
	}
}

func TestGetBoard(t *testing.T) {
	h := newTestHandler(Config{
		HeadCount: 2,
		Valuation: &MockValuationService{RunFunc: func(ctx context.Context, in logic.Inputs) (*models.Valuation, error) {
			pool := samplePool()
			pool[0].Drafted = true
			return &models.Valuation{Players: pool}, nil
		}},
	})
	router := newTestRouter(h)
	id := seededSession(h)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantK      int
	}{
		{"Default head count", "", http.StatusOK, 2},
		{"Explicit k", "?k=3", http.StatusOK, 3},
		{"Non-numeric k", "?k=abc", http.StatusBadRequest, 0},
		{"Zero k", "?k=0", http.StatusBadRequest, 0},
		{"Huge k", "?k=1000", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(router, "GET", "/api/v1/sessions/"+id.String()+"/board"+tt.query, "")
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var view models.DraftBoardView
			if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if view.K != tt.wantK || view.Drafted != 1 {
				t.Errorf("unexpected view header: k=%d drafted=%d", view.K, view.Drafted)
			}
			if len(view.TopVORP) != tt.wantK {
				t.Fatalf("expected %d VORP entries, got %d", tt.wantK, len(view.TopVORP))
			}
			if view.TopVORP[0].Name == "Josh Allen" {
				t.Errorf("drafted player should not appear in best available")
			}
		})
	}
}

func TestPostFreeAgents(t *testing.T) {
	h := newTestHandler(Config{
		Valuation: &MockValuationService{RunFunc: func(ctx context.Context, in logic.Inputs) (*models.Valuation, error) {
			return &models.Valuation{Players: samplePool()}, nil
		}},
	})
	router := newTestRouter(h)
	id := seededSession(h)

	rr := do(router, "POST", "/api/v1/sessions/"+id.String()+"/free-agents",
		`{"players": ["CeeDee Lamb", "49ers D/ST", "Nobody"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var agents []models.FreeAgent
	if err := json.Unmarshal(rr.Body.Bytes(), &agents); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("expected 2 free agents, got %d", len(agents))
	}
	if agents[0].Name != "CeeDee Lamb" || agents[1].Name != "San Francisco 49ers" {
		t.Errorf("unexpected board order: %s, %s", agents[0].Name, agents[1].Name)
	}

	if rr := do(router, "POST", "/api/v1/sessions/"+id.String()+"/free-agents", `{"players": []}`); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty list, got %d", rr.Code)
	}
}

func TestPostWeeklyFreeAgents(t *testing.T) {
	h := newTestHandler(Config{})
	router := newTestRouter(h)
	id := seededSession(h)
	path := "/api/v1/sessions/" + id.String() + "/free-agents/weekly"

	body := `{
		"free_agents": [
			{"name": "Dallas Cowboys", "position": "D/ST", "projected_points": 9},
			{"name": "Denver Broncos", "position": "D/ST", "projected_points": 5},
			{"name": "Gus Edwards", "position": "RB", "projected_points": 7}
		],
		"roster": [{"name": "New York Jets", "position": "D/ST", "projected_points": 4}]
	}`
	rr := do(router, "POST", path, body)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var got []models.PositionImprovement
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 || got[0].Position != models.PositionDST {
		t.Fatalf("expected a single DST entry, got %+v", got)
	}
	if len(got[0].Improvements) != 1 || got[0].Improvements[0].Improvement != 5 || got[0].Improvements[0].Options != 2 {
		t.Errorf("unexpected improvements: %+v", got[0].Improvements)
	}

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"no free agents", path, `{"free_agents": []}`, http.StatusBadRequest},
		{"missing name", path, `{"free_agents": [{"position": "RB"}]}`, http.StatusBadRequest},
		{"bad json", path, `{`, http.StatusBadRequest},
		{"unknown session", "/api/v1/sessions/" + uuid.NewString() + "/free-agents/weekly", body, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := do(router, "POST", tt.path, tt.body); rr.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rr.Code, rr.Body.String())
			}
		})
	}
}
