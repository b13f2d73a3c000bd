package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/draftkit/valuation-api/internal/logic"
	"github.com/draftkit/valuation-api/internal/models"
	"github.com/draftkit/valuation-api/internal/sources"
)

// maxHeadCount caps the k query parameter on the board view.
const maxHeadCount = 100

// CreateSession starts a new valuation session seeded from the default tables
// @Summary Create Session
// @Description Creates a session holding projection tables, ADP and a drafted set
// @Tags Sessions
// @Accept json
// @Produce json
// @Param body body models.CreateSessionRequest false "League overrides"
// @Success 201 {object} models.CreateSessionResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Default tables unavailable"
// @Router /sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var set *sources.TableSet
	if h.defaults != nil {
		loaded, err := h.defaults.Load(r.Context())
		if err != nil {
			h.logger.Errorw("Failed to load default tables", "error", err)
			h.errorResponse(w, http.StatusBadGateway, "Default projection tables unavailable")
			return
		}
		set = loaded
	}

	s := h.sessions.Create(set, req.LeagueSize, req.IncludeZeroPointPlayers)
	players := 0
	for _, t := range s.Tables {
		players += len(t.Records)
	}
	h.logger.Infow("Session created", "session", s.ID, "tables", len(s.Tables), "players", players)

	h.jsonResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: s.ID.String(),
		Players:   players,
	})
}

// GetSession describes a session's loaded inputs
// @Summary Get Session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.SessionSummary
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, s.Summary())
}

// DeleteSession drops a session
// @Summary Delete Session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		h.errorResponse(w, http.StatusNotFound, ErrSessionNotFound.Error())
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PutTable replaces one projection table, or the ADP table, from a CSV body
// @Summary Upload Table
// @Description Table is one of qb, flx, rb, wr, te, k, dst or adp
// @Tags Sessions
// @Accept text/csv
// @Produce json
// @Param id path string true "Session ID"
// @Param table path string true "Table name"
// @Success 200 {object} models.TableUploadResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id}/tables/{table} [put]
func (h *Handler) PutTable(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		h.errorResponse(w, http.StatusNotFound, ErrSessionNotFound.Error())
		return
	}
	table := strings.ToLower(chi.URLParam(r, "table"))
	body := http.MaxBytesReader(w, r.Body, MaxUploadSize)

	var (
		rows   int
		update func(s *Session)
	)
	switch {
	case table == sources.TableADP:
		adp, err := sources.ParseADP(body)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		rows = len(adp)
		update = func(s *Session) { s.ADP = adp }
	case sources.IsProjectionTable(table):
		parsed, err := sources.ParseProjections(table, body)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		rows = len(parsed.Records)
		update = func(s *Session) { s.Tables[table] = parsed }
	default:
		h.errorResponse(w, http.StatusBadRequest, sources.ErrUnknownTable.Error()+": "+table)
		return
	}

	if _, err := h.sessions.Update(id, update); err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	h.logger.Infow("Table replaced", "session", id, "table", table, "rows", rows)
	h.jsonResponse(w, http.StatusOK, models.TableUploadResponse{Table: table, Rows: rows})
}

// GetValuations runs a valuation pass over the session's inputs
// @Summary Valued Player Table
// @Tags Valuation
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.Valuation
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Roster policy incomplete"
// @Router /sessions/{id}/valuations [get]
func (h *Handler) GetValuations(w http.ResponseWriter, r *http.Request) {
	val, ok := h.valuate(w, r)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, val)
}

// GetPosition returns one position's players in position-rank order
// @Summary Position Ranking
// @Tags Valuation
// @Produce json
// @Param id path string true "Session ID"
// @Param pos path string true "Position (QB, RB, WR, TE, K, DST)"
// @Success 200 {array} models.ValuedPlayer
// @Failure 400 {object} map[string]string "Unknown position"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id}/positions/{pos} [get]
func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	pos, known := models.ParsePosition(chi.URLParam(r, "pos"))
	if !known {
		h.errorResponse(w, http.StatusBadRequest, "Unknown position")
		return
	}
	val, ok := h.valuate(w, r)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, logic.PositionView(val.Players, pos))
}

// PutDrafted replaces the session's drafted set
// @Summary Replace Drafted Set
// @Description The list fully overrides the previous drafted set
// @Tags Draft
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body models.DraftedRequest true "Drafted player names"
// @Success 200 {object} models.DraftedResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id}/drafted [put]
func (h *Handler) PutDrafted(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		h.errorResponse(w, http.StatusNotFound, ErrSessionNotFound.Error())
		return
	}
	var req models.DraftedRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	drafted := normalizeDrafted(req.Players)
	s, err := h.sessions.Update(id, func(s *Session) { s.Drafted = drafted })
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	resp := models.DraftedResponse{Drafted: len(drafted), Unknown: []string{}}
	val, err := h.valuation.Run(r.Context(), s.Inputs())
	if err != nil {
		// The set is stored either way; unknown names need a valued pool.
		h.logger.Warnw("Valuation failed after drafted update", "session", id, "error", err)
	} else {
		resp.Unknown = unknownNames(drafted, val.Players)
	}
	h.jsonResponse(w, http.StatusOK, resp)
}

// GetBoard returns the best-available views for the live draft
// @Summary Draft Board
// @Tags Draft
// @Produce json
// @Param id path string true "Session ID"
// @Param k query int false "List length" default(5)
// @Success 200 {object} models.DraftBoardView
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id}/board [get]
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	k := h.headCount
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHeadCount {
			h.errorResponse(w, http.StatusBadRequest, "k must be between 1 and 100")
			return
		}
		k = n
	}
	val, ok := h.valuate(w, r)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, logic.NewDraftBoard(val.Players).View(k))
}

// PostFreeAgents joins a league's free-agent list to the valued pool
// @Summary Free-Agent Board
// @Tags Draft
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body models.FreeAgentRequest true "Free-agent names as listed by the league"
// @Success 200 {array} models.FreeAgent
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id}/free-agents [post]
func (h *Handler) PostFreeAgents(w http.ResponseWriter, r *http.Request) {
	var req models.FreeAgentRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	val, ok := h.valuate(w, r)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, logic.FreeAgentBoard(req.Players, val.Players))
}

// PostWeeklyFreeAgents compares a roster's weekly projections to the league's
// free agents
// @Summary Weekly Free-Agent Improvements
// @Tags Draft
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body models.WeeklyFreeAgentRequest true "Weekly projections for free agents and the roster"
// @Success 200 {array} models.PositionImprovement
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id}/free-agents/weekly [post]
func (h *Handler) PostWeeklyFreeAgents(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.session(w, r); !ok {
		return
	}
	var req models.WeeklyFreeAgentRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	normalizeWeekly(req.FreeAgents)
	normalizeWeekly(req.Roster)
	h.jsonResponse(w, http.StatusOK, logic.WeeklyImprovements(req.FreeAgents, req.Roster))
}

// normalizeWeekly maps league position labels such as "D/ST" onto Position.
func normalizeWeekly(players []models.WeeklyPlayer) {
	for i := range players {
		players[i].Position, _ = models.ParsePosition(string(players[i].Position))
	}
}

// session loads the {id} session or writes a 404.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, ok := sessionID(r)
	if !ok {
		h.errorResponse(w, http.StatusNotFound, ErrSessionNotFound.Error())
		return nil, false
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return s, true
}

// valuate runs the pipeline for the {id} session, writing the error response
// on failure.
func (h *Handler) valuate(w http.ResponseWriter, r *http.Request) (*models.Valuation, bool) {
	s, ok := h.session(w, r)
	if !ok {
		return nil, false
	}
	val, err := h.valuation.Run(r.Context(), s.Inputs())
	if err != nil {
		status := valuationStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Errorw("Valuation failed", "session", s.ID, "error", err)
		}
		h.errorResponse(w, status, err.Error())
		return nil, false
	}
	return val, true
}
