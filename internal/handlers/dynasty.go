package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/draftkit/valuation-api/internal/dynasty"
	"github.com/draftkit/valuation-api/internal/models"
)

// GetDynastyReport values every team, pick and free agent in a dynasty league
// @Summary Dynasty League Report
// @Description Team summaries, the resolved pick table and undrafted players. Views whose inputs failed carry an entry in errors.
// @Tags Dynasty
// @Produce json
// @Param leagueID path string true "Sleeper league ID"
// @Param sheet query string false "Market sheet ID or URL"
// @Param tab query string false "Market sheet tab"
// @Param format query string false "Market format (1QB or SF)" default(SF)
// @Success 200 {object} models.DynastyReport
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /dynasty/{leagueID} [get]
func (h *Handler) GetDynastyReport(w http.ResponseWriter, r *http.Request) {
	leagueID := strings.TrimSpace(chi.URLParam(r, "leagueID"))
	if leagueID == "" {
		h.errorResponse(w, http.StatusBadRequest, "League ID required")
		return
	}
	if h.dynasty == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Dynasty reports not configured")
		return
	}

	q := r.URL.Query()
	format := models.MarketFormatSuperflex
	switch raw := strings.ToUpper(q.Get("format")); raw {
	case "":
	case string(models.MarketFormatOneQB), string(models.MarketFormatSuperflex):
		format = models.MarketFormat(raw)
	default:
		h.errorResponse(w, http.StatusBadRequest, "format must be 1QB or SF")
		return
	}

	sheet, tab := h.marketTable(r)

	report, err := h.dynasty.Report(r.Context(), dynasty.ReportRequest{
		LeagueID: leagueID,
		Sheet:    sheet,
		Tab:      tab,
		Format:   format,
	})
	if err != nil {
		h.logger.Errorw("Dynasty report failed", "league", leagueID, "error", err)
		h.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	if h.tracker != nil {
		h.tracker.TrackLeague(leagueID, sheet, tab)
	}
	h.jsonResponse(w, http.StatusOK, report)
}

// RefreshDynasty queues an immediate re-fetch of a league's cached inputs
// @Summary Refresh Dynasty League
// @Description Queues refresh jobs for the league and its market table
// @Tags Dynasty
// @Produce json
// @Param leagueID path string true "Sleeper league ID"
// @Param sheet query string false "Market sheet ID or URL"
// @Param tab query string false "Market sheet tab"
// @Success 202 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "Refresh queue full"
// @Router /dynasty/{leagueID}/refresh [post]
func (h *Handler) RefreshDynasty(w http.ResponseWriter, r *http.Request) {
	leagueID := strings.TrimSpace(chi.URLParam(r, "leagueID"))
	if leagueID == "" {
		h.errorResponse(w, http.StatusBadRequest, "League ID required")
		return
	}
	if h.tracker == nil || h.refresh == nil {
		h.errorResponse(w, http.StatusServiceUnavailable, "Refresh not configured")
		return
	}

	sheet, tab := h.marketTable(r)
	var queued []string
	for _, job := range h.tracker.Jobs(leagueID, sheet, tab) {
		if !h.refresh.Enqueue(job) {
			h.logger.Warnw("Refresh queue full", "job", job.Name)
			h.errorResponse(w, http.StatusServiceUnavailable, "Refresh queue full")
			return
		}
		queued = append(queued, job.Name)
	}

	h.jsonResponse(w, http.StatusAccepted, map[string]interface{}{
		"status": "queued",
		"jobs":   queued,
	})
}

// marketTable reads the sheet and tab query parameters, falling back to the
// configured defaults.
func (h *Handler) marketTable(r *http.Request) (sheet, tab string) {
	q := r.URL.Query()
	sheet = q.Get("sheet")
	if sheet == "" {
		sheet = h.marketSheet
	}
	tab = q.Get("tab")
	if tab == "" {
		tab = h.marketTab
	}
	return sheet, tab
}
