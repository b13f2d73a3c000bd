package handlers

import "github.com/go-chi/chi/v5"

// Routes mounts the versioned API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Put("/tables/{table}", h.PutTable)
			r.Get("/valuations", h.GetValuations)
			r.Get("/positions/{pos}", h.GetPosition)
			r.Put("/drafted", h.PutDrafted)
			r.Get("/board", h.GetBoard)
			r.Post("/free-agents", h.PostFreeAgents)
			r.Post("/free-agents/weekly", h.PostWeeklyFreeAgents)
		})
	})
	r.Get("/dynasty/{leagueID}", h.GetDynastyReport)
	r.Post("/dynasty/{leagueID}/refresh", h.RefreshDynasty)
}
