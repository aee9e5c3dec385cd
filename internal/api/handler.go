// Package api exposes tournaments, draws, matches and courts as a JSON API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/clubdesk/internal/httputil"
	"github.com/AdamBeresnev/clubdesk/internal/live"
	"github.com/AdamBeresnev/clubdesk/internal/service"
	"github.com/AdamBeresnev/clubdesk/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	tournaments *service.TournamentService
	draws       *service.DrawService
	matches     *service.MatchService
	courts      *store.CourtStore
	hub         *live.Hub

	allowedOrigins []string
}

func NewHandler(
	tournaments *service.TournamentService,
	draws *service.DrawService,
	matches *service.MatchService,
	courts *store.CourtStore,
	hub *live.Hub,
	allowedOrigins []string,
) *Handler {
	return &Handler{
		tournaments:    tournaments,
		draws:          draws,
		matches:        matches,
		courts:         courts,
		hub:            hub,
		allowedOrigins: allowedOrigins,
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/tournaments", func(r chi.Router) {
		r.Post("/", h.createTournament)
		r.Get("/", h.listTournaments)

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", h.getMatch)
			r.Put("/result", h.recordResult)
			r.Put("/score", h.recordScore)
			r.Post("/schedule", h.scheduleMatch)
		})

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.getTournament)
			r.Post("/draw", h.generateDraw)
			r.Get("/draw", h.getDraw)
			r.Get("/standings", h.getStandings)
			r.Post("/knockout", h.advanceKnockout)
			if h.hub != nil {
				r.Get("/live", h.hub.Handler(h.allowedOrigins, h.tournaments, tournamentID))
			}
		})
	})

	r.Route("/courts", func(r chi.Router) {
		r.Get("/", h.listCourts)
		r.Post("/", h.createCourt)
	})

	return r
}

func tournamentID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "tournamentID"))
}

func matchID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "matchID"))
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any) {
	if err := httputil.WriteJSON(w, status, data); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
