package api

import (
	"net/http"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/httputil"
	"github.com/AdamBeresnev/clubdesk/internal/service"
)

type createTournamentRequest struct {
	Name   string              `json:"name"`
	Format string              `json:"format"`
	Teams  []service.TeamInput `json:"teams"`
}

func (h *Handler) createTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	format, err := bracket.ParseFormat(req.Format)
	if err != nil {
		httputil.BadRequest(w, "Invalid tournament format", err)
		return
	}

	id, err := h.tournaments.CreateTournament(r.Context(), req.Name, format, req.Teams)
	if err != nil {
		httputil.ServiceError(w, "Failed to create tournament", err)
		return
	}

	w.Header().Set("Location", "/tournaments/"+id.String())
	h.respond(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *Handler) listTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournaments.GetTournamentsForUser(r.Context())
	if err != nil {
		httputil.ServiceError(w, "Failed to get tournaments", err)
		return
	}
	if tournaments == nil {
		tournaments = []bracket.Tournament{}
	}
	h.respond(w, http.StatusOK, tournaments)
}

func (h *Handler) getTournament(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid tournament ID", err)
		return
	}

	data, err := h.tournaments.GetTournamentData(r.Context(), id)
	if err != nil {
		httputil.ServiceError(w, "Failed to get tournament", err)
		return
	}
	h.respond(w, http.StatusOK, data)
}

func (h *Handler) generateDraw(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid tournament ID", err)
		return
	}

	matches, err := h.draws.GenerateDraw(r.Context(), id)
	if err != nil {
		httputil.ServiceError(w, "Failed to generate draw", err)
		return
	}
	h.respond(w, http.StatusCreated, map[string]any{"matches": matches})
}

func (h *Handler) getDraw(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid tournament ID", err)
		return
	}

	rounds, err := h.draws.GetDraw(r.Context(), id)
	if err != nil {
		httputil.ServiceError(w, "Failed to get draw", err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"rounds": rounds})
}

func (h *Handler) getStandings(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid tournament ID", err)
		return
	}

	standings, err := h.draws.GetStandings(r.Context(), id)
	if err != nil {
		httputil.ServiceError(w, "Failed to get standings", err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"groups": standings})
}

func (h *Handler) advanceKnockout(w http.ResponseWriter, r *http.Request) {
	id, err := tournamentID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid tournament ID", err)
		return
	}

	matches, err := h.matches.AdvanceKnockout(r.Context(), id)
	if err != nil {
		httputil.ServiceError(w, "Failed to advance knockout", err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"matches": matches})
}
