package api

import (
	"net/http"
	"time"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/httputil"
	"github.com/google/uuid"
)

type resultRequest struct {
	WinnerID uuid.UUID `json:"winner_id"`
}

type scoreRequest struct {
	WinnerID uuid.UUID         `json:"winner_id"`
	Sets     bracket.SetScores `json:"sets"`
}

type scheduleRequest struct {
	CourtID     uuid.UUID `json:"court_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

func (h *Handler) getMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid match ID", err)
		return
	}

	match, err := h.matches.GetMatch(r.Context(), id)
	if err != nil {
		httputil.ServiceError(w, "Failed to get match", err)
		return
	}
	h.respond(w, http.StatusOK, match)
}

func (h *Handler) recordResult(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid match ID", err)
		return
	}

	var req resultRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}
	if req.WinnerID == uuid.Nil {
		httputil.BadRequest(w, "winner_id is required", nil)
		return
	}

	match, err := h.matches.RecordResult(r.Context(), id, req.WinnerID)
	if err != nil {
		httputil.ServiceError(w, "Failed to record result", err)
		return
	}
	h.respond(w, http.StatusOK, match)
}

func (h *Handler) recordScore(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid match ID", err)
		return
	}

	var req scoreRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}
	if req.WinnerID == uuid.Nil {
		httputil.BadRequest(w, "winner_id is required", nil)
		return
	}

	match, err := h.matches.RecordScore(r.Context(), id, req.WinnerID, req.Sets)
	if err != nil {
		httputil.ServiceError(w, "Failed to record score", err)
		return
	}
	h.respond(w, http.StatusOK, match)
}

func (h *Handler) scheduleMatch(w http.ResponseWriter, r *http.Request) {
	id, err := matchID(r)
	if err != nil {
		httputil.BadRequest(w, "Invalid match ID", err)
		return
	}

	var req scheduleRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	match, err := h.matches.ScheduleMatch(r.Context(), id, req.CourtID, req.ScheduledAt)
	if err != nil {
		httputil.ServiceError(w, "Failed to schedule match", err)
		return
	}
	h.respond(w, http.StatusOK, match)
}
