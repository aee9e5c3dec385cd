package api

import (
	"net/http"
	"strings"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/httputil"
	"github.com/AdamBeresnev/clubdesk/internal/utils"
	"github.com/google/uuid"
)

type createCourtRequest struct {
	Name    string `json:"name"`
	Surface string `json:"surface"`
}

func (h *Handler) listCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.courts.ListCourts(r.Context())
	if err != nil {
		httputil.ServiceError(w, "Failed to get courts", err)
		return
	}
	h.respond(w, http.StatusOK, courts)
}

func (h *Handler) createCourt(w http.ResponseWriter, r *http.Request) {
	var req createCourtRequest
	if err := httputil.ReadJSON(w, r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 50 {
		httputil.BadRequest(w, "Court name must be between 1 and 50 characters", nil)
		return
	}

	court := bracket.Court{
		ID:      uuid.New(),
		Name:    name,
		Surface: utils.StringOrNil(req.Surface),
	}
	if err := h.courts.CreateCourt(r.Context(), &court); err != nil {
		httputil.ServiceError(w, "Failed to create court", err)
		return
	}

	created, err := h.courts.GetCourt(r.Context(), court.ID)
	if err != nil {
		httputil.ServiceError(w, "Failed to get court", err)
		return
	}
	h.respond(w, http.StatusCreated, created)
}
