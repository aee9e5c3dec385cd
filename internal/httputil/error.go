package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/draw"
	"github.com/AdamBeresnev/clubdesk/internal/service"
	"github.com/AdamBeresnev/clubdesk/internal/store"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := ErrorResponse{Error: msg}
	if err != nil && status < http.StatusInternalServerError {
		body.Details = err.Error()
	}
	if werr := WriteJSON(w, status, body); werr != nil {
		slog.Error("failed to write error response", "error", werr)
	}
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, msg, err)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	writeError(w, http.StatusBadRequest, msg, err)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	writeError(w, http.StatusNotFound, msg, err)
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	slog.Warn("conflict", "message", msg, "error", err)
	writeError(w, http.StatusConflict, msg, err)
}

func Unauthorized(w http.ResponseWriter, msg string) {
	slog.Warn("unauthorized", "message", msg)
	writeError(w, http.StatusUnauthorized, msg, nil)
}

// ServiceError maps a service error to a status code. msg is the generic
// failure text; client errors also carry the underlying error as details.
func ServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(w, msg, err)
	case errors.Is(err, draw.ErrNotEnoughTeams),
		errors.Is(err, bracket.ErrInvalidFormat),
		errors.Is(err, bracket.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrWinnerNotInMatch),
		errors.Is(err, service.ErrMatchNotReady):
		BadRequest(w, msg, err)
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, service.ErrDrawExists),
		errors.Is(err, service.ErrMatchCompleted),
		errors.Is(err, service.ErrKnockoutNotReady):
		Conflict(w, msg, err)
	default:
		InternalServerError(w, msg, err)
	}
}
