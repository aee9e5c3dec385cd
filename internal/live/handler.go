package live

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/httputil"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// TournamentLookup resolves the tournament a client wants to follow.
type TournamentLookup interface {
	GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error)
}

// Handler upgrades the request and subscribes the connection to an existing
// tournament. An empty allowedOrigins list accepts any origin.
func (h *Hub) Handler(allowedOrigins []string, tournaments TournamentLookup, tournamentID func(*http.Request) (uuid.UUID, error)) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tournamentID(r)
		if err != nil {
			httputil.BadRequest(w, "Invalid tournament ID", err)
			return
		}

		if _, err := tournaments.GetTournament(r.Context(), id); err != nil {
			httputil.ServiceError(w, "Failed to get tournament", err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the client
			slog.Warn("websocket upgrade failed", "tournament_id", id, "error", err)
			return
		}

		c := &client{hub: h, conn: conn, room: id, send: make(chan []byte, sendBuffer)}
		h.register(c)

		go c.writePump()
		go c.readPump()
	}
}
