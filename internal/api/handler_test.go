package api

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/db"
	"github.com/AdamBeresnev/clubdesk/internal/draw"
	"github.com/AdamBeresnev/clubdesk/internal/httputil"
	"github.com/AdamBeresnev/clubdesk/internal/service"
	"github.com/AdamBeresnev/clubdesk/internal/store"
	users "github.com/AdamBeresnev/clubdesk/internal/user"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(database.DB))
	t.Cleanup(func() { database.Close() })

	tournamentStore := store.NewTournamentStore(database)
	courtStore := store.NewCourtStore(database)

	h := NewHandler(
		service.NewTournamentService(database, tournamentStore),
		service.NewDrawService(database, tournamentStore, nil).WithRand(rand.New(rand.NewPCG(1, 2))),
		service.NewMatchService(database, tournamentStore, courtStore, nil),
		courtStore,
		nil,
		nil,
	)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(users.WithID(r.Context(), users.GuestID)))
		})
	})
	r.Mount("/", h.Routes())
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createTournament(t *testing.T, router http.Handler, format string, teams ...string) uuid.UUID {
	t.Helper()

	inputs := make([]service.TeamInput, len(teams))
	for i, name := range teams {
		inputs[i] = service.TeamInput{Name: name}
	}
	rec := doJSON(t, router, http.MethodPost, "/tournaments", createTournamentRequest{
		Name:   "Club Open",
		Format: format,
		Teams:  inputs,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode[struct {
		ID uuid.UUID `json:"id"`
	}](t, rec)
	return resp.ID
}

func TestCreateAndGetTournament(t *testing.T) {
	router := newTestRouter(t)
	id := createTournament(t, router, "round_robin", "Aces", "Blues", "Comets")

	rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode[service.TournamentData](t, rec)
	assert.Equal(t, "Club Open", data.Tournament.Name)
	assert.Equal(t, bracket.RoundRobin, data.Tournament.Format)
	assert.Len(t, data.Teams, 3)

	rec = doJSON(t, router, http.MethodGet, "/tournaments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]bracket.Tournament](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}

func TestCreateTournament_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body any
	}{
		{"unknown format", createTournamentRequest{Name: "X", Format: "swiss"}},
		{"missing name", createTournamentRequest{Format: "round_robin"}},
		{"unknown field", map[string]any{"name": "X", "format": "round_robin", "prize": 10}},
		{"blank team", createTournamentRequest{Name: "X", Format: "round_robin", Teams: []service.TeamInput{{Name: " "}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/tournaments", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode[httputil.ErrorResponse](t, rec)
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.Details)
		})
	}
}

func TestGetTournament_NotFoundAndBadID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/tournaments/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tournaments/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDrawLifecycle(t *testing.T) {
	router := newTestRouter(t)
	id := createTournament(t, router, "single_elimination", "Aces", "Blues", "Comets", "Drops")

	rec := doJSON(t, router, http.MethodPost, "/tournaments/"+id.String()+"/draw", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		Matches []bracket.Match `json:"matches"`
	}](t, rec)
	assert.Len(t, created.Matches, 3)

	rec = doJSON(t, router, http.MethodPost, "/tournaments/"+id.String()+"/draw", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tournaments/"+id.String()+"/draw", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	drawn := decode[struct {
		Rounds []draw.Round `json:"rounds"`
	}](t, rec)
	require.Len(t, drawn.Rounds, 2)
	require.Len(t, drawn.Rounds[0].Matches, 2)
	require.Len(t, drawn.Rounds[1].Matches, 1)

	first := drawn.Rounds[0].Matches[0]
	final := drawn.Rounds[1].Matches[0]
	require.NotNil(t, first.Team1ID)

	rec = doJSON(t, router, http.MethodPut, "/tournaments/matches/"+first.ID.String()+"/result", resultRequest{WinnerID: *first.Team1ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	completed := decode[bracket.Match](t, rec)
	assert.Equal(t, bracket.MatchCompleted, completed.Status)
	assert.Equal(t, first.Team1ID, completed.WinnerID)

	rec = doJSON(t, router, http.MethodGet, "/tournaments/matches/"+final.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first.Team1ID, decode[bracket.Match](t, rec).Team1ID)

	rec = doJSON(t, router, http.MethodPut, "/tournaments/matches/"+first.ID.String()+"/result", resultRequest{WinnerID: *first.Team1ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/tournaments/matches/"+final.ID.String()+"/result", resultRequest{WinnerID: *first.Team1ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "final still has an empty slot")
}

func TestDraw_NotEnoughTeams(t *testing.T) {
	router := newTestRouter(t)
	id := createTournament(t, router, "single_elimination", "Aces")

	rec := doJSON(t, router, http.MethodPost, "/tournaments/"+id.String()+"/draw", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordResult_Errors(t *testing.T) {
	router := newTestRouter(t)
	id := createTournament(t, router, "round_robin", "Aces", "Blues")
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/tournaments/"+id.String()+"/draw", nil).Code)

	drawn := decode[struct {
		Rounds []draw.Round `json:"rounds"`
	}](t, doJSON(t, router, http.MethodGet, "/tournaments/"+id.String()+"/draw", nil))
	match := drawn.Rounds[0].Matches[0]
	path := "/tournaments/matches/" + match.ID.String() + "/result"

	rec := doJSON(t, router, http.MethodPut, path, resultRequest{WinnerID: uuid.New()})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, path, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/tournaments/matches/"+uuid.NewString()+"/result", resultRequest{WinnerID: uuid.New()})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/tournaments/matches/"+match.ID.String()+"/score", scoreRequest{
		WinnerID: *match.Team2ID,
		Sets:     bracket.SetScores{{Team1: 6, Team2: 3}, {Team1: 2, Team2: 6}, {Team1: 4, Team2: 6}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/tournaments/matches/"+match.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[bracket.Match](t, rec)
	assert.Equal(t, bracket.MatchCompleted, stored.Status)
	assert.Len(t, stored.Score, 3)
}

func TestCourtsAndScheduling(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/courts", createCourtRequest{Name: "Centre", Surface: "clay"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	court := decode[bracket.Court](t, rec)
	require.NotNil(t, court.Surface)
	assert.Equal(t, "clay", *court.Surface)

	rec = doJSON(t, router, http.MethodPost, "/courts", createCourtRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/courts", createCourtRequest{Name: "Centre"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/courts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]bracket.Court](t, rec), 1)

	id := createTournament(t, router, "round_robin", "Aces", "Blues")
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/tournaments/"+id.String()+"/draw", nil).Code)
	drawn := decode[struct {
		Rounds []draw.Round `json:"rounds"`
	}](t, doJSON(t, router, http.MethodGet, "/tournaments/"+id.String()+"/draw", nil))
	match := drawn.Rounds[0].Matches[0]

	at := time.Date(2026, 5, 2, 10, 30, 0, 0, time.UTC)
	rec = doJSON(t, router, http.MethodPost, "/tournaments/matches/"+match.ID.String()+"/schedule", scheduleRequest{CourtID: court.ID, ScheduledAt: at})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	scheduled := decode[bracket.Match](t, rec)
	require.NotNil(t, scheduled.CourtID)
	assert.Equal(t, court.ID, *scheduled.CourtID)
	require.NotNil(t, scheduled.ScheduledAt)
	assert.True(t, at.Equal(*scheduled.ScheduledAt))

	rec = doJSON(t, router, http.MethodPost, "/tournaments/matches/"+match.ID.String()+"/schedule", scheduleRequest{CourtID: uuid.New(), ScheduledAt: at})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGroupStageStandingsAndKnockout(t *testing.T) {
	router := newTestRouter(t)
	id := createTournament(t, router, "group_stage", "Aces", "Blues", "Comets", "Drops")
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/tournaments/"+id.String()+"/draw", nil).Code)

	rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id.String()+"/standings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	standings := decode[struct {
		Groups map[string][]draw.Standing `json:"groups"`
	}](t, rec)
	assert.Len(t, standings.Groups[bracket.GroupA], 2)
	assert.Len(t, standings.Groups[bracket.GroupB], 2)

	rec = doJSON(t, router, http.MethodPost, "/tournaments/"+id.String()+"/knockout", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "groups are not finished")

	other := createTournament(t, router, "round_robin", "Aces", "Blues")
	rec = doJSON(t, router, http.MethodGet, "/tournaments/"+other.String()+"/standings", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
