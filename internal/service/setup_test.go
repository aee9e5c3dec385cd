package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/db"
	"github.com/AdamBeresnev/clubdesk/internal/store"
	users "github.com/AdamBeresnev/clubdesk/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err, "Failed to connect to in-memory DB")
	require.NoError(t, db.RunMigrations(database.DB), "Failed to apply migrations")

	t.Cleanup(func() { database.Close() })
	return database
}

type recordedEvent struct {
	TournamentID uuid.UUID
	Event        string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Publish(tournamentID uuid.UUID, event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{TournamentID: tournamentID, Event: event})
}

func (n *recordingNotifier) count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.Event == event {
			c++
		}
	}
	return c
}

type fixture struct {
	db          *sqlx.DB
	store       *store.TournamentStore
	courts      *store.CourtStore
	tournaments *TournamentService
	draws       *DrawService
	matches     *MatchService
	notifier    *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	database := setupTestDB(t)
	tournamentStore := store.NewTournamentStore(database)
	courtStore := store.NewCourtStore(database)
	notifier := &recordingNotifier{}

	return &fixture{
		db:          database,
		store:       tournamentStore,
		courts:      courtStore,
		tournaments: NewTournamentService(database, tournamentStore),
		draws:       NewDrawService(database, tournamentStore, notifier).WithRand(rand.New(rand.NewPCG(7, 11))),
		matches:     NewMatchService(database, tournamentStore, courtStore, notifier),
		notifier:    notifier,
	}
}

func testContext() context.Context {
	return users.WithID(context.Background(), users.GuestID)
}

func teamInputs(n int) []TeamInput {
	inputs := make([]TeamInput, n)
	for i := range inputs {
		inputs[i] = TeamInput{Name: fmt.Sprintf("Team %d", i+1), Player1: fmt.Sprintf("Player %d", i+1)}
	}
	return inputs
}

// createDrawn creates a tournament with n teams and generates its draw.
func (f *fixture) createDrawn(t *testing.T, format bracket.Format, n int) (uuid.UUID, []bracket.Team) {
	t.Helper()
	ctx := testContext()

	id, err := f.tournaments.CreateTournament(ctx, "Club Open", format, teamInputs(n))
	require.NoError(t, err)

	_, err = f.draws.GenerateDraw(ctx, id)
	require.NoError(t, err)

	teams, err := f.store.GetTeams(ctx, id)
	require.NoError(t, err)
	return id, teams
}

func (f *fixture) matchAt(t *testing.T, tournamentID uuid.UUID, round, position int) *bracket.Match {
	t.Helper()
	m, err := f.store.FindMatchTx(context.Background(), f.db, tournamentID, round, position)
	require.NoError(t, err)
	require.NotNil(t, m, "no match at round %d position %d", round, position)
	return m
}
