package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/draw"
	"github.com/AdamBeresnev/clubdesk/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type DrawService struct {
	db       *sqlx.DB
	store    *store.TournamentStore
	notifier Notifier
	rng      *rand.Rand
}

func NewDrawService(db *sqlx.DB, store *store.TournamentStore, notifier Notifier) *DrawService {
	return &DrawService{db: db, store: store, notifier: notifierOrNop(notifier)}
}

// WithRand fixes the source used to shuffle group stage draws.
func (s *DrawService) WithRand(rng *rand.Rand) *DrawService {
	s.rng = rng
	return s
}

// GenerateDraw builds the match set for a tournament and writes it in one
// transaction. A tournament gets exactly one draw.
func (s *DrawService) GenerateDraw(ctx context.Context, tournamentID uuid.UUID) ([]bracket.Match, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	tournament, err := s.store.GetTournamentTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.CountMatchesTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: tournament %s has %d matches", ErrDrawExists, tournamentID, existing)
	}

	teams, err := s.store.GetTeamsTx(ctx, tx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams: %w", err)
	}

	generator, err := draw.NewGenerator(tournament.Format, s.rng)
	if err != nil {
		return nil, err
	}

	matches, err := generator.Generate(tournamentID, teams)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if err := matches[i].Validate(); err != nil {
			return nil, fmt.Errorf("generated an invalid match: %w", err)
		}
	}

	if err := s.store.InsertMatches(ctx, tx, matches); err != nil {
		return nil, fmt.Errorf("failed to insert matches: %w", err)
	}
	if err := s.store.UpdateTournamentStatusTx(ctx, tx, tournamentID, bracket.TournamentStarted); err != nil {
		return nil, fmt.Errorf("failed to update tournament status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	slog.Info("draw generated", "tournament_id", tournamentID, "format", tournament.Format, "teams", len(teams), "matches", len(matches))
	s.notifier.Publish(tournamentID, EventDrawGenerated, draw.Rounds(matches))

	return matches, nil
}

// GetDraw returns the stored matches grouped by round.
func (s *DrawService) GetDraw(ctx context.Context, tournamentID uuid.UUID) ([]draw.Round, error) {
	if _, err := s.store.GetTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	matches, err := s.store.GetMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return draw.Rounds(matches), nil
}

// GetStandings returns the group tables of a group stage tournament.
func (s *DrawService) GetStandings(ctx context.Context, tournamentID uuid.UUID) (map[string][]draw.Standing, error) {
	tournament, err := s.store.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Format != bracket.GroupStage {
		return nil, fmt.Errorf("%w: standings exist only for group stage tournaments", ErrInvalidInput)
	}

	matches, err := s.store.GetMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	return map[string][]draw.Standing{
		bracket.GroupA: draw.Standings(matches, bracket.GroupA),
		bracket.GroupB: draw.Standings(matches, bracket.GroupB),
	}, nil
}
