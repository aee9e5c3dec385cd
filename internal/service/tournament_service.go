package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/store"
	users "github.com/AdamBeresnev/clubdesk/internal/user"
	"github.com/AdamBeresnev/clubdesk/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

const maxNameLength = 50

type TournamentService struct {
	db    *sqlx.DB
	store *store.TournamentStore
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore) *TournamentService {
	return &TournamentService{db: db, store: store}
}

type TeamInput struct {
	Name    string `json:"name"`
	Player1 string `json:"player_1"`
	Player2 string `json:"player_2"`
}

type TournamentData struct {
	Tournament  *bracket.Tournament `json:"tournament"`
	Teams       []bracket.Team      `json:"teams"`
	Matches     []bracket.Match     `json:"matches"`
	NextMatchID *uuid.UUID          `json:"next_match_id,omitempty"`
}

func (s *TournamentService) GetTournament(ctx context.Context, id uuid.UUID) (*bracket.Tournament, error) {
	return s.store.GetTournament(ctx, id)
}

func (s *TournamentService) GetTournamentData(ctx context.Context, id uuid.UUID) (*TournamentData, error) {
	var data TournamentData

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.store.GetTournament(gctx, id)
		data.Tournament = t
		return err
	})
	g.Go(func() error {
		teams, err := s.store.GetTeams(gctx, id)
		data.Teams = teams
		return err
	})
	g.Go(func() error {
		matches, err := s.store.GetMatches(gctx, id)
		data.Matches = matches
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, m := range data.Matches {
		if m.Status != bracket.MatchCompleted && m.Team1ID != nil && m.Team2ID != nil {
			id := m.ID
			data.NextMatchID = &id
			break
		}
	}

	return &data, nil
}

func (s *TournamentService) GetTournamentsForUser(ctx context.Context) ([]bracket.Tournament, error) {
	userID, ok := users.IDFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("user ID not found in the context")
	}
	return s.store.GetTournamentsByOwner(ctx, userID)
}

// CreateTournament stores a draft tournament and its teams in list order.
// The draw is generated separately.
func (s *TournamentService) CreateTournament(ctx context.Context, name string, format bracket.Format, teamInputs []TeamInput) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, fmt.Errorf("%w: tournament name is required", ErrInvalidInput)
	}
	if _, err := bracket.ParseFormat(string(format)); err != nil {
		return uuid.Nil, err
	}

	ownerID, ok := users.IDFromContext(ctx)
	if !ok {
		ownerID = users.GuestID
	}

	tournament := bracket.Tournament{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    name,
		Status:  bracket.TournamentDraft,
		Format:  format,
	}

	teams := make([]bracket.Team, 0, len(teamInputs))
	for i, input := range teamInputs {
		teamName := strings.TrimSpace(input.Name)
		if teamName == "" {
			return uuid.Nil, fmt.Errorf("%w: team %d has no name", ErrInvalidInput, i+1)
		}
		if len(teamName) > maxNameLength {
			return uuid.Nil, fmt.Errorf("%w: team name '%s' exceeds %d characters", ErrInvalidInput, teamName, maxNameLength)
		}

		teams = append(teams, bracket.Team{
			ID:           uuid.New(),
			TournamentID: tournament.ID,
			Name:         teamName,
			Player1:      utils.StringOrNil(input.Player1),
			Player2:      utils.StringOrNil(input.Player2),
			Seed:         i + 1,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if err := s.store.CreateTournament(ctx, tx, &tournament); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	if err := s.store.CreateTeams(ctx, tx, teams); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create teams: %w", err)
	}

	return tournament.ID, tx.Commit()
}
