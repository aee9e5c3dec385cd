// Package draw builds the full match set of a tournament from its team list.
package draw

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/google/uuid"
)

const MinTeams = 2

var ErrNotEnoughTeams = errors.New("not enough teams")

type Generator interface {
	Format() bracket.Format
	Generate(tournamentID uuid.UUID, teams []bracket.Team) ([]bracket.Match, error)
}

// NewGenerator picks the generator for a format. rng is only used by the
// group stage; nil means a randomly seeded source.
func NewGenerator(format bracket.Format, rng *rand.Rand) (Generator, error) {
	switch format {
	case bracket.SingleElimination:
		return SingleEliminationGenerator{}, nil
	case bracket.RoundRobin:
		return RoundRobinGenerator{}, nil
	case bracket.GroupStage:
		return NewGroupStageGenerator(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", bracket.ErrInvalidFormat, format)
	}
}

// Generate returns every match of the draw. IDs are assigned here so the
// forward links are valid before anything is written.
func Generate(format bracket.Format, teams []bracket.Team, tournamentID uuid.UUID) ([]bracket.Match, error) {
	g, err := NewGenerator(format, nil)
	if err != nil {
		return nil, err
	}
	return g.Generate(tournamentID, teams)
}

func checkTeams(teams []bracket.Team) error {
	if len(teams) < MinTeams {
		return fmt.Errorf("%w: %d registered, at least %d required", ErrNotEnoughTeams, len(teams), MinTeams)
	}
	return nil
}

func newMatch(tournamentID uuid.UUID, format bracket.Format, round, position int) bracket.Match {
	return bracket.Match{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Format:       format,
		Round:        round,
		Position:     position,
		Status:       bracket.MatchPending,
	}
}
