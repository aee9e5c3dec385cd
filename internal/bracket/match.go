package bracket

import (
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/clubdesk/internal/utils"
	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchCompleted MatchStatus = "completed"
)

// Group labels used by the group stage format.
const (
	GroupA          = "A"
	GroupB          = "B"
	GroupSemifinal1 = "SF1"
	GroupSemifinal2 = "SF2"
	GroupFinal      = "F"
)

var ErrInvalidMatch = errors.New("invalid match")

// Match is one cell of a draw. Format is the variant tag: Group is only
// meaningful for the group stage and NextMatchID only for single elimination.
type Match struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`
	Format       Format    `db:"format" json:"format"`

	// Both 1-based
	Round    int `db:"round" json:"round"`
	Position int `db:"position" json:"position"`

	Team1ID  *uuid.UUID  `db:"team_1_id" json:"team1_id"`
	Team2ID  *uuid.UUID  `db:"team_2_id" json:"team2_id"`
	WinnerID *uuid.UUID  `db:"winner_id" json:"winner_id"`
	Status   MatchStatus `db:"status" json:"status"`

	Group       *string    `db:"group_label" json:"group,omitempty"`
	NextMatchID *uuid.UUID `db:"next_match_id" json:"next_match_id,omitempty"`

	Score       SetScores  `db:"score" json:"score,omitempty"`
	CourtID     *uuid.UUID `db:"court_id" json:"court_id,omitempty"`
	ScheduledAt *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"-"`
}

func (m *Match) HasTeam(teamID uuid.UUID) bool {
	return utils.Is(m.Team1ID, teamID) || utils.Is(m.Team2ID, teamID)
}

// NextSlot is the slot this match's winner takes in the following round:
// 1 for odd positions, 2 for even ones.
func (m *Match) NextSlot() int {
	if m.Position%2 != 0 {
		return 1
	}
	return 2
}

// NextPosition is the position of the match fed by this one in the following round.
func (m *Match) NextPosition() int {
	return (m.Position + 1) / 2
}

// Seat places a team into slot 1 or 2.
func (m *Match) Seat(slot int, teamID uuid.UUID) {
	id := teamID
	if slot == 1 {
		m.Team1ID = &id
	} else {
		m.Team2ID = &id
	}
}

func (m *Match) GroupLabel() string {
	if m.Group == nil {
		return ""
	}
	return *m.Group
}

// Validate checks the shape rules of the match variant and the result invariant.
func (m *Match) Validate() error {
	if m.TournamentID == uuid.Nil {
		return fmt.Errorf("%w: missing tournament", ErrInvalidMatch)
	}
	if m.Round < 1 || m.Position < 1 {
		return fmt.Errorf("%w: round %d position %d", ErrInvalidMatch, m.Round, m.Position)
	}

	switch m.Format {
	case SingleElimination:
		if m.Group != nil {
			return fmt.Errorf("%w: group label on single elimination match", ErrInvalidMatch)
		}
	case RoundRobin:
		if m.Group != nil || m.NextMatchID != nil {
			return fmt.Errorf("%w: round robin matches carry no group or forward link", ErrInvalidMatch)
		}
	case GroupStage:
		if m.Group == nil {
			return fmt.Errorf("%w: group stage match without group label", ErrInvalidMatch)
		}
		if m.NextMatchID != nil {
			return fmt.Errorf("%w: group stage matches carry no forward link", ErrInvalidMatch)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, m.Format)
	}

	switch m.Status {
	case MatchPending:
		if m.WinnerID != nil {
			return fmt.Errorf("%w: pending match has a winner", ErrInvalidMatch)
		}
	case MatchCompleted:
		if m.WinnerID == nil || !m.HasTeam(*m.WinnerID) {
			return fmt.Errorf("%w: completed match winner must be one of its teams", ErrInvalidMatch)
		}
		if m.Team1ID != nil && m.Team2ID != nil && *m.Team1ID == *m.Team2ID {
			return fmt.Errorf("%w: team plays itself", ErrInvalidMatch)
		}
	default:
		return fmt.Errorf("%w: status %q", ErrInvalidMatch, m.Status)
	}

	return nil
}
