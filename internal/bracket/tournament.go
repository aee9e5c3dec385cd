package bracket

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TournamentStatus string

const (
	TournamentDraft     TournamentStatus = "draft"
	TournamentStarted   TournamentStatus = "started"
	TournamentCompleted TournamentStatus = "completed"
)

type Format string

const (
	SingleElimination Format = "single_elimination"
	RoundRobin        Format = "round_robin"
	GroupStage        Format = "group_stage"
)

var ErrInvalidFormat = errors.New("invalid tournament format")

// ParseFormat accepts only the three known format names.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case SingleElimination, RoundRobin, GroupStage:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

type Tournament struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	OwnerID   uuid.UUID        `db:"owner_id" json:"owner_id"`
	Name      string           `db:"name" json:"name"`
	Status    TournamentStatus `db:"status" json:"status"`
	Format    Format           `db:"format" json:"format"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
