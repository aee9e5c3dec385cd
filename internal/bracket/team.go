package bracket

import "github.com/google/uuid"

// Team is one or two players entered under a single name.
type Team struct {
	ID           uuid.UUID `db:"id" json:"id"`
	TournamentID uuid.UUID `db:"tournament_id" json:"tournament_id"`
	Name         string    `db:"name" json:"name"`
	Player1      *string   `db:"player_1" json:"player_1,omitempty"`
	Player2      *string   `db:"player_2" json:"player_2,omitempty"`
	Seed         int       `db:"seed" json:"seed"`
}
