package bracket

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// SetScore holds the games won by each side in one set.
type SetScore struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// SetScores is stored as a JSON array in a single column.
type SetScores []SetScore

var ErrInvalidScore = errors.New("invalid score")

func (s SetScores) Validate() error {
	for i, set := range s {
		if set.Team1 < 0 || set.Team2 < 0 {
			return fmt.Errorf("%w: set %d has a negative game count", ErrInvalidScore, i+1)
		}
	}
	return nil
}

// SetsWon counts the sets taken by each side. Drawn sets count for nobody.
func (s SetScores) SetsWon() (team1, team2 int) {
	for _, set := range s {
		switch {
		case set.Team1 > set.Team2:
			team1++
		case set.Team2 > set.Team1:
			team2++
		}
	}
	return team1, team2
}

func (s SetScores) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SetScores) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), s)
	case []byte:
		return json.Unmarshal(v, s)
	default:
		return fmt.Errorf("cannot scan %T into SetScores", src)
	}
}
