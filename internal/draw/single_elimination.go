package draw

import (
	"math/bits"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/utils"
	"github.com/google/uuid"
)

type SingleEliminationGenerator struct{}

func (SingleEliminationGenerator) Format() bracket.Format {
	return bracket.SingleElimination
}

// NumRounds is ceil(log2(n)).
func NumRounds(n int) int {
	if n < 2 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Generate lays out a bracket of size 2^rounds. Only n - size/2 matches are
// played in round 1; the remaining teams have byes and are seated directly in
// round 2, so the draw always has n-1 matches.
func (SingleEliminationGenerator) Generate(tournamentID uuid.UUID, teams []bracket.Team) ([]bracket.Match, error) {
	if err := checkTeams(teams); err != nil {
		return nil, err
	}

	n := len(teams)
	totalRounds := NumRounds(n)
	size := 1 << totalRounds
	firstRoundMatches := n - size/2

	rounds := make([][]bracket.Match, totalRounds+1)

	// Built from the final backwards so every match knows its parent
	for r := totalRounds; r >= 1; r-- {
		count := size >> r
		if r == 1 {
			count = firstRoundMatches
		}

		rounds[r] = make([]bracket.Match, 0, count)
		for i := 0; i < count; i++ {
			m := newMatch(tournamentID, bracket.SingleElimination, r, i+1)
			if r < totalRounds {
				m.NextMatchID = utils.Ptr(rounds[r+1][m.NextPosition()-1].ID)
			}
			rounds[r] = append(rounds[r], m)
		}
	}

	for i := range rounds[1] {
		rounds[1][i].Team1ID = utils.Ptr(teams[2*i].ID)
		rounds[1][i].Team2ID = utils.Ptr(teams[2*i+1].ID)
	}

	// Round 2 slots 1..firstRoundMatches wait for round 1 winners, the rest go to byes
	if totalRounds > 1 {
		for slot, t := firstRoundMatches+1, 2*firstRoundMatches; t < n; slot, t = slot+1, t+1 {
			m := &rounds[2][(slot+1)/2-1]
			if slot%2 != 0 {
				m.Seat(1, teams[t].ID)
			} else {
				m.Seat(2, teams[t].ID)
			}
		}
	}

	matches := make([]bracket.Match, 0, n-1)
	for r := 1; r <= totalRounds; r++ {
		matches = append(matches, rounds[r]...)
	}
	return matches, nil
}
