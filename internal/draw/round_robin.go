package draw

import (
	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/utils"
	"github.com/google/uuid"
)

type RoundRobinGenerator struct{}

func (RoundRobinGenerator) Format() bracket.Format {
	return bracket.RoundRobin
}

func (RoundRobinGenerator) Generate(tournamentID uuid.UUID, teams []bracket.Team) ([]bracket.Match, error) {
	if err := checkTeams(teams); err != nil {
		return nil, err
	}

	var matches []bracket.Match
	for _, p := range circleRounds(len(teams)) {
		m := newMatch(tournamentID, bracket.RoundRobin, p.round, p.position)
		m.Team1ID = utils.Ptr(teams[p.home].ID)
		m.Team2ID = utils.Ptr(teams[p.away].ID)
		matches = append(matches, m)
	}
	return matches, nil
}

// RoundRobinRounds is n-1 for even n and n for odd n.
func RoundRobinRounds(n int) int {
	if n < 2 {
		return 0
	}
	if n%2 != 0 {
		return n
	}
	return n - 1
}

type pairing struct {
	round, position int
	home, away      int
}

// circleRounds schedules n indexes with the circle method: index 0 stays put
// and the others rotate one step per round. With an odd n a bye index is
// added and its pairings are dropped.
func circleRounds(n int) []pairing {
	size := n
	if size%2 != 0 {
		size++
	}
	bye := n

	ring := make([]int, size)
	for i := range ring {
		ring[i] = i
	}

	var pairings []pairing
	for round := 1; round < size; round++ {
		position := 0
		for i := 0; i < size/2; i++ {
			home, away := ring[i], ring[size-1-i]
			if home == bye || away == bye {
				continue
			}
			position++
			pairings = append(pairings, pairing{round: round, position: position, home: home, away: away})
		}

		// Keep ring[0], move the last element to index 1
		last := ring[size-1]
		copy(ring[2:], ring[1:size-1])
		ring[1] = last
	}
	return pairings
}
