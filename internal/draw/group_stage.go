package draw

import (
	"math/rand/v2"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/utils"
	"github.com/google/uuid"
)

// GroupStageGenerator splits the teams into groups A and B after a shuffle,
// plays every pair inside a group in round 1 and leaves empty semifinal and
// final matches for the knockout phase.
type GroupStageGenerator struct {
	rng *rand.Rand
}

func NewGroupStageGenerator(rng *rand.Rand) GroupStageGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return GroupStageGenerator{rng: rng}
}

func (GroupStageGenerator) Format() bracket.Format {
	return bracket.GroupStage
}

func (g GroupStageGenerator) Generate(tournamentID uuid.UUID, teams []bracket.Team) ([]bracket.Match, error) {
	if err := checkTeams(teams); err != nil {
		return nil, err
	}

	groupA, groupB := g.Partition(teams)

	var matches []bracket.Match
	position := 0
	for _, group := range []struct {
		label string
		teams []bracket.Team
	}{{bracket.GroupA, groupA}, {bracket.GroupB, groupB}} {
		for i := 0; i < len(group.teams); i++ {
			for j := i + 1; j < len(group.teams); j++ {
				position++
				m := newMatch(tournamentID, bracket.GroupStage, 1, position)
				m.Group = utils.Ptr(group.label)
				m.Team1ID = utils.Ptr(group.teams[i].ID)
				m.Team2ID = utils.Ptr(group.teams[j].ID)
				matches = append(matches, m)
			}
		}
	}

	sf1 := newMatch(tournamentID, bracket.GroupStage, 2, 1)
	sf1.Group = utils.Ptr(bracket.GroupSemifinal1)
	sf2 := newMatch(tournamentID, bracket.GroupStage, 2, 2)
	sf2.Group = utils.Ptr(bracket.GroupSemifinal2)
	final := newMatch(tournamentID, bracket.GroupStage, 3, 1)
	final.Group = utils.Ptr(bracket.GroupFinal)

	return append(matches, sf1, sf2, final), nil
}

// Partition shuffles a copy of teams (Fisher-Yates) and cuts it in two.
// Group A gets the extra team when the count is odd.
func (g GroupStageGenerator) Partition(teams []bracket.Team) (a, b []bracket.Team) {
	shuffled := make([]bracket.Team, len(teams))
	copy(shuffled, teams)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := g.rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	half := (len(shuffled) + 1) / 2
	return shuffled[:half], shuffled[half:]
}
