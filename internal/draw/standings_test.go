package draw

import (
	"testing"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/AdamBeresnev/clubdesk/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupMatch(group string, t1, t2 uuid.UUID, winner *uuid.UUID, score bracket.SetScores) bracket.Match {
	m := bracket.Match{
		ID:      uuid.New(),
		Format:  bracket.GroupStage,
		Round:   1,
		Group:   utils.Ptr(group),
		Team1ID: utils.Ptr(t1),
		Team2ID: utils.Ptr(t2),
		Status:  bracket.MatchPending,
		Score:   score,
	}
	if winner != nil {
		m.Status = bracket.MatchCompleted
		m.WinnerID = winner
	}
	return m
}

func TestStandings(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	other := uuid.New()

	matches := []bracket.Match{
		groupMatch(bracket.GroupA, a, b, &b, bracket.SetScores{{Team1: 4, Team2: 6}, {Team1: 3, Team2: 6}}),
		groupMatch(bracket.GroupA, a, c, &a, bracket.SetScores{{Team1: 6, Team2: 1}, {Team1: 6, Team2: 0}}),
		groupMatch(bracket.GroupA, b, c, nil, nil),
		groupMatch(bracket.GroupB, other, uuid.New(), &other, nil),
	}

	table := Standings(matches, bracket.GroupA)
	require.Len(t, table, 3)

	// a and b both have one win, b has the better set difference
	assert.Equal(t, b, table[0].TeamID)
	assert.Equal(t, 1, table[0].Wins)
	assert.Equal(t, 1, table[0].Played)
	assert.Equal(t, 2, table[0].SetDiff())

	assert.Equal(t, a, table[1].TeamID)
	assert.Equal(t, 1, table[1].Wins)
	assert.Equal(t, 2, table[1].Played)
	assert.Equal(t, 0, table[1].SetDiff())

	assert.Equal(t, c, table[2].TeamID)
	assert.Equal(t, 1, table[2].Losses)
	assert.Equal(t, -2, table[2].SetDiff())

	assert.False(t, GroupComplete(matches, bracket.GroupA))
	assert.True(t, GroupComplete(matches, bracket.GroupB))
	assert.False(t, GroupComplete(matches, bracket.GroupSemifinal1))
}

func TestRounds(t *testing.T) {
	matches, err := Generate(bracket.SingleElimination, makeTeams(8), uuid.New())
	require.NoError(t, err)

	// Reverse so the view has to sort
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}

	rounds := Rounds(matches)
	require.Len(t, rounds, 3)
	for i, r := range rounds {
		assert.Equal(t, i+1, r.Number)
		for p, m := range r.Matches {
			assert.Equal(t, p+1, m.Position)
		}
	}
}
