package draw

import (
	"sort"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
)

type Round struct {
	Number  int             `json:"round"`
	Matches []bracket.Match `json:"matches"`
}

// ByRound groups matches by round, each round ordered by position.
func ByRound(matches []bracket.Match) map[int][]bracket.Match {
	rounds := make(map[int][]bracket.Match)
	for _, m := range matches {
		rounds[m.Round] = append(rounds[m.Round], m)
	}
	for r := range rounds {
		sort.SliceStable(rounds[r], func(i, j int) bool {
			return rounds[r][i].Position < rounds[r][j].Position
		})
	}
	return rounds
}

// Rounds is ByRound flattened into round order.
func Rounds(matches []bracket.Match) []Round {
	byRound := ByRound(matches)

	nums := make([]int, 0, len(byRound))
	for r := range byRound {
		nums = append(nums, r)
	}
	sort.Ints(nums)

	rounds := make([]Round, 0, len(nums))
	for _, r := range nums {
		rounds = append(rounds, Round{Number: r, Matches: byRound[r]})
	}
	return rounds
}
