package draw

import (
	"sort"

	"github.com/AdamBeresnev/clubdesk/internal/bracket"
	"github.com/google/uuid"
)

type Standing struct {
	TeamID      uuid.UUID `json:"team_id"`
	Played      int       `json:"played"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	SetsFor     int       `json:"sets_for"`
	SetsAgainst int       `json:"sets_against"`
}

func (s Standing) SetDiff() int {
	return s.SetsFor - s.SetsAgainst
}

// Standings ranks the teams of one group by wins, then set difference.
// Ties keep the order in which teams first appear in the group's matches.
func Standings(matches []bracket.Match, group string) []Standing {
	index := make(map[uuid.UUID]int)
	var table []Standing

	entry := func(id *uuid.UUID) *Standing {
		if id == nil {
			return nil
		}
		i, ok := index[*id]
		if !ok {
			i = len(table)
			index[*id] = i
			table = append(table, Standing{TeamID: *id})
		}
		return &table[i]
	}

	for _, m := range matches {
		if m.GroupLabel() != group {
			continue
		}
		entry(m.Team1ID)
		entry(m.Team2ID)
	}

	for _, m := range matches {
		if m.GroupLabel() != group || m.Status != bracket.MatchCompleted || m.WinnerID == nil {
			continue
		}
		t1, t2 := entry(m.Team1ID), entry(m.Team2ID)
		if t1 == nil || t2 == nil {
			continue
		}
		s1, s2 := m.Score.SetsWon()
		t1.Played++
		t2.Played++
		t1.SetsFor += s1
		t1.SetsAgainst += s2
		t2.SetsFor += s2
		t2.SetsAgainst += s1
		if *m.WinnerID == t1.TeamID {
			t1.Wins++
			t2.Losses++
		} else {
			t2.Wins++
			t1.Losses++
		}
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Wins != table[j].Wins {
			return table[i].Wins > table[j].Wins
		}
		return table[i].SetDiff() > table[j].SetDiff()
	})
	return table
}

// GroupComplete reports whether every match of a group has a result.
func GroupComplete(matches []bracket.Match, group string) bool {
	found := false
	for _, m := range matches {
		if m.GroupLabel() != group {
			continue
		}
		found = true
		if m.Status != bracket.MatchCompleted {
			return false
		}
	}
	return found
}
