package scoring

import (
	"sort"

	"podium/repository"
)

type StandingsEntry struct {
	UserId string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// ComputeStandings folds per-race score rows into season totals per user.
// Ordered by points descending; equal totals are ordered by ascending user
// id so the leaderboard is deterministic.
func ComputeStandings(scores []*repository.Score) []StandingsEntry {
	totals := make(map[string]*StandingsEntry)
	for _, score := range scores {
		entry, ok := totals[score.UserId]
		if !ok {
			name := "Player"
			if score.User != nil {
				name = score.User.Name()
			}
			entry = &StandingsEntry{UserId: score.UserId, Name: name}
			totals[score.UserId] = entry
		}
		entry.Points += score.Points
	}

	standings := make([]StandingsEntry, 0, len(totals))
	for _, entry := range totals {
		standings = append(standings, *entry)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].UserId < standings[j].UserId
	})
	return standings
}
