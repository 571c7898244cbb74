package standings

import (
	"sort"

	"github.com/Adilkhan05/cup-system/models"
)

// RankedTeam is one row of a group table with its 0-based rank. The first
// two ranks of each group qualify for the standard eight-slot knockout.
type RankedTeam struct {
	Rank int          `json:"rank"`
	Team *models.Team `json:"team"`
}

type headToHead struct {
	wins         int
	goalsFor     int
	goalsAgainst int
}

type h2hKey struct {
	team, opponent int
}

// buildHeadToHead scans completed group matches once and records, for every
// ordered team pair, how this team fared against that opponent. Both
// directions are tracked independently.
func buildHeadToHead(matches []*models.Match) map[h2hKey]headToHead {
	table := make(map[h2hKey]headToHead)
	record := func(team, opponent, own, opp int) {
		k := h2hKey{team: team, opponent: opponent}
		h := table[k]
		h.goalsFor += own
		h.goalsAgainst += opp
		if own > opp {
			h.wins++
		}
		table[k] = h
	}
	for _, m := range matches {
		if m.Phase != models.PhaseGroups || m.Status != models.MatchStatusCompleted {
			continue
		}
		if m.Score1 == nil || m.Score2 == nil {
			continue
		}
		record(m.Team1ID, m.Team2ID, *m.Score1, *m.Score2)
		record(m.Team2ID, m.Team1ID, *m.Score2, *m.Score1)
	}
	return table
}

// RankGroup orders the teams of one group. Comparators apply in order until
// one differs: points, goal difference, head-to-head wins between the two
// teams, head-to-head goal difference between the two teams, total goals
// scored. Teams equal on all five keep their input order.
func RankGroup(teams []*models.Team, matches []*models.Match) []RankedTeam {
	h2h := buildHeadToHead(matches)

	ordered := make([]*models.Team, len(teams))
	copy(ordered, teams)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if d1, d2 := a.GoalsFor-a.GoalsAgainst, b.GoalsFor-b.GoalsAgainst; d1 != d2 {
			return d1 > d2
		}
		ab := h2h[h2hKey{team: a.ID, opponent: b.ID}]
		ba := h2h[h2hKey{team: b.ID, opponent: a.ID}]
		if ab.wins != ba.wins {
			return ab.wins > ba.wins
		}
		if d1, d2 := ab.goalsFor-ab.goalsAgainst, ba.goalsFor-ba.goalsAgainst; d1 != d2 {
			return d1 > d2
		}
		return a.GoalsFor > b.GoalsFor
	})

	ranked := make([]RankedTeam, len(ordered))
	for i, t := range ordered {
		ranked[i] = RankedTeam{Rank: i, Team: t}
	}
	return ranked
}

// RankAllGroups splits teams by group label and ranks each group. Labels
// restricts the output to the configured label set; teams carrying an
// unknown label are skipped.
func RankAllGroups(labels []string, teams []*models.Team, matches []*models.Match) map[string][]RankedTeam {
	byGroup := make(map[string][]*models.Team, len(labels))
	for _, label := range labels {
		byGroup[label] = nil
	}
	for _, t := range teams {
		if _, ok := byGroup[t.GroupLabel]; ok {
			byGroup[t.GroupLabel] = append(byGroup[t.GroupLabel], t)
		}
	}

	ranked := make(map[string][]RankedTeam, len(labels))
	for label, groupTeams := range byGroup {
		ranked[label] = RankGroup(groupTeams, matches)
	}
	return ranked
}
