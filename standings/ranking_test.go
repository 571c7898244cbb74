package standings

import (
	"testing"

	"github.com/Adilkhan05/cup-system/models"
)

func teamWithStats(id int, group string, stats models.TeamStats) *models.Team {
	return &models.Team{ID: id, Name: "team", GroupLabel: group, TeamStats: stats}
}

func rankOrder(ranked []RankedTeam) []int {
	ids := make([]int, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Team.ID
	}
	return ids
}

func equalOrder(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankGroupByPoints(t *testing.T) {
	teams := []*models.Team{
		teamWithStats(1, "A", models.TeamStats{Points: 3}),
		teamWithStats(2, "A", models.TeamStats{Points: 9}),
		teamWithStats(3, "A", models.TeamStats{Points: 6}),
	}

	ranked := RankGroup(teams, nil)
	if got, want := rankOrder(ranked), []int{2, 3, 1}; !equalOrder(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	for i, r := range ranked {
		if r.Rank != i {
			t.Errorf("ranked[%d].Rank = %d, want %d", i, r.Rank, i)
		}
	}
}

func TestRankGroupGoalDifferenceBreaksPoints(t *testing.T) {
	teams := []*models.Team{
		teamWithStats(1, "A", models.TeamStats{Points: 6, GoalsFor: 5, GoalsAgainst: 4}),
		teamWithStats(2, "A", models.TeamStats{Points: 6, GoalsFor: 8, GoalsAgainst: 2}),
	}

	ranked := RankGroup(teams, nil)
	if got, want := rankOrder(ranked), []int{2, 1}; !equalOrder(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRankGroupHeadToHeadWins(t *testing.T) {
	// Equal points, equal goal difference, but team 2 beat team 1 directly.
	teams := []*models.Team{
		teamWithStats(1, "A", models.TeamStats{Points: 4, GoalsFor: 3, GoalsAgainst: 3}),
		teamWithStats(2, "A", models.TeamStats{Points: 4, GoalsFor: 3, GoalsAgainst: 3}),
	}
	matches := []*models.Match{
		completedGroupMatch(2, 1, 1, 0),
	}

	ranked := RankGroup(teams, matches)
	if got, want := rankOrder(ranked), []int{2, 1}; !equalOrder(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRankGroupHeadToHeadGoalDiff(t *testing.T) {
	// One win each head-to-head; team 1 has the better aggregate in those
	// two matches (3-1 vs 1-3).
	teams := []*models.Team{
		teamWithStats(1, "A", models.TeamStats{Points: 6, GoalsFor: 6, GoalsAgainst: 6}),
		teamWithStats(2, "A", models.TeamStats{Points: 6, GoalsFor: 6, GoalsAgainst: 6}),
	}
	matches := []*models.Match{
		completedGroupMatch(1, 2, 3, 0),
		completedGroupMatch(2, 1, 1, 0),
	}

	ranked := RankGroup(teams, matches)
	if got, want := rankOrder(ranked), []int{1, 2}; !equalOrder(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRankGroupGoalsScoredFallback(t *testing.T) {
	// No head-to-head data at all; total goals scored decides.
	teams := []*models.Team{
		teamWithStats(1, "A", models.TeamStats{Points: 4, GoalsFor: 2, GoalsAgainst: 2}),
		teamWithStats(2, "A", models.TeamStats{Points: 4, GoalsFor: 5, GoalsAgainst: 5}),
	}

	ranked := RankGroup(teams, nil)
	if got, want := rankOrder(ranked), []int{2, 1}; !equalOrder(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRankGroupStableForFullTies(t *testing.T) {
	teams := []*models.Team{
		teamWithStats(7, "A", models.TeamStats{Points: 3, GoalsFor: 1, GoalsAgainst: 1}),
		teamWithStats(4, "A", models.TeamStats{Points: 3, GoalsFor: 1, GoalsAgainst: 1}),
		teamWithStats(9, "A", models.TeamStats{Points: 3, GoalsFor: 1, GoalsAgainst: 1}),
	}

	ranked := RankGroup(teams, nil)
	if got, want := rankOrder(ranked), []int{7, 4, 9}; !equalOrder(got, want) {
		t.Errorf("tied teams should keep insertion order: got %v, want %v", got, want)
	}
}

// The comparator must produce a total order: whenever A is ranked above B
// and B above C with fixed match data, A must also rank above C.
func TestRankGroupTransitivity(t *testing.T) {
	teams := []*models.Team{
		teamWithStats(1, "A", models.TeamStats{Points: 6, GoalsFor: 4, GoalsAgainst: 2}),
		teamWithStats(2, "A", models.TeamStats{Points: 6, GoalsFor: 4, GoalsAgainst: 2}),
		teamWithStats(3, "A", models.TeamStats{Points: 6, GoalsFor: 4, GoalsAgainst: 2}),
	}
	matches := []*models.Match{
		completedGroupMatch(1, 2, 2, 1),
		completedGroupMatch(2, 3, 2, 1),
		completedGroupMatch(1, 3, 2, 1),
	}

	ranked := RankGroup(teams, matches)
	position := make(map[int]int, len(ranked))
	for _, r := range ranked {
		position[r.Team.ID] = r.Rank
	}

	if !(position[1] < position[2] && position[2] < position[3]) {
		t.Errorf("expected 1 above 2 above 3, got positions %v", position)
	}
}

func TestRankAllGroups(t *testing.T) {
	teams := []*models.Team{
		teamWithStats(1, "A", models.TeamStats{Points: 6}),
		teamWithStats(2, "A", models.TeamStats{Points: 3}),
		teamWithStats(3, "B", models.TeamStats{Points: 1}),
		teamWithStats(4, "Z", models.TeamStats{Points: 9}), // label not configured
	}

	ranked := RankAllGroups([]string{"A", "B", "C", "D"}, teams, nil)

	if len(ranked) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(ranked))
	}
	if got, want := rankOrder(ranked["A"]), []int{1, 2}; !equalOrder(got, want) {
		t.Errorf("group A order = %v, want %v", got, want)
	}
	if len(ranked["B"]) != 1 || len(ranked["C"]) != 0 || len(ranked["D"]) != 0 {
		t.Errorf("unexpected group sizes: B=%d C=%d D=%d", len(ranked["B"]), len(ranked["C"]), len(ranked["D"]))
	}
	for _, rows := range ranked {
		for _, r := range rows {
			if r.Team.ID == 4 {
				t.Error("team with unconfigured label leaked into rankings")
			}
		}
	}
}
