package brackets

import (
	"errors"
	"testing"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/standings"
)

var groupLabels = []string{"A", "B", "C", "D"}

func rankedGroups() map[string][]standings.RankedTeam {
	ranked := make(map[string][]standings.RankedTeam, 4)
	id := 1
	for _, label := range groupLabels {
		group := make([]standings.RankedTeam, 2)
		for i := range group {
			group[i] = standings.RankedTeam{
				Rank: i,
				Team: &models.Team{ID: id, GroupLabel: label},
			}
			id++
		}
		ranked[label] = group
	}
	return ranked
}

func TestScissorsPairingsPattern(t *testing.T) {
	ranked := rankedGroups()
	pairings, err := ScissorsPairings(groupLabels, ranked)
	if err != nil {
		t.Fatalf("ScissorsPairings: %v", err)
	}
	if len(pairings) != 4 {
		t.Fatalf("expected 4 pairings, got %d", len(pairings))
	}

	first := func(label string) int { return ranked[label][0].Team.ID }
	second := func(label string) int { return ranked[label][1].Team.ID }

	want := []struct{ team1, team2 int }{
		{first("A"), second("B")},
		{first("C"), second("D")},
		{first("B"), second("A")},
		{first("D"), second("C")},
	}
	for i, p := range pairings {
		if p.BracketPosition != i+1 {
			t.Errorf("pairing %d: bracket position = %d, want %d", i, p.BracketPosition, i+1)
		}
		if p.Team1.ID != want[i].team1 || p.Team2.ID != want[i].team2 {
			t.Errorf("QF%d = (%d vs %d), want (%d vs %d)",
				i+1, p.Team1.ID, p.Team2.ID, want[i].team1, want[i].team2)
		}
	}
}

func TestScissorsPairingsNeverPairSameGroup(t *testing.T) {
	pairings, err := ScissorsPairings(groupLabels, rankedGroups())
	if err != nil {
		t.Fatalf("ScissorsPairings: %v", err)
	}
	for _, p := range pairings {
		if p.Team1.GroupLabel == p.Team2.GroupLabel {
			t.Errorf("QF%d pairs two teams from group %q", p.BracketPosition, p.Team1.GroupLabel)
		}
	}
}

func TestScissorsPairingsUnderfilledGroup(t *testing.T) {
	ranked := rankedGroups()
	ranked["C"] = ranked["C"][:1]

	_, err := ScissorsPairings(groupLabels, ranked)
	var underfilled *GroupUnderfilledError
	if !errors.As(err, &underfilled) {
		t.Fatalf("expected GroupUnderfilledError, got %v", err)
	}
	if underfilled.Group != "C" {
		t.Errorf("error names group %q, want C", underfilled.Group)
	}
	if underfilled.Teams != 1 {
		t.Errorf("error reports %d teams, want 1", underfilled.Teams)
	}
}

func TestScissorsPairingsWrongGroupCount(t *testing.T) {
	_, err := ScissorsPairings([]string{"A", "B"}, rankedGroups())
	if !errors.Is(err, ErrScissorsGroupCount) {
		t.Fatalf("expected ErrScissorsGroupCount, got %v", err)
	}
}

func TestSlotsForPairings(t *testing.T) {
	pairings, err := ScissorsPairings(groupLabels, rankedGroups())
	if err != nil {
		t.Fatalf("ScissorsPairings: %v", err)
	}

	slots := SlotsForPairings(pairings)
	if len(slots) != models.BracketSize {
		t.Fatalf("expected %d slots, got %d", models.BracketSize, len(slots))
	}
	for i, p := range pairings {
		if got := *slots[i*2].TeamID; got != p.Team1.ID {
			t.Errorf("slot %d team = %d, want %d", slots[i*2].Position, got, p.Team1.ID)
		}
		if got := *slots[i*2+1].TeamID; got != p.Team2.ID {
			t.Errorf("slot %d team = %d, want %d", slots[i*2+1].Position, got, p.Team2.ID)
		}
	}
}

func TestMergeSlots(t *testing.T) {
	ten, twenty := 10, 20
	current := []models.BracketSlot{
		{Position: 1, TeamID: &ten},
		{Position: 2, TeamID: nil},
	}
	updates := []models.BracketSlot{
		{Position: 2, TeamID: &twenty},
		{Position: 1, TeamID: nil}, // explicit clear
	}

	merged := MergeSlots(current, updates)
	if len(merged) != models.BracketSize {
		t.Fatalf("expected padded grid of %d, got %d", models.BracketSize, len(merged))
	}
	if merged[0].TeamID != nil {
		t.Errorf("slot 1 should be cleared, has team %d", *merged[0].TeamID)
	}
	if merged[1].TeamID == nil || *merged[1].TeamID != 20 {
		t.Errorf("slot 2 = %v, want 20", merged[1].TeamID)
	}
	for i := 2; i < models.BracketSize; i++ {
		if merged[i].TeamID != nil {
			t.Errorf("untouched slot %d should stay empty", merged[i].Position)
		}
	}
}

func TestValidatePairsRejectsSameTeamTwice(t *testing.T) {
	seven := 7
	grid := MergeSlots(nil, []models.BracketSlot{
		{Position: 1, TeamID: &seven},
		{Position: 2, TeamID: &seven},
	})

	err := ValidatePairs(grid)
	var conflict *SlotPairConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SlotPairConflictError, got %v", err)
	}
	if conflict.BracketPosition != 1 {
		t.Errorf("conflict at pair %d, want 1", conflict.BracketPosition)
	}
	if conflict.TeamID != 7 {
		t.Errorf("conflict names team %d, want 7", conflict.TeamID)
	}
}

func TestValidatePairsAcceptsValidGrids(t *testing.T) {
	a, b := 1, 2

	// A half-filled pair is fine, and so is the same team sitting in two
	// different pairs; only both slots of one pair may not coincide.
	grids := map[string][]models.BracketSlot{
		"empty": MergeSlots(nil, nil),
		"half-filled pair": MergeSlots(nil, []models.BracketSlot{
			{Position: 3, TeamID: &a},
		}),
		"same team across pairs": MergeSlots(nil, []models.BracketSlot{
			{Position: 1, TeamID: &a},
			{Position: 2, TeamID: &b},
			{Position: 3, TeamID: &a},
		}),
	}

	for name, grid := range grids {
		if err := ValidatePairs(grid); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
}

func TestCompletedPairs(t *testing.T) {
	a, b, c := 1, 2, 3
	slots := []models.BracketSlot{
		{Position: 1, TeamID: &a},
		{Position: 2, TeamID: &b},
		{Position: 3, TeamID: &c},
		{Position: 4, TeamID: nil}, // half-filled pair
		{Position: 5, TeamID: nil},
		{Position: 6, TeamID: nil},
		{Position: 7, TeamID: &a},
		{Position: 8, TeamID: &b},
	}

	got := CompletedPairs(slots, map[int]bool{})
	if len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Errorf("CompletedPairs = %v, want [1 4]", got)
	}

	// Once the matches exist, the same grid produces nothing.
	got = CompletedPairs(slots, map[int]bool{1: true, 4: true})
	if len(got) != 0 {
		t.Errorf("re-save created positions %v, want none", got)
	}
}
