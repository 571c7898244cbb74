package brackets

import (
	"errors"
	"fmt"

	"github.com/Adilkhan05/cup-system/models"
	"github.com/Adilkhan05/cup-system/standings"
)

var ErrScissorsGroupCount = errors.New("scissors seeding requires exactly four groups")

// GroupUnderfilledError reports which group broke the seeding precondition:
// every group must provide a first and a second place.
type GroupUnderfilledError struct {
	Group string
	Teams int
}

func (e *GroupUnderfilledError) Error() string {
	return fmt.Sprintf("group %q has %d ranked team(s), need at least 2 to seed the bracket", e.Group, e.Teams)
}

// SlotPairConflictError reports an adjacent slot pair holding the same team
// in both positions; such a grid can never produce a valid quarterfinal.
type SlotPairConflictError struct {
	BracketPosition int
	TeamID          int
}

func (e *SlotPairConflictError) Error() string {
	return fmt.Sprintf("bracket pair %d has team %d in both slots", e.BracketPosition, e.TeamID)
}

// Pairing is one quarterfinal produced by seeding. Team1 occupies bracket
// slot 2k-1 and Team2 slot 2k for bracket position k.
type Pairing struct {
	BracketPosition int          `json:"bracket_position"`
	Team1           *models.Team `json:"team1"`
	Team2           *models.Team `json:"team2"`
}

// ScissorsPairings crosses the four ranked groups so that a group's top two
// teams cannot meet again before the final: QF1 = 1st G1 vs 2nd G2,
// QF2 = 1st G3 vs 2nd G4, QF3 = 1st G2 vs 2nd G1, QF4 = 1st G4 vs 2nd G3.
// labels gives the configured group order; ranked is the per-group ranker
// output. Fails without producing anything when a group is underfilled.
func ScissorsPairings(labels []string, ranked map[string][]standings.RankedTeam) ([]Pairing, error) {
	if len(labels) != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrScissorsGroupCount, len(labels))
	}
	for _, label := range labels {
		if n := len(ranked[label]); n < 2 {
			return nil, &GroupUnderfilledError{Group: label, Teams: n}
		}
	}

	first := func(label string) *models.Team { return ranked[label][0].Team }
	second := func(label string) *models.Team { return ranked[label][1].Team }

	g1, g2, g3, g4 := labels[0], labels[1], labels[2], labels[3]
	return []Pairing{
		{BracketPosition: 1, Team1: first(g1), Team2: second(g2)},
		{BracketPosition: 2, Team1: first(g3), Team2: second(g4)},
		{BracketPosition: 3, Team1: first(g2), Team2: second(g1)},
		{BracketPosition: 4, Team1: first(g4), Team2: second(g3)},
	}, nil
}

// SlotsForPairings lays the quarterfinal pairings out on the seeding grid.
func SlotsForPairings(pairings []Pairing) []models.BracketSlot {
	slots := make([]models.BracketSlot, 0, len(pairings)*2)
	for _, p := range pairings {
		t1, t2 := p.Team1.ID, p.Team2.ID
		slots = append(slots,
			models.BracketSlot{Position: p.BracketPosition*2 - 1, TeamID: &t1},
			models.BracketSlot{Position: p.BracketPosition * 2, TeamID: &t2},
		)
	}
	return slots
}

// MergeSlots upserts a sparse update set into the current grid by position
// and returns the full grid, padded to models.BracketSize.
func MergeSlots(current, updates []models.BracketSlot) []models.BracketSlot {
	byPosition := make(map[int]*int, models.BracketSize)
	for _, s := range current {
		byPosition[s.Position] = s.TeamID
	}
	for _, s := range updates {
		byPosition[s.Position] = s.TeamID
	}

	merged := make([]models.BracketSlot, models.BracketSize)
	for i := range merged {
		pos := i + 1
		merged[i] = models.BracketSlot{Position: pos, TeamID: byPosition[pos]}
	}
	return merged
}

// ValidatePairs rejects a grid where any adjacent pair carries the same team
// in both of its slots. A match needs two distinct teams, so such a pair must
// fail the whole save before anything is persisted.
func ValidatePairs(slots []models.BracketSlot) error {
	byPosition := make(map[int]*int, len(slots))
	for _, s := range slots {
		byPosition[s.Position] = s.TeamID
	}
	for k := 1; k <= models.BracketSize/2; k++ {
		t1, t2 := byPosition[k*2-1], byPosition[k*2]
		if t1 != nil && t2 != nil && *t1 == *t2 {
			return &SlotPairConflictError{BracketPosition: k, TeamID: *t1}
		}
	}
	return nil
}

// CompletedPairs lists the quarterfinal bracket positions whose two adjacent
// slots are both filled but have no match yet. Re-saving a grid that already
// produced its matches therefore yields nothing to create.
func CompletedPairs(slots []models.BracketSlot, existing map[int]bool) []int {
	filled := make(map[int]bool, len(slots))
	for _, s := range slots {
		if s.TeamID != nil {
			filled[s.Position] = true
		}
	}

	var positions []int
	for k := 1; k <= models.BracketSize/2; k++ {
		if existing[k] {
			continue
		}
		if filled[k*2-1] && filled[k*2] {
			positions = append(positions, k)
		}
	}
	return positions
}
