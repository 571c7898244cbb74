package standings

import (
	"math/rand"
	"testing"

	"github.com/Adilkhan05/cup-system/models"
)

func intPtr(v int) *int { return &v }

func completedGroupMatch(team1, team2, score1, score2 int) *models.Match {
	return &models.Match{
		Team1ID: team1,
		Team2ID: team2,
		Phase:   models.PhaseGroups,
		Status:  models.MatchStatusCompleted,
		Score1:  intPtr(score1),
		Score2:  intPtr(score2),
	}
}

func TestDeltaForScore(t *testing.T) {
	tests := []struct {
		name     string
		own, opp int
		want     models.TeamStats
	}{
		{
			name: "win",
			own:  3, opp: 1,
			want: models.TeamStats{Played: 1, Won: 1, GoalsFor: 3, GoalsAgainst: 1, GoalDiff: 2, Points: 3},
		},
		{
			name: "loss",
			own:  0, opp: 2,
			want: models.TeamStats{Played: 1, Lost: 1, GoalsFor: 0, GoalsAgainst: 2, GoalDiff: -2, Points: 0},
		},
		{
			name: "draw",
			own:  1, opp: 1,
			want: models.TeamStats{Played: 1, Drawn: 1, GoalsFor: 1, GoalsAgainst: 1, GoalDiff: 0, Points: 1},
		},
		{
			name: "goalless draw",
			own:  0, opp: 0,
			want: models.TeamStats{Played: 1, Drawn: 1, Points: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeltaForScore(tt.own, tt.opp); got != tt.want {
				t.Errorf("DeltaForScore(%d, %d) = %+v, want %+v", tt.own, tt.opp, got, tt.want)
			}
		})
	}
}

func TestComputeTwoMatchScenario(t *testing.T) {
	// Team 1 wins 3-1 then draws 0-0.
	matches := []*models.Match{
		completedGroupMatch(1, 2, 3, 1),
		completedGroupMatch(3, 1, 0, 0),
	}

	got := Compute(1, matches)
	want := models.TeamStats{
		Played: 2, Won: 1, Drawn: 1, Lost: 0,
		GoalsFor: 3, GoalsAgainst: 1, GoalDiff: 2, Points: 4,
	}
	if got != want {
		t.Errorf("Compute(1) = %+v, want %+v", got, want)
	}
}

func TestComputeSkipsPendingAndKnockout(t *testing.T) {
	pending := completedGroupMatch(1, 2, 2, 0)
	pending.Status = models.MatchStatusPending

	knockout := completedGroupMatch(1, 2, 2, 0)
	knockout.Phase = models.PhaseKnockout

	got := Compute(1, []*models.Match{pending, knockout})
	if got != (models.TeamStats{}) {
		t.Errorf("Compute over pending/knockout matches = %+v, want zero", got)
	}
}

// Editing a completed result must be equivalent to reversing the old delta
// and applying the new one, with no double counting.
func TestEditReverseThenApply(t *testing.T) {
	aggregate := DeltaForScore(3, 1) // original 3-1 win recorded

	// Edit to 2-1: still a win, two fewer goals... one fewer goal for.
	aggregate = Add(aggregate, Negate(DeltaForScore(3, 1)))
	aggregate = Add(aggregate, DeltaForScore(2, 1))

	want := models.TeamStats{Played: 1, Won: 1, GoalsFor: 2, GoalsAgainst: 1, GoalDiff: 1, Points: 3}
	if aggregate != want {
		t.Errorf("after edit aggregate = %+v, want %+v", aggregate, want)
	}
}

func TestDeleteReversesExactly(t *testing.T) {
	winner := DeltaForScore(2, 0)
	loser := DeltaForScore(0, 2)

	if got := Add(winner, Negate(DeltaForScore(2, 0))); got != (models.TeamStats{}) {
		t.Errorf("winner aggregate after reversal = %+v, want zero", got)
	}
	if got := Add(loser, Negate(DeltaForScore(0, 2))); got != (models.TeamStats{}) {
		t.Errorf("loser aggregate after reversal = %+v, want zero", got)
	}
}

// Applying deltas incrementally in any order must equal the one-pass
// calculator over the same match set.
func TestLedgerEquivalentToCompute(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	matches := make([]*models.Match, 0, 20)
	for i := 0; i < 20; i++ {
		opponent := 2 + rng.Intn(4)
		if rng.Intn(2) == 0 {
			matches = append(matches, completedGroupMatch(1, opponent, rng.Intn(5), rng.Intn(5)))
		} else {
			matches = append(matches, completedGroupMatch(opponent, 1, rng.Intn(5), rng.Intn(5)))
		}
	}

	reference := Compute(1, matches)

	for trial := 0; trial < 10; trial++ {
		shuffled := make([]*models.Match, len(matches))
		copy(shuffled, matches)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		var ledger models.TeamStats
		for _, m := range shuffled {
			d1, d2 := MatchDeltas(m)
			if m.Team1ID == 1 {
				ledger = Add(ledger, d1)
			} else {
				ledger = Add(ledger, d2)
			}
		}
		if ledger != reference {
			t.Fatalf("trial %d: incremental ledger = %+v, one-pass = %+v", trial, ledger, reference)
		}
	}
}

func TestMatchDeltasAreSymmetric(t *testing.T) {
	m := completedGroupMatch(1, 2, 4, 2)
	d1, d2 := MatchDeltas(m)

	if d1.GoalsFor != d2.GoalsAgainst || d1.GoalsAgainst != d2.GoalsFor {
		t.Errorf("goal columns not mirrored: d1=%+v d2=%+v", d1, d2)
	}
	if d1.GoalDiff != -d2.GoalDiff {
		t.Errorf("goal diff not mirrored: %d vs %d", d1.GoalDiff, d2.GoalDiff)
	}
	if d1.Won != d2.Lost || d1.Lost != d2.Won {
		t.Errorf("results not mirrored: d1=%+v d2=%+v", d1, d2)
	}
}
