package standings

import "github.com/Adilkhan05/cup-system/models"

// DeltaForScore computes the contribution of a single completed match to
// one team's aggregates, given that team's own and opponent goals. The
// same rule backs both the one-shot calculator and the incremental ledger,
// so the stored aggregates stay equal to a full recompute.
func DeltaForScore(own, opp int) models.TeamStats {
	d := models.TeamStats{
		Played:       1,
		GoalsFor:     own,
		GoalsAgainst: opp,
		GoalDiff:     own - opp,
	}
	switch {
	case own > opp:
		d.Won = 1
		d.Points = 3
	case own < opp:
		d.Lost = 1
	default:
		d.Drawn = 1
		d.Points = 1
	}
	return d
}

// MatchDeltas returns the per-team deltas of a completed match, first for
// team1, then for team2. The match must carry both scores.
func MatchDeltas(m *models.Match) (models.TeamStats, models.TeamStats) {
	return DeltaForScore(*m.Score1, *m.Score2), DeltaForScore(*m.Score2, *m.Score1)
}

// Negate flips every field of a delta. Applying Negate(d) after d restores
// the aggregates a match edit or deletion started from.
func Negate(d models.TeamStats) models.TeamStats {
	return models.TeamStats{
		Played:       -d.Played,
		Won:          -d.Won,
		Drawn:        -d.Drawn,
		Lost:         -d.Lost,
		GoalsFor:     -d.GoalsFor,
		GoalsAgainst: -d.GoalsAgainst,
		GoalDiff:     -d.GoalDiff,
		Points:       -d.Points,
	}
}

// Add sums two deltas field by field.
func Add(a, b models.TeamStats) models.TeamStats {
	return models.TeamStats{
		Played:       a.Played + b.Played,
		Won:          a.Won + b.Won,
		Drawn:        a.Drawn + b.Drawn,
		Lost:         a.Lost + b.Lost,
		GoalsFor:     a.GoalsFor + b.GoalsFor,
		GoalsAgainst: a.GoalsAgainst + b.GoalsAgainst,
		GoalDiff:     a.GoalDiff + b.GoalDiff,
		Points:       a.Points + b.Points,
	}
}

// Compute derives a team's aggregates from scratch over a set of matches.
// Only completed group-phase matches the team took part in count. This is
// the reference the incremental ledger must stay equivalent to; the hot
// path never calls it.
func Compute(teamID int, matches []*models.Match) models.TeamStats {
	var total models.TeamStats
	for _, m := range matches {
		if m.Phase != models.PhaseGroups || m.Status != models.MatchStatusCompleted {
			continue
		}
		if m.Score1 == nil || m.Score2 == nil {
			continue
		}
		switch teamID {
		case m.Team1ID:
			total = Add(total, DeltaForScore(*m.Score1, *m.Score2))
		case m.Team2ID:
			total = Add(total, DeltaForScore(*m.Score2, *m.Score1))
		}
	}
	return total
}
