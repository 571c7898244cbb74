package brackets

import "github.com/Adilkhan05/cup-system/models"

// Slot is one pairing of the knockout tree as shown to the caller. Match is
// nil until a row exists for the pairing; Team1/Team2 then come from the
// prior round's outcome (or the seeding grid for quarterfinals) instead of
// a stored match. Winner and Loser stay nil while undecided.
type Slot struct {
	Round           models.KnockoutRound `json:"round"`
	BracketPosition int                  `json:"bracket_position"`
	Match           *models.Match        `json:"match,omitempty"`
	Team1           *models.Team         `json:"team1,omitempty"`
	Team2           *models.Team         `json:"team2,omitempty"`
	Winner          *models.Team         `json:"winner,omitempty"`
	Loser           *models.Team         `json:"loser,omitempty"`
}

// View is the whole knockout tree, derived on every read. Nothing in it is
// persisted beyond the match rows and the seeding grid it is computed from,
// so completing a quarterfinal immediately changes the semifinal it feeds.
type View struct {
	Quarterfinals [4]Slot `json:"quarterfinals"`
	Semifinals    [2]Slot `json:"semifinals"`
	Final         Slot    `json:"final"`
	ThirdPlace    Slot    `json:"third_place"`
}

// Outcome resolves a completed match. A draw falls through to the penalty
// shootout when one was played; a shootout that is itself level, or a draw
// without penalties, decides nothing.
func Outcome(m *models.Match) (winnerID, loserID int, decided bool) {
	if m == nil || m.Status != models.MatchStatusCompleted || m.Score1 == nil || m.Score2 == nil {
		return 0, 0, false
	}
	s1, s2 := *m.Score1, *m.Score2
	if s1 == s2 {
		if !m.HasPenalties || m.PenaltyScore1 == nil || m.PenaltyScore2 == nil {
			return 0, 0, false
		}
		s1, s2 = *m.PenaltyScore1, *m.PenaltyScore2
		if s1 == s2 {
			return 0, 0, false
		}
	}
	if s1 > s2 {
		return m.Team1ID, m.Team2ID, true
	}
	return m.Team2ID, m.Team1ID, true
}

// Resolve derives the bracket view from the seeding grid and the knockout
// match rows. Quarterfinal inputs fall back to the grid, semifinal inputs to
// quarterfinal winners (QF1+QF2 feed SF1, QF3+QF4 feed SF2), the final to
// semifinal winners and the third-place match to semifinal losers.
func Resolve(settings *models.Settings, matches []*models.Match, teams map[int]*models.Team) *View {
	byRoundPos := make(map[models.KnockoutRound]map[int]*models.Match)
	for _, m := range matches {
		if m.Phase != models.PhaseKnockout || m.KnockoutRound == nil || m.BracketPosition == nil {
			continue
		}
		round := *m.KnockoutRound
		if byRoundPos[round] == nil {
			byRoundPos[round] = make(map[int]*models.Match)
		}
		byRoundPos[round][*m.BracketPosition] = m
	}

	lookup := func(id int) *models.Team {
		if id == 0 {
			return nil
		}
		return teams[id]
	}

	slotTeam := func(position int) *models.Team {
		for _, s := range settings.BracketSlots {
			if s.Position == position && s.TeamID != nil {
				return lookup(*s.TeamID)
			}
		}
		return nil
	}

	fill := func(round models.KnockoutRound, position int, fallback1, fallback2 *models.Team) Slot {
		slot := Slot{Round: round, BracketPosition: position}
		if m := byRoundPos[round][position]; m != nil {
			slot.Match = m
			slot.Team1 = lookup(m.Team1ID)
			slot.Team2 = lookup(m.Team2ID)
			if winnerID, loserID, ok := Outcome(m); ok {
				slot.Winner = lookup(winnerID)
				slot.Loser = lookup(loserID)
			}
			return slot
		}
		slot.Team1 = fallback1
		slot.Team2 = fallback2
		return slot
	}

	view := &View{}

	for k := 1; k <= 4; k++ {
		view.Quarterfinals[k-1] = fill(models.RoundQuarterfinal, k, slotTeam(k*2-1), slotTeam(k*2))
	}
	for k := 1; k <= 2; k++ {
		qf1, qf2 := view.Quarterfinals[k*2-2], view.Quarterfinals[k*2-1]
		view.Semifinals[k-1] = fill(models.RoundSemifinal, k, qf1.Winner, qf2.Winner)
	}
	sf1, sf2 := view.Semifinals[0], view.Semifinals[1]
	view.Final = fill(models.RoundFinal, 1, sf1.Winner, sf2.Winner)
	view.ThirdPlace = fill(models.RoundThirdPlace, 1, sf1.Loser, sf2.Loser)

	return view
}
