package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusCompleted MatchStatus = "completed"
)

type MatchPhase string

const (
	PhaseGroups   MatchPhase = "groups"
	PhaseKnockout MatchPhase = "knockout"
)

type KnockoutRound string

const (
	RoundQuarterfinal KnockoutRound = "quarterfinal"
	RoundSemifinal    KnockoutRound = "semifinal"
	RoundThirdPlace   KnockoutRound = "third_place"
	RoundFinal        KnockoutRound = "final"
)

// Match references its two teams but does not own them. Score and penalty
// fields stay NULL until the match is completed. BracketPosition pairs a
// knockout match to its slot within the round: 1-4 for quarterfinals, 1-2
// for semifinals, 1 for the final and the third-place match.
type Match struct {
	ID         int         `json:"id" db:"id"`
	Team1ID    int         `json:"team1_id" db:"team1_id"`
	Team2ID    int         `json:"team2_id" db:"team2_id"`
	GroupLabel *string     `json:"group,omitempty" db:"group_label"`
	Phase      MatchPhase  `json:"phase" db:"phase"`
	Status     MatchStatus `json:"status" db:"status"`

	MatchTime *time.Time `json:"match_time,omitempty" db:"match_time"`
	IsToday   bool       `json:"is_today" db:"is_today"`

	Score1    *int `json:"score1,omitempty" db:"score1"`
	Score2    *int `json:"score2,omitempty" db:"score2"`
	RedCards1 int  `json:"red_cards1" db:"red_cards1"`
	RedCards2 int  `json:"red_cards2" db:"red_cards2"`

	KnockoutRound   *KnockoutRound `json:"knockout_round,omitempty" db:"knockout_round"`
	BracketPosition *int           `json:"bracket_position,omitempty" db:"bracket_position"`

	HasPenalties  bool `json:"has_penalties" db:"has_penalties"`
	PenaltyScore1 *int `json:"penalty_score1,omitempty" db:"penalty_score1"`
	PenaltyScore2 *int `json:"penalty_score2,omitempty" db:"penalty_score2"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Team1 *Team `json:"team1,omitempty" db:"-"`
	Team2 *Team `json:"team2,omitempty" db:"-"`
}

func (p MatchPhase) Valid() bool {
	return p == PhaseGroups || p == PhaseKnockout
}

func (r KnockoutRound) Valid() bool {
	switch r {
	case RoundQuarterfinal, RoundSemifinal, RoundThirdPlace, RoundFinal:
		return true
	}
	return false
}

// MaxBracketPosition reports how many pairings a round holds.
func (r KnockoutRound) MaxBracketPosition() int {
	switch r {
	case RoundQuarterfinal:
		return 4
	case RoundSemifinal:
		return 2
	default:
		return 1
	}
}
