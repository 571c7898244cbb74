package services

import (
	"errors"
	"testing"

	"github.com/Adilkhan05/cup-system/models"
)

func intPtr(v int) *int { return &v }

func roundPtr(r models.KnockoutRound) *models.KnockoutRound { return &r }

func TestValidateCreateMatch(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateMatchInput
		wantErr error
	}{
		{
			name:  "valid group match",
			input: CreateMatchInput{Team1ID: 1, Team2ID: 2, Phase: models.PhaseGroups},
		},
		{
			name: "valid knockout match",
			input: CreateMatchInput{
				Team1ID: 1, Team2ID: 2, Phase: models.PhaseKnockout,
				KnockoutRound: roundPtr(models.RoundSemifinal), BracketPosition: intPtr(2),
			},
		},
		{
			name:    "same team twice",
			input:   CreateMatchInput{Team1ID: 3, Team2ID: 3, Phase: models.PhaseGroups},
			wantErr: ErrMatchSameTeam,
		},
		{
			name:    "invalid phase",
			input:   CreateMatchInput{Team1ID: 1, Team2ID: 2, Phase: "playoffs"},
			wantErr: ErrMatchInvalidPhase,
		},
		{
			name:    "knockout without round",
			input:   CreateMatchInput{Team1ID: 1, Team2ID: 2, Phase: models.PhaseKnockout, BracketPosition: intPtr(1)},
			wantErr: ErrMatchKnockoutInfo,
		},
		{
			name: "knockout position out of range for round",
			input: CreateMatchInput{
				Team1ID: 1, Team2ID: 2, Phase: models.PhaseKnockout,
				KnockoutRound: roundPtr(models.RoundFinal), BracketPosition: intPtr(2),
			},
			wantErr: ErrMatchKnockoutInfo,
		},
		{
			name: "quarterfinal position four is fine",
			input: CreateMatchInput{
				Team1ID: 1, Team2ID: 2, Phase: models.PhaseKnockout,
				KnockoutRound: roundPtr(models.RoundQuarterfinal), BracketPosition: intPtr(4),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCreateMatch(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateResult(t *testing.T) {
	groupMatch := &models.Match{Phase: models.PhaseGroups}
	knockoutMatch := &models.Match{Phase: models.PhaseKnockout}

	tests := []struct {
		name    string
		match   *models.Match
		input   ResultInput
		wantErr error
	}{
		{
			name:  "group win",
			match: groupMatch,
			input: ResultInput{Score1: 3, Score2: 1},
		},
		{
			name:  "group draw needs no penalties",
			match: groupMatch,
			input: ResultInput{Score1: 0, Score2: 0},
		},
		{
			name:    "negative score",
			match:   groupMatch,
			input:   ResultInput{Score1: -1, Score2: 0},
			wantErr: ErrScoreNegative,
		},
		{
			name:    "negative red cards",
			match:   groupMatch,
			input:   ResultInput{Score1: 1, Score2: 0, RedCards1: -2},
			wantErr: ErrRedCardsNegative,
		},
		{
			name:    "penalties on a decided match",
			match:   knockoutMatch,
			input:   ResultInput{Score1: 2, Score2: 1, HasPenalties: true, PenaltyScore1: intPtr(4), PenaltyScore2: intPtr(3)},
			wantErr: ErrPenaltiesWithoutDraw,
		},
		{
			name:    "penalties without scores",
			match:   knockoutMatch,
			input:   ResultInput{Score1: 1, Score2: 1, HasPenalties: true},
			wantErr: ErrPenaltyScoresRequired,
		},
		{
			name:    "level shootout",
			match:   knockoutMatch,
			input:   ResultInput{Score1: 1, Score2: 1, HasPenalties: true, PenaltyScore1: intPtr(3), PenaltyScore2: intPtr(3)},
			wantErr: ErrPenaltyShootoutLevel,
		},
		{
			name:  "knockout draw resolved on penalties",
			match: knockoutMatch,
			input: ResultInput{Score1: 1, Score2: 1, HasPenalties: true, PenaltyScore1: intPtr(4), PenaltyScore2: intPtr(3)},
		},
		{
			name:    "knockout draw without penalties",
			match:   knockoutMatch,
			input:   ResultInput{Score1: 2, Score2: 2},
			wantErr: ErrKnockoutDrawUnresolved,
		},
		{
			name:    "negative penalty score",
			match:   knockoutMatch,
			input:   ResultInput{Score1: 0, Score2: 0, HasPenalties: true, PenaltyScore1: intPtr(-1), PenaltyScore2: intPtr(3)},
			wantErr: ErrScoreNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResult(tt.match, tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
