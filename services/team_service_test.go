package services

import (
	"testing"

	"github.com/Adilkhan05/cup-system/models"
)

func TestTeamSeededInSettings(t *testing.T) {
	five := 5
	tests := []struct {
		name     string
		settings *models.Settings
		teamID   int
		want     bool
	}{
		{
			name:     "no seeding state",
			settings: &models.Settings{},
			teamID:   5,
			want:     false,
		},
		{
			name: "team sits in a bracket slot",
			settings: &models.Settings{
				BracketSlots: []models.BracketSlot{
					{Position: 1, TeamID: nil},
					{Position: 2, TeamID: &five},
				},
			},
			teamID: 5,
			want:   true,
		},
		{
			name: "team only in the qualified list",
			settings: &models.Settings{
				QualifiedTeamIDs: []int{3, 5, 8},
			},
			teamID: 5,
			want:   true,
		},
		{
			name: "other teams seeded",
			settings: &models.Settings{
				BracketSlots:     []models.BracketSlot{{Position: 1, TeamID: &five}},
				QualifiedTeamIDs: []int{5},
			},
			teamID: 6,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := teamSeededInSettings(tt.settings, tt.teamID); got != tt.want {
				t.Errorf("teamSeededInSettings(team %d) = %v, want %v", tt.teamID, got, tt.want)
			}
		})
	}
}
