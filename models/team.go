package models

import "time"

// TeamStats holds the aggregate standings numbers stored on a team row.
// GoalDiff and Points are written together with the raw counters, keeping
// goal_diff = goals_for - goals_against and points = 3*won + drawn.
type TeamStats struct {
	Played       int `json:"played" db:"played"`
	Won          int `json:"won" db:"won"`
	Drawn        int `json:"drawn" db:"drawn"`
	Lost         int `json:"lost" db:"lost"`
	GoalsFor     int `json:"goals_for" db:"goals_for"`
	GoalsAgainst int `json:"goals_against" db:"goals_against"`
	GoalDiff     int `json:"goal_diff" db:"goal_diff"`
	Points       int `json:"points" db:"points"`
}

type Team struct {
	ID         int    `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	GroupLabel string `json:"group" db:"group_label"`
	TeamStats

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	CrestKey *string `json:"-" db:"crest_key"`
	CrestURL *string `json:"crest_url,omitempty" db:"-"`
}
