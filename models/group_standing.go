package models

import "time"

// GroupStandingRow is one team's accumulated record inside its group.
// GoalDiff is always derived from GoalsFor and GoalsAgainst, never stored.
type GroupStandingRow struct {
	ID            int       `json:"id,omitempty" db:"id"`
	TeamID        int       `json:"team_id" db:"team_id"`
	TeamName      string    `json:"team_name" db:"-"`
	GroupLabel    string    `json:"group_label" db:"group_label"`
	Points        int       `json:"points" db:"points"`
	GoalsFor      int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst  int       `json:"goals_against" db:"goals_against"`
	MatchesPlayed int       `json:"matches_played" db:"matches_played"`
	GoalDiff      int       `json:"goal_diff" db:"-"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
