package models

import "time"

type PredictionType string

const (
	PredictionExactScore PredictionType = "exact_score"
	PredictionWinnerOnly PredictionType = "winner_only"
)

// Prediction holds one user's guess for one match. At most one row exists
// per (user, match) pair. Points is the only field rewritten after creation
// and only ever by a scoring pass.
type Prediction struct {
	ID      int            `json:"id" db:"id"`
	UserID  int            `json:"user_id" db:"user_id"`
	MatchID int            `json:"match_id" db:"match_id"`
	Type    PredictionType `json:"type" db:"type"`

	// exact_score fields
	Score1 *int `json:"score1,omitempty" db:"score1"`
	Score2 *int `json:"score2,omitempty" db:"score2"`

	// winner_only fields; Outcome is preferred, WinnerID is the legacy form
	Outcome  *string `json:"outcome,omitempty" db:"outcome"`
	WinnerID *int    `json:"winner_id,omitempty" db:"winner_id"`

	ManOfTheMatch *int `json:"man_of_the_match,omitempty" db:"man_of_the_match"`

	Points    int       `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Match *Match `json:"match,omitempty" db:"-"`
}
