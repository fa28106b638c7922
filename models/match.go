package models

import "time"

type MatchStatus string

const (
	MatchStatusUpcoming MatchStatus = "upcoming"
	MatchStatusLive     MatchStatus = "live"
	MatchStatusFinished MatchStatus = "finished"
)

type MatchPhase string

const (
	PhaseGroup   MatchPhase = "group"
	PhaseRound16 MatchPhase = "round16"
	PhaseQuarter MatchPhase = "quarter"
	PhaseSemi    MatchPhase = "semi"
	PhaseFinal   MatchPhase = "final"
)

// Match scores stay nil until a result is entered. A match can sit in
// status finished with nil scores while the result is still being entered;
// scoring treats that state as "no result yet".
type Match struct {
	ID            int         `json:"id" db:"id"`
	Team1ID       int         `json:"team1_id" db:"team1_id"`
	Team2ID       int         `json:"team2_id" db:"team2_id"`
	Kickoff       time.Time   `json:"kickoff" db:"kickoff"`
	Status        MatchStatus `json:"status" db:"status"`
	Phase         MatchPhase  `json:"phase" db:"phase"`
	GroupLabel    *string     `json:"group_label,omitempty" db:"group_label"`
	Score1        *int        `json:"score1,omitempty" db:"score1"`
	Score2        *int        `json:"score2,omitempty" db:"score2"`
	ManOfTheMatch *int        `json:"man_of_the_match,omitempty" db:"man_of_the_match"`

	Team1 *Team `json:"team1,omitempty" db:"-"`
	Team2 *Team `json:"team2,omitempty" db:"-"`
}
