package scoring

import "github.com/scorebet/prediction-league/models"

// Outcome is the categorical result of comparing two scores.
type Outcome string

const (
	OutcomeTeam1 Outcome = "team1"
	OutcomeTeam2 Outcome = "team2"
	OutcomeDraw  Outcome = "draw"
)

// Classify derives the outcome of a score pair. Total over all inputs.
func Classify(score1, score2 int) Outcome {
	switch {
	case score1 > score2:
		return OutcomeTeam1
	case score1 < score2:
		return OutcomeTeam2
	default:
		return OutcomeDraw
	}
}

// Result is a fully resolved final match result.
type Result struct {
	Score1        int
	Score2        int
	ManOfTheMatch *int
}

// Outcome classifies the result's score pair.
func (r Result) Outcome() Outcome {
	return Classify(r.Score1, r.Score2)
}

// ResolveMatch extracts the final result of a match. It reports false for
// anything that is not a finished match with both scores present, including
// the transient state where a match is already marked finished but its
// scores have not been entered yet.
func ResolveMatch(m *models.Match) (Result, bool) {
	if m == nil || m.Status != models.MatchStatusFinished {
		return Result{}, false
	}
	if m.Score1 == nil || m.Score2 == nil {
		return Result{}, false
	}
	return Result{
		Score1:        *m.Score1,
		Score2:        *m.Score2,
		ManOfTheMatch: m.ManOfTheMatch,
	}, true
}
