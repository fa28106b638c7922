package scoring

import "github.com/scorebet/prediction-league/models"

// Point values for the three award sources. The result award and the
// man-of-the-match bonus are independent, so the natural maximum for a
// single prediction is ExactScorePoints + ManOfTheMatchPoints.
const (
	ExactScorePoints    = 10
	CorrectWinnerPoints = 3
	ManOfTheMatchPoints = 3
)

// ScorePrediction computes the point award for one prediction against its
// finished match. It returns 0 for any input it cannot fully resolve:
// unfinished match, missing scores, a winner_only prediction whose winner id
// names neither team. It never returns a negative value and never errors.
func ScorePrediction(p *models.Prediction, m *models.Match) int {
	if p == nil {
		return 0
	}
	result, ok := ResolveMatch(m)
	if !ok {
		return 0
	}

	points := 0

	switch p.Type {
	case models.PredictionExactScore:
		if p.Score1 != nil && p.Score2 != nil {
			if *p.Score1 == result.Score1 && *p.Score2 == result.Score2 {
				points += ExactScorePoints
			} else if Classify(*p.Score1, *p.Score2) == result.Outcome() && result.Outcome() != OutcomeDraw {
				// Wrong score but the right winner. A predicted draw never
				// earns this fallback.
				points += CorrectWinnerPoints
			}
		}
	case models.PredictionWinnerOnly:
		if predicted, ok := predictedOutcome(p, m); ok && predicted == result.Outcome() {
			points += CorrectWinnerPoints
		}
	}

	if p.ManOfTheMatch != nil && result.ManOfTheMatch != nil && *p.ManOfTheMatch == *result.ManOfTheMatch {
		points += ManOfTheMatchPoints
	}

	return points
}

// predictedOutcome resolves a winner_only prediction's outcome. The explicit
// outcome field wins over the legacy winner id form.
func predictedOutcome(p *models.Prediction, m *models.Match) (Outcome, bool) {
	if p.Outcome != nil {
		switch Outcome(*p.Outcome) {
		case OutcomeTeam1, OutcomeTeam2, OutcomeDraw:
			return Outcome(*p.Outcome), true
		}
		return "", false
	}
	if p.WinnerID != nil {
		switch *p.WinnerID {
		case m.Team1ID:
			return OutcomeTeam1, true
		case m.Team2ID:
			return OutcomeTeam2, true
		}
	}
	return "", false
}

// PotentialPoints is the best case obtainable for a prediction of the given
// type, before the match is played. Mirrors the scorer's point values.
func PotentialPoints(t models.PredictionType, hasManOfTheMatch bool) int {
	points := 0
	switch t {
	case models.PredictionExactScore:
		points = ExactScorePoints
	case models.PredictionWinnerOnly:
		points = CorrectWinnerPoints
	}
	if hasManOfTheMatch {
		points += ManOfTheMatchPoints
	}
	return points
}
