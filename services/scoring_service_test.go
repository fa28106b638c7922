package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorebet/prediction-league/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func finishedMatch(id, team1, team2, score1, score2 int) *models.Match {
	return &models.Match{
		ID:      id,
		Team1ID: team1,
		Team2ID: team2,
		Status:  models.MatchStatusFinished,
		Score1:  &score1,
		Score2:  &score2,
	}
}

func TestRecalculateAllRescoresAgainstCurrentMatchData(t *testing.T) {
	matchRepo := newFakeMatchRepo(finishedMatch(1, 10, 20, 2, 1))
	predictionRepo := newFakePredictionRepo(
		// Exact hit under the current result.
		&models.Prediction{ID: 1, UserID: 1, MatchID: 1, Type: models.PredictionExactScore, Score1: intPtr(2), Score2: intPtr(1)},
		// Right winner, wrong score.
		&models.Prediction{ID: 2, UserID: 2, MatchID: 1, Type: models.PredictionExactScore, Score1: intPtr(3), Score2: intPtr(0)},
		// Stale points from before a result correction.
		&models.Prediction{ID: 3, UserID: 3, MatchID: 1, Type: models.PredictionWinnerOnly, Outcome: strPtr("team2"), Points: 3},
	)

	svc := NewScoringService(matchRepo, predictionRepo, testLogger())
	summary, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Scored)
	assert.Equal(t, 3, summary.Updated)
	assert.Equal(t, 10, predictionRepo.predictions[1].Points)
	assert.Equal(t, 3, predictionRepo.predictions[2].Points)
	assert.Equal(t, 0, predictionRepo.predictions[3].Points)
}

func TestRecalculateAllIsIdempotent(t *testing.T) {
	matchRepo := newFakeMatchRepo(finishedMatch(1, 10, 20, 1, 1))
	predictionRepo := newFakePredictionRepo(
		&models.Prediction{ID: 1, UserID: 1, MatchID: 1, Type: models.PredictionExactScore, Score1: intPtr(1), Score2: intPtr(1)},
		&models.Prediction{ID: 2, UserID: 2, MatchID: 1, Type: models.PredictionWinnerOnly, Outcome: strPtr("team1")},
	)

	svc := NewScoringService(matchRepo, predictionRepo, testLogger())

	first, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	pointsAfterFirst := []int{predictionRepo.predictions[1].Points, predictionRepo.predictions[2].Points}
	writesAfterFirst := predictionRepo.pointsWrites

	second, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Scored, second.Scored)
	assert.Zero(t, second.Updated)
	assert.Equal(t, writesAfterFirst, predictionRepo.pointsWrites, "second run must write nothing")
	assert.Equal(t, pointsAfterFirst, []int{predictionRepo.predictions[1].Points, predictionRepo.predictions[2].Points})
}

func TestRecalculateAllLeavesUnresolvedMatchesAlone(t *testing.T) {
	calculating := &models.Match{ID: 2, Team1ID: 30, Team2ID: 40, Status: models.MatchStatusFinished}
	matchRepo := newFakeMatchRepo(finishedMatch(1, 10, 20, 2, 0), calculating)
	predictionRepo := newFakePredictionRepo(
		&models.Prediction{ID: 1, UserID: 1, MatchID: 1, Type: models.PredictionWinnerOnly, Outcome: strPtr("team1")},
		// Finished but scores not yet entered: stored points stay put.
		&models.Prediction{ID: 2, UserID: 1, MatchID: 2, Type: models.PredictionWinnerOnly, Outcome: strPtr("team1"), Points: 7},
		// Match missing entirely.
		&models.Prediction{ID: 3, UserID: 1, MatchID: 99, Type: models.PredictionWinnerOnly, Outcome: strPtr("team1"), Points: 5},
	)

	svc := NewScoringService(matchRepo, predictionRepo, testLogger())
	summary, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Scored)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 3, predictionRepo.predictions[1].Points)
	assert.Equal(t, 7, predictionRepo.predictions[2].Points)
	assert.Equal(t, 5, predictionRepo.predictions[3].Points)
}

func TestRecalculateAllContinuesPastFailedWrites(t *testing.T) {
	matchRepo := newFakeMatchRepo(finishedMatch(1, 10, 20, 2, 1))
	predictionRepo := newFakePredictionRepo(
		&models.Prediction{ID: 1, UserID: 1, MatchID: 1, Type: models.PredictionExactScore, Score1: intPtr(2), Score2: intPtr(1)},
		&models.Prediction{ID: 2, UserID: 2, MatchID: 1, Type: models.PredictionExactScore, Score1: intPtr(3), Score2: intPtr(0)},
	)
	writeErr := errors.New("connection reset")
	predictionRepo.failUpdates[1] = writeErr

	svc := NewScoringService(matchRepo, predictionRepo, testLogger())
	summary, err := svc.RecalculateAll(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Updated, "the other prediction must still be repaired")
	assert.Equal(t, 3, predictionRepo.predictions[2].Points)
}
