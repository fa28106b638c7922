package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorebet/prediction-league/models"
)

func upcomingMatch(id int, kickoff time.Time) *models.Match {
	return &models.Match{
		ID:      id,
		Team1ID: 10,
		Team2ID: 20,
		Kickoff: kickoff,
		Status:  models.MatchStatusUpcoming,
		Phase:   models.PhaseGroup,
	}
}

func newTestPredictionService(matchRepo *fakeMatchRepo, predictionRepo *fakePredictionRepo, now time.Time) PredictionService {
	svc := NewPredictionService(predictionRepo, matchRepo).(*predictionService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSubmitCreatesPrediction(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	matchRepo := newFakeMatchRepo(upcomingMatch(1, now.Add(time.Hour)))
	predictionRepo := newFakePredictionRepo()

	svc := newTestPredictionService(matchRepo, predictionRepo, now)
	p, err := svc.Submit(context.Background(), 7, PredictionInput{
		MatchID: 1,
		Type:    models.PredictionExactScore,
		Score1:  intPtr(2),
		Score2:  intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 7, p.UserID)
	assert.Zero(t, p.Points)
	assert.NotZero(t, p.ID)
}

func TestSubmitReplacesExistingPrediction(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	matchRepo := newFakeMatchRepo(upcomingMatch(1, now.Add(time.Hour)))
	predictionRepo := newFakePredictionRepo()

	svc := newTestPredictionService(matchRepo, predictionRepo, now)
	first, err := svc.Submit(context.Background(), 7, PredictionInput{
		MatchID: 1,
		Type:    models.PredictionExactScore,
		Score1:  intPtr(2),
		Score2:  intPtr(0),
	})
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), 7, PredictionInput{
		MatchID: 1,
		Type:    models.PredictionWinnerOnly,
		Outcome: strPtr("draw"),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "one prediction per user and match")
	assert.Equal(t, models.PredictionWinnerOnly, second.Type)
	stored, err := predictionRepo.GetByUserAndMatch(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, models.PredictionWinnerOnly, stored.Type)
}

func TestSubmitLockedAtKickoff(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	input := PredictionInput{
		MatchID: 1,
		Type:    models.PredictionWinnerOnly,
		Outcome: strPtr("team1"),
	}

	t.Run("kickoff passed", func(t *testing.T) {
		matchRepo := newFakeMatchRepo(upcomingMatch(1, now.Add(-time.Minute)))
		svc := newTestPredictionService(matchRepo, newFakePredictionRepo(), now)
		_, err := svc.Submit(context.Background(), 7, input)
		assert.ErrorIs(t, err, ErrPredictionLocked)
	})

	t.Run("match live", func(t *testing.T) {
		match := upcomingMatch(1, now.Add(time.Hour))
		match.Status = models.MatchStatusLive
		svc := newTestPredictionService(newFakeMatchRepo(match), newFakePredictionRepo(), now)
		_, err := svc.Submit(context.Background(), 7, input)
		assert.ErrorIs(t, err, ErrPredictionLocked)
	})

	t.Run("match finished", func(t *testing.T) {
		svc := newTestPredictionService(newFakeMatchRepo(finishedMatch(1, 10, 20, 1, 0)), newFakePredictionRepo(), now)
		_, err := svc.Submit(context.Background(), 7, input)
		assert.ErrorIs(t, err, ErrPredictionLocked)
	})
}

func TestSubmitValidation(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	matchRepo := newFakeMatchRepo(upcomingMatch(1, now.Add(time.Hour)))
	svc := newTestPredictionService(matchRepo, newFakePredictionRepo(), now)

	tests := []struct {
		name  string
		input PredictionInput
		want  error
	}{
		{
			name:  "unknown type",
			input: PredictionInput{MatchID: 1, Type: "banker"},
			want:  ErrPredictionInvalidType,
		},
		{
			name:  "exact score without scores",
			input: PredictionInput{MatchID: 1, Type: models.PredictionExactScore},
			want:  ErrPredictionIncomplete,
		},
		{
			name: "negative score",
			input: PredictionInput{
				MatchID: 1, Type: models.PredictionExactScore,
				Score1: intPtr(-1), Score2: intPtr(0),
			},
			want: ErrMatchNegativeScore,
		},
		{
			name:  "winner only without outcome or winner",
			input: PredictionInput{MatchID: 1, Type: models.PredictionWinnerOnly},
			want:  ErrPredictionIncomplete,
		},
		{
			name: "winner only with garbage outcome",
			input: PredictionInput{
				MatchID: 1, Type: models.PredictionWinnerOnly,
				Outcome: strPtr("maybe"),
			},
			want: ErrPredictionIncomplete,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), 7, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmitUnknownMatch(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestPredictionService(newFakeMatchRepo(), newFakePredictionRepo(), now)
	_, err := svc.Submit(context.Background(), 7, PredictionInput{
		MatchID: 42,
		Type:    models.PredictionWinnerOnly,
		Outcome: strPtr("team1"),
	})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestPotentialPoints(t *testing.T) {
	svc := NewPredictionService(newFakePredictionRepo(), newFakeMatchRepo())

	points, err := svc.PotentialPoints(models.PredictionExactScore, true)
	require.NoError(t, err)
	assert.Equal(t, 13, points)

	points, err = svc.PotentialPoints(models.PredictionWinnerOnly, false)
	require.NoError(t, err)
	assert.Equal(t, 3, points)

	_, err = svc.PotentialPoints("banker", false)
	assert.ErrorIs(t, err, ErrPredictionInvalidType)
}
