package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scorebet/prediction-league/models"
	"github.com/scorebet/prediction-league/repositories"
	"github.com/scorebet/prediction-league/scoring"
)

type PredictionService interface {
	// Submit creates or replaces the caller's prediction for one match.
	// Predictions lock at kickoff.
	Submit(ctx context.Context, userID int, input PredictionInput) (*models.Prediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error)
	// PotentialPoints is the best case obtainable for the given shape of
	// prediction, independent of any match result.
	PotentialPoints(predictionType models.PredictionType, hasManOfTheMatch bool) (int, error)
}

type PredictionInput struct {
	MatchID       int                   `json:"match_id"`
	Type          models.PredictionType `json:"type"`
	Score1        *int                  `json:"score1"`
	Score2        *int                  `json:"score2"`
	Outcome       *string               `json:"outcome"`
	WinnerID      *int                  `json:"winner_id"`
	ManOfTheMatch *int                  `json:"man_of_the_match"`
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	matchRepo      repositories.MatchRepository
	now            func() time.Time
}

func NewPredictionService(predictionRepo repositories.PredictionRepository, matchRepo repositories.MatchRepository) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
		now:            time.Now,
	}
}

func validatePredictionInput(input PredictionInput) error {
	switch input.Type {
	case models.PredictionExactScore:
		if input.Score1 == nil || input.Score2 == nil {
			return ErrPredictionIncomplete
		}
		if *input.Score1 < 0 || *input.Score2 < 0 {
			return ErrMatchNegativeScore
		}
	case models.PredictionWinnerOnly:
		if input.Outcome == nil && input.WinnerID == nil {
			return ErrPredictionIncomplete
		}
		if input.Outcome != nil {
			switch scoring.Outcome(*input.Outcome) {
			case scoring.OutcomeTeam1, scoring.OutcomeTeam2, scoring.OutcomeDraw:
			default:
				return ErrPredictionIncomplete
			}
		}
	default:
		return ErrPredictionInvalidType
	}
	return nil
}

func (s *predictionService) Submit(ctx context.Context, userID int, input PredictionInput) (*models.Prediction, error) {
	if err := validatePredictionInput(input); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, nil, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", input.MatchID, err)
	}
	if match.Status != models.MatchStatusUpcoming || !s.now().Before(match.Kickoff) {
		return nil, ErrPredictionLocked
	}

	prediction := &models.Prediction{
		UserID:        userID,
		MatchID:       input.MatchID,
		Type:          input.Type,
		Score1:        input.Score1,
		Score2:        input.Score2,
		Outcome:       input.Outcome,
		WinnerID:      input.WinnerID,
		ManOfTheMatch: input.ManOfTheMatch,
	}
	// Normally zero here; non-zero only in the edge where the target match
	// already has a final result when the prediction is stored.
	prediction.Points = scoring.ScorePrediction(prediction, match)

	existing, err := s.predictionRepo.GetByUserAndMatch(ctx, userID, input.MatchID)
	switch {
	case err == nil:
		prediction.ID = existing.ID
		prediction.CreatedAt = existing.CreatedAt
		if err := s.predictionRepo.Update(ctx, prediction); err != nil {
			return nil, fmt.Errorf("failed to update prediction %d: %w", existing.ID, err)
		}
	case errors.Is(err, repositories.ErrPredictionNotFound):
		if err := s.predictionRepo.Create(ctx, prediction); err != nil {
			return nil, fmt.Errorf("failed to create prediction: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up prediction for user %d match %d: %w", userID, input.MatchID, err)
	}

	return prediction, nil
}

func (s *predictionService) ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error) {
	predictions, err := s.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions of user %d: %w", userID, err)
	}
	return predictions, nil
}

func (s *predictionService) ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error) {
	predictions, err := s.predictionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions of match %d: %w", matchID, err)
	}
	return predictions, nil
}

func (s *predictionService) PotentialPoints(predictionType models.PredictionType, hasManOfTheMatch bool) (int, error) {
	switch predictionType {
	case models.PredictionExactScore, models.PredictionWinnerOnly:
		return scoring.PotentialPoints(predictionType, hasManOfTheMatch), nil
	}
	return 0, ErrPredictionInvalidType
}
