package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/scorebet/prediction-league/models"
	"github.com/scorebet/prediction-league/repositories"
	"github.com/scorebet/prediction-league/scoring"
)

type LeaderboardService interface {
	// Leaderboard re-derives the primary ranking from the prediction set.
	Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error)
	// WorstValue re-derives the "lowest performers" ranking; users without a
	// single bet are excluded.
	WorstValue(ctx context.Context) ([]models.WorstValueRow, error)
}

type leaderboardService struct {
	userRepo       repositories.UserRepository
	predictionRepo repositories.PredictionRepository
}

func NewLeaderboardService(userRepo repositories.UserRepository, predictionRepo repositories.PredictionRepository) LeaderboardService {
	return &leaderboardService{
		userRepo:       userRepo,
		predictionRepo: predictionRepo,
	}
}

func (s *leaderboardService) fetch(ctx context.Context) ([]models.User, []*models.Prediction, error) {
	var (
		users       []models.User
		predictions []*models.Prediction
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		predictions, err = s.predictionRepo.ListAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list predictions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return users, predictions, nil
}

func (s *leaderboardService) Leaderboard(ctx context.Context) ([]models.LeaderboardRow, error) {
	users, predictions, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.BuildLeaderboard(users, predictions), nil
}

func (s *leaderboardService) WorstValue(ctx context.Context) ([]models.WorstValueRow, error) {
	users, predictions, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.BuildWorstValue(scoring.BuildLeaderboard(users, predictions)), nil
}
