package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/scorebet/prediction-league/models"
	"github.com/scorebet/prediction-league/repositories"
	"github.com/scorebet/prediction-league/scoring"
)

// RecalculationSummary reports what a full recalculation pass did.
type RecalculationSummary struct {
	Scored  int `json:"scored"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type ScoringService interface {
	// RecalculateAll re-derives and persists the point value of every
	// prediction whose match has a final result. Predictions on matches that
	// are not finished (or not found) are left untouched. The pass is
	// idempotent: a second run with unchanged inputs writes nothing.
	RecalculateAll(ctx context.Context) (RecalculationSummary, error)
}

type scoringService struct {
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	logger         *slog.Logger
}

func NewScoringService(
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		logger:         logger,
	}
}

func (s *scoringService) RecalculateAll(ctx context.Context) (RecalculationSummary, error) {
	var (
		matches     []*models.Match
		predictions []*models.Prediction
	)

	finished := models.MatchStatusFinished
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx, repositories.MatchFilter{Status: &finished})
		if err != nil {
			return fmt.Errorf("failed to list finished matches: %w", err)
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
		return RecalculationSummary{}, err
	}

	matchByID := make(map[int]*models.Match, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}

	var summary RecalculationSummary
	var writeErrs []error

	for _, p := range predictions {
		match, ok := matchByID[p.MatchID]
		if !ok {
			summary.Skipped++
			continue
		}
		if _, resolved := scoring.ResolveMatch(match); !resolved {
			// Finished but still calculating: no result yet.
			summary.Skipped++
			continue
		}

		points := scoring.ScorePrediction(p, match)
		summary.Scored++
		if points == p.Points {
			continue
		}

		// One failed write must not block repair of the rest; the next pass
		// picks the row up again.
		if err := s.predictionRepo.UpdatePoints(ctx, nil, p.ID, points); err != nil {
			summary.Failed++
			writeErrs = append(writeErrs, fmt.Errorf("prediction %d: %w", p.ID, err))
			s.logger.Error("recalculation: failed to update prediction points",
				slog.Int("prediction_id", p.ID),
				slog.Any("error", err))
			continue
		}
		p.Points = points
		summary.Updated++
	}

	s.logger.Info("recalculation pass complete",
		slog.Int("scored", summary.Scored),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed))

	return summary, errors.Join(writeErrs...)
}
