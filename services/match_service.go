package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/scorebet/prediction-league/models"
	"github.com/scorebet/prediction-league/repositories"
)

type MatchService interface {
	Create(ctx context.Context, input MatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	Update(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error)

	// SetResult enters a final result for a match and propagates it: all
	// stored prediction points are recalculated and, for a group-phase
	// match, the group's standings are rebuilt.
	SetResult(ctx context.Context, id int, input MatchResultInput) (*models.Match, error)
}

type MatchInput struct {
	Team1ID    int                `json:"team1_id"`
	Team2ID    int                `json:"team2_id"`
	Kickoff    time.Time          `json:"kickoff"`
	Status     models.MatchStatus `json:"status"`
	Phase      models.MatchPhase  `json:"phase"`
	GroupLabel *string            `json:"group_label"`
}

type MatchResultInput struct {
	Score1        int  `json:"score1"`
	Score2        int  `json:"score2"`
	ManOfTheMatch *int `json:"man_of_the_match"`
}

type matchService struct {
	matchRepo        repositories.MatchRepository
	scoringService   ScoringService
	standingsService StandingsService
	logger           *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	scoringService ScoringService,
	standingsService StandingsService,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:        matchRepo,
		scoringService:   scoringService,
		standingsService: standingsService,
		logger:           logger,
	}
}

func validateMatchInput(input MatchInput) error {
	if input.Team1ID == input.Team2ID {
		return ErrMatchSameTeam
	}
	switch input.Status {
	case models.MatchStatusUpcoming, models.MatchStatusLive, models.MatchStatusFinished:
	case "":
	default:
		return ErrMatchInvalidStatus
	}
	switch input.Phase {
	case models.PhaseGroup:
		if input.GroupLabel == nil || *input.GroupLabel == "" {
			return ErrMatchGroupRequired
		}
	case models.PhaseRound16, models.PhaseQuarter, models.PhaseSemi, models.PhaseFinal:
	default:
		return ErrMatchInvalidPhase
	}
	return nil
}

func (s *matchService) Create(ctx context.Context, input MatchInput) (*models.Match, error) {
	if err := validateMatchInput(input); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = models.MatchStatusUpcoming
	}
	match := &models.Match{
		Team1ID:    input.Team1ID,
		Team2ID:    input.Team2ID,
		Kickoff:    input.Kickoff,
		Status:     status,
		Phase:      input.Phase,
		GroupLabel: input.GroupLabel,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) Update(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	if err := validateMatchInput(input); err != nil {
		return nil, err
	}
	match, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	match.Team1ID = input.Team1ID
	match.Team2ID = input.Team2ID
	match.Kickoff = input.Kickoff
	if input.Status != "" {
		match.Status = input.Status
	}
	match.Phase = input.Phase
	match.GroupLabel = input.GroupLabel

	if err := s.matchRepo.Update(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchTeamInvalid):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) SetResult(ctx context.Context, id int, input MatchResultInput) (*models.Match, error) {
	if input.Score1 < 0 || input.Score2 < 0 {
		return nil, ErrMatchNegativeScore
	}

	if err := s.matchRepo.SetResult(ctx, nil, id, input.Score1, input.Score2, input.ManOfTheMatch); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to set result of match %d: %w", id, err)
	}

	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload match %d: %w", id, err)
	}

	// The result is persisted at this point; propagation failures are
	// reported but do not undo it. Another recalculation run repairs
	// whatever this one missed.
	if _, err := s.scoringService.RecalculateAll(ctx); err != nil {
		s.logger.Error("failed to recalculate prediction points after result",
			slog.Int("match_id", id),
			slog.Any("error", err))
		return match, fmt.Errorf("result stored, but recalculation failed: %w", err)
	}

	if match.Phase == models.PhaseGroup && match.GroupLabel != nil {
		if _, err := s.standingsService.RebuildGroupStandings(ctx, *match.GroupLabel); err != nil {
			s.logger.Error("failed to rebuild group standings after result",
				slog.Int("match_id", id),
				slog.String("group", *match.GroupLabel),
				slog.Any("error", err))
			return match, fmt.Errorf("result stored, but standings rebuild failed: %w", err)
		}
	}

	return match, nil
}
