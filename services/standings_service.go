package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/scorebet/prediction-league/models"
	"github.com/scorebet/prediction-league/repositories"
	"github.com/scorebet/prediction-league/scoring"
)

type StandingsService interface {
	// GetGroupStandings returns the persisted rows of a group, ranked by
	// points then goal difference. Goal difference is recomputed from goals
	// for/against on every read.
	GetGroupStandings(ctx context.Context, group string) ([]models.GroupStandingRow, error)

	// RebuildGroupStandings rebuilds the persisted rows of a group from the
	// finished group matches. The stored rows are a cache of this fold, not
	// an independent source of truth.
	RebuildGroupStandings(ctx context.Context, group string) ([]models.GroupStandingRow, error)

	// OverrideStanding applies an admin correction to one row. Only supplied
	// fields change; everything else keeps its stored value.
	OverrideStanding(ctx context.Context, input StandingOverrideInput) (*models.GroupStandingRow, error)
}

type StandingOverrideInput struct {
	TeamID        int    `json:"team_id"`
	GroupLabel    string `json:"group_label"`
	Points        *int   `json:"points"`
	GoalsFor      *int   `json:"goals_for"`
	GoalsAgainst  *int   `json:"goals_against"`
	MatchesPlayed *int   `json:"matches_played"`
}

type standingsService struct {
	db           *sql.DB
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	standingRepo repositories.StandingRepository
}

func NewStandingsService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
) StandingsService {
	return &standingsService{
		db:           db,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
	}
}

func (s *standingsService) GetGroupStandings(ctx context.Context, group string) ([]models.GroupStandingRow, error) {
	if group == "" {
		return nil, ErrGroupLabelRequired
	}
	rows, err := s.standingRepo.ListByGroup(ctx, nil, group)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings for group %s: %w", group, err)
	}
	if len(rows) == 0 {
		// Nothing cached yet; derive directly from match results.
		derived, err := s.deriveGroupTable(ctx, group)
		if err != nil {
			return nil, err
		}
		return derived, nil
	}
	scoring.SortStandings(rows)
	return rows, nil
}

func (s *standingsService) deriveGroupTable(ctx context.Context, group string) ([]models.GroupStandingRow, error) {
	var (
		teams   []models.Team
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gCtx, &group)
		if err != nil {
			return fmt.Errorf("failed to list teams of group %s: %w", group, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		phase := models.PhaseGroup
		matches, err = s.matchRepo.List(gCtx, repositories.MatchFilter{Phase: &phase, GroupLabel: &group})
		if err != nil {
			return fmt.Errorf("failed to list matches of group %s: %w", group, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return scoring.BuildGroupTable(group, teams, matches), nil
}

func (s *standingsService) RebuildGroupStandings(ctx context.Context, group string) ([]models.GroupStandingRow, error) {
	if group == "" {
		return nil, ErrGroupLabelRequired
	}

	rows, err := s.deriveGroupTable(ctx, group)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin standings rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.standingRepo.DeleteByGroup(ctx, tx, group); err != nil {
		return nil, fmt.Errorf("failed to clear standings of group %s: %w", group, err)
	}
	for i := range rows {
		if err := s.standingRepo.Upsert(ctx, tx, &rows[i]); err != nil {
			return nil, fmt.Errorf("failed to write standing for team %d: %w", rows[i].TeamID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit standings rebuild: %w", err)
	}
	return rows, nil
}

func (s *standingsService) OverrideStanding(ctx context.Context, input StandingOverrideInput) (*models.GroupStandingRow, error) {
	if input.GroupLabel == "" {
		return nil, ErrGroupLabelRequired
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", input.TeamID, err)
	}

	row, err := s.standingRepo.GetOrCreate(ctx, nil, input.TeamID, input.GroupLabel)
	if err != nil {
		return nil, err
	}

	if input.Points != nil {
		row.Points = *input.Points
	}
	if input.GoalsFor != nil {
		row.GoalsFor = *input.GoalsFor
	}
	if input.GoalsAgainst != nil {
		row.GoalsAgainst = *input.GoalsAgainst
	}
	if input.MatchesPlayed != nil {
		row.MatchesPlayed = *input.MatchesPlayed
	}

	if err := s.standingRepo.Upsert(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("failed to store standing override for team %d: %w", input.TeamID, err)
	}
	row.GoalDiff = row.GoalsFor - row.GoalsAgainst
	return row, nil
}
