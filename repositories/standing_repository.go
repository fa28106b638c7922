package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/scorebet/prediction-league/models"
)

var ErrStandingNotFound = errors.New("group standing not found")

type StandingRepository interface {
	GetByTeamAndGroup(ctx context.Context, exec SQLExecutor, teamID int, group string) (*models.GroupStandingRow, error)
	GetOrCreate(ctx context.Context, exec SQLExecutor, teamID int, group string) (*models.GroupStandingRow, error)
	Upsert(ctx context.Context, exec SQLExecutor, row *models.GroupStandingRow) error
	ListByGroup(ctx context.Context, exec SQLExecutor, group string) ([]models.GroupStandingRow, error)
	DeleteByGroup(ctx context.Context, exec SQLExecutor, group string) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) scanStanding(row interface{ Scan(...interface{}) error }) (*models.GroupStandingRow, error) {
	var s models.GroupStandingRow
	err := row.Scan(
		&s.ID, &s.TeamID, &s.TeamName, &s.GroupLabel, &s.Points,
		&s.GoalsFor, &s.GoalsAgainst, &s.MatchesPlayed, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	// Goal difference is derived, never read from storage.
	s.GoalDiff = s.GoalsFor - s.GoalsAgainst
	return &s, nil
}

func (r *postgresStandingRepository) GetByTeamAndGroup(ctx context.Context, exec SQLExecutor, teamID int, group string) (*models.GroupStandingRow, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT gs.id, gs.team_id, t.name, gs.group_label, gs.points,
		       gs.goals_for, gs.goals_against, gs.matches_played, gs.updated_at
		FROM group_standings gs
		JOIN teams t ON t.id = gs.team_id
		WHERE gs.team_id = $1 AND gs.group_label = $2`
	return r.scanStanding(executor.QueryRowContext(ctx, query, teamID, group))
}

func (r *postgresStandingRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, teamID int, group string) (*models.GroupStandingRow, error) {
	executor := r.getExecutor(exec)
	standing, err := r.GetByTeamAndGroup(ctx, executor, teamID, group)
	if err != nil {
		if errors.Is(err, ErrStandingNotFound) {
			fresh := &models.GroupStandingRow{
				TeamID:     teamID,
				GroupLabel: group,
				UpdatedAt:  time.Now(),
			}
			if createErr := r.Upsert(ctx, executor, fresh); createErr != nil {
				return nil, fmt.Errorf("failed to create standing for team %d group %s: %w", teamID, group, createErr)
			}
			return fresh, nil
		}
		return nil, fmt.Errorf("failed to get standing for team %d group %s: %w", teamID, group, err)
	}
	return standing, nil
}

func (r *postgresStandingRepository) Upsert(ctx context.Context, exec SQLExecutor, row *models.GroupStandingRow) error {
	executor := r.getExecutor(exec)
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now()
	}
	query := `
		INSERT INTO group_standings
			(team_id, group_label, points, goals_for, goals_against, matches_played, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (team_id, group_label) DO UPDATE SET
			points = EXCLUDED.points,
			goals_for = EXCLUDED.goals_for,
			goals_against = EXCLUDED.goals_against,
			matches_played = EXCLUDED.matches_played,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
	return executor.QueryRowContext(ctx, query,
		row.TeamID, row.GroupLabel, row.Points, row.GoalsFor,
		row.GoalsAgainst, row.MatchesPlayed, row.UpdatedAt,
	).Scan(&row.ID)
}

func (r *postgresStandingRepository) ListByGroup(ctx context.Context, exec SQLExecutor, group string) ([]models.GroupStandingRow, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT gs.id, gs.team_id, t.name, gs.group_label, gs.points,
		       gs.goals_for, gs.goals_against, gs.matches_played, gs.updated_at
		FROM group_standings gs
		JOIN teams t ON t.id = gs.team_id
		WHERE gs.group_label = $1
		ORDER BY gs.points DESC, (gs.goals_for - gs.goals_against) DESC, gs.team_id ASC`
	rows, err := executor.QueryContext(ctx, query, group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.GroupStandingRow, 0)
	for rows.Next() {
		s, errScan := r.scanStanding(rows)
		if errScan != nil {
			return nil, errScan
		}
		standings = append(standings, *s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}

func (r *postgresStandingRepository) DeleteByGroup(ctx context.Context, exec SQLExecutor, group string) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM group_standings WHERE group_label = $1`, group)
	return err
}
