package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/scorebet/prediction-league/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
)

// MatchFilter narrows List results; nil fields mean no filtering.
type MatchFilter struct {
	Status     *models.MatchStatus
	Phase      *models.MatchPhase
	GroupLabel *string
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	SetResult(ctx context.Context, exec SQLExecutor, id int, score1, score2 int, manOfTheMatch *int) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter MatchFilter) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (team1_id, team2_id, kickoff, status, phase, group_label)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		match.Team1ID, match.Team2ID, match.Kickoff, match.Status, match.Phase, match.GroupLabel,
	).Scan(&match.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.Team1ID, &m.Team2ID, &m.Kickoff, &m.Status, &m.Phase,
		&m.GroupLabel, &m.Score1, &m.Score2, &m.ManOfTheMatch,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, team1_id, team2_id, kickoff, status, phase, group_label, score1, score2, man_of_the_match
		FROM matches
		WHERE id = $1`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET team1_id = $1, team2_id = $2, kickoff = $3, status = $4, phase = $5, group_label = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		match.Team1ID, match.Team2ID, match.Kickoff, match.Status, match.Phase, match.GroupLabel, match.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchTeamInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// SetResult writes the final score, the optional man of the match and flips
// the status to finished in a single statement.
func (r *postgresMatchRepository) SetResult(ctx context.Context, exec SQLExecutor, id int, score1, score2 int, manOfTheMatch *int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, man_of_the_match = $3, status = $4
		WHERE id = $5`
	result, err := executor.ExecContext(ctx, query, score1, score2, manOfTheMatch, models.MatchStatusFinished, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]*models.Match, error) {
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT id, team1_id, team2_id, kickoff, status, phase, group_label, score1, score2, man_of_the_match
		FROM matches`)

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)
	addCondition := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.Status != nil {
		addCondition("status", *filter.Status)
	}
	if filter.Phase != nil {
		addCondition("phase", *filter.Phase)
	}
	if filter.GroupLabel != nil {
		addCondition("group_label", *filter.GroupLabel)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY kickoff ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
