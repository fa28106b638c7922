package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/scorebet/prediction-league/models"
)

var (
	ErrPredictionNotFound     = errors.New("prediction not found")
	ErrPredictionConflict     = errors.New("prediction already exists for this user and match")
	ErrPredictionMatchInvalid = errors.New("prediction match conflict or invalid")
	ErrPredictionUserInvalid  = errors.New("prediction user conflict or invalid")
)

type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	GetByID(ctx context.Context, id int) (*models.Prediction, error)
	GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error)
	Update(ctx context.Context, prediction *models.Prediction) error
	UpdatePoints(ctx context.Context, exec SQLExecutor, id int, points int) error
	Delete(ctx context.Context, id int) error
	ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error)
	ListAll(ctx context.Context) ([]*models.Prediction, error)
}

type postgresPredictionRepository struct {
	db *sql.DB
}

func NewPostgresPredictionRepository(db *sql.DB) PredictionRepository {
	return &postgresPredictionRepository{db: db}
}

func (r *postgresPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPredictionRepository) Create(ctx context.Context, p *models.Prediction) error {
	query := `
		INSERT INTO predictions
			(user_id, match_id, type, score1, score2, outcome, winner_id, man_of_the_match, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.MatchID, p.Type, p.Score1, p.Score2,
		p.Outcome, p.WinnerID, p.ManOfTheMatch, p.Points,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "predictions_user_id_match_id_key" {
					return ErrPredictionConflict
				}
			case "23503":
				switch pqErr.Constraint {
				case "predictions_match_id_fkey":
					return ErrPredictionMatchInvalid
				case "predictions_user_id_fkey":
					return ErrPredictionUserInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresPredictionRepository) scanPrediction(row interface{ Scan(...interface{}) error }) (*models.Prediction, error) {
	var p models.Prediction
	err := row.Scan(
		&p.ID, &p.UserID, &p.MatchID, &p.Type, &p.Score1, &p.Score2,
		&p.Outcome, &p.WinnerID, &p.ManOfTheMatch, &p.Points, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPredictionNotFound
		}
		return nil, err
	}
	return &p, nil
}

const predictionColumns = `id, user_id, match_id, type, score1, score2, outcome, winner_id, man_of_the_match, points, created_at, updated_at`

func (r *postgresPredictionRepository) GetByID(ctx context.Context, id int) (*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE user_id = $1 AND match_id = $2`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, userID, matchID))
}

func (r *postgresPredictionRepository) Update(ctx context.Context, p *models.Prediction) error {
	query := `
		UPDATE predictions
		SET type = $1, score1 = $2, score2 = $3, outcome = $4, winner_id = $5,
		    man_of_the_match = $6, points = $7, updated_at = NOW()
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		p.Type, p.Score1, p.Score2, p.Outcome, p.WinnerID, p.ManOfTheMatch, p.Points, p.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

// UpdatePoints rewrites only the points column; the recalculation pass uses
// it so a correction never touches the user's guess itself.
func (r *postgresPredictionRepository) UpdatePoints(ctx context.Context, exec SQLExecutor, id int, points int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`UPDATE predictions SET points = $1, updated_at = NOW() WHERE id = $2`, points, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

func (r *postgresPredictionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM predictions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPredictionNotFound)
}

func (r *postgresPredictionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]*models.Prediction, 0)
	for rows.Next() {
		p, errScan := r.scanPrediction(rows)
		if errScan != nil {
			return nil, errScan
		}
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *postgresPredictionRepository) ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE user_id = $1 ORDER BY match_id ASC`
	return r.list(ctx, query, userID)
}

func (r *postgresPredictionRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE match_id = $1 ORDER BY user_id ASC`
	return r.list(ctx, query, matchID)
}

func (r *postgresPredictionRepository) ListAll(ctx context.Context) ([]*models.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions ORDER BY id ASC`
	return r.list(ctx, query)
}
