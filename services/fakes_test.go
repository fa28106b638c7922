package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/scorebet/prediction-league/models"
	"github.com/scorebet/prediction-league/repositories"
)

// In-memory repository fakes for service tests.

var errNotImplemented = errors.New("not implemented in fake")

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match)}
	for _, m := range matches {
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return m, nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, match *models.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	r.matches[match.ID] = match
	return nil
}

func (r *fakeMatchRepo) SetResult(ctx context.Context, exec repositories.SQLExecutor, id int, score1, score2 int, manOfTheMatch *int) error {
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Score1 = &score1
	m.Score2 = &score2
	m.ManOfTheMatch = manOfTheMatch
	m.Status = models.MatchStatusFinished
	return nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

func (r *fakeMatchRepo) List(ctx context.Context, filter repositories.MatchFilter) ([]*models.Match, error) {
	matches := make([]*models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if filter.Phase != nil && m.Phase != *filter.Phase {
			continue
		}
		if filter.GroupLabel != nil && (m.GroupLabel == nil || *m.GroupLabel != *filter.GroupLabel) {
			continue
		}
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

type fakePredictionRepo struct {
	predictions  map[int]*models.Prediction
	failUpdates  map[int]error
	pointsWrites int
}

func newFakePredictionRepo(predictions ...*models.Prediction) *fakePredictionRepo {
	r := &fakePredictionRepo{
		predictions: make(map[int]*models.Prediction),
		failUpdates: make(map[int]error),
	}
	for _, p := range predictions {
		r.predictions[p.ID] = p
	}
	return r
}

func (r *fakePredictionRepo) Create(ctx context.Context, p *models.Prediction) error {
	for _, existing := range r.predictions {
		if existing.UserID == p.UserID && existing.MatchID == p.MatchID {
			return repositories.ErrPredictionConflict
		}
	}
	if p.ID == 0 {
		p.ID = len(r.predictions) + 1
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.predictions[p.ID] = p
	return nil
}

func (r *fakePredictionRepo) GetByID(ctx context.Context, id int) (*models.Prediction, error) {
	p, ok := r.predictions[id]
	if !ok {
		return nil, repositories.ErrPredictionNotFound
	}
	return p, nil
}

func (r *fakePredictionRepo) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.Prediction, error) {
	for _, p := range r.predictions {
		if p.UserID == userID && p.MatchID == matchID {
			return p, nil
		}
	}
	return nil, repositories.ErrPredictionNotFound
}

func (r *fakePredictionRepo) Update(ctx context.Context, p *models.Prediction) error {
	if _, ok := r.predictions[p.ID]; !ok {
		return repositories.ErrPredictionNotFound
	}
	p.UpdatedAt = time.Now()
	r.predictions[p.ID] = p
	return nil
}

func (r *fakePredictionRepo) UpdatePoints(ctx context.Context, exec repositories.SQLExecutor, id int, points int) error {
	if err, ok := r.failUpdates[id]; ok {
		return err
	}
	p, ok := r.predictions[id]
	if !ok {
		return repositories.ErrPredictionNotFound
	}
	p.Points = points
	r.pointsWrites++
	return nil
}

func (r *fakePredictionRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.predictions[id]; !ok {
		return repositories.ErrPredictionNotFound
	}
	delete(r.predictions, id)
	return nil
}

func (r *fakePredictionRepo) sorted() []*models.Prediction {
	predictions := make([]*models.Prediction, 0, len(r.predictions))
	for _, p := range r.predictions {
		predictions = append(predictions, p)
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions
}

func (r *fakePredictionRepo) ListByUser(ctx context.Context, userID int) ([]*models.Prediction, error) {
	predictions := make([]*models.Prediction, 0)
	for _, p := range r.sorted() {
		if p.UserID == userID {
			predictions = append(predictions, p)
		}
	}
	return predictions, nil
}

func (r *fakePredictionRepo) ListByMatch(ctx context.Context, matchID int) ([]*models.Prediction, error) {
	predictions := make([]*models.Prediction, 0)
	for _, p := range r.sorted() {
		if p.MatchID == matchID {
			predictions = append(predictions, p)
		}
	}
	return predictions, nil
}

func (r *fakePredictionRepo) ListAll(ctx context.Context) ([]*models.Prediction, error) {
	return r.sorted(), nil
}

type fakeUserRepo struct {
	users []models.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return errNotImplemented }
func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}
func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error { return errNotImplemented }
func (r *fakeUserRepo) Delete(ctx context.Context, id int) error            { return errNotImplemented }
func (r *fakeUserRepo) List(ctx context.Context) ([]models.User, error)     { return r.users, nil }

type fakeTeamRepo struct {
	teams []models.Team
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error { return errNotImplemented }
func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	for i := range r.teams {
		if r.teams[i].ID == id {
			t := r.teams[i]
			return &t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}
func (r *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error { return errNotImplemented }
func (r *fakeTeamRepo) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	return errNotImplemented
}
func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error { return errNotImplemented }
func (r *fakeTeamRepo) List(ctx context.Context, groupLabel *string) ([]models.Team, error) {
	if groupLabel == nil {
		return r.teams, nil
	}
	teams := make([]models.Team, 0)
	for _, t := range r.teams {
		if t.GroupLabel != nil && *t.GroupLabel == *groupLabel {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

type fakeStandingRepo struct {
	rows   map[string]map[int]*models.GroupStandingRow
	nextID int
}

func newFakeStandingRepo() *fakeStandingRepo {
	return &fakeStandingRepo{rows: make(map[string]map[int]*models.GroupStandingRow)}
}

func (r *fakeStandingRepo) GetByTeamAndGroup(ctx context.Context, exec repositories.SQLExecutor, teamID int, group string) (*models.GroupStandingRow, error) {
	if row, ok := r.rows[group][teamID]; ok {
		copied := *row
		copied.GoalDiff = copied.GoalsFor - copied.GoalsAgainst
		return &copied, nil
	}
	return nil, repositories.ErrStandingNotFound
}

func (r *fakeStandingRepo) GetOrCreate(ctx context.Context, exec repositories.SQLExecutor, teamID int, group string) (*models.GroupStandingRow, error) {
	row, err := r.GetByTeamAndGroup(ctx, exec, teamID, group)
	if err == nil {
		return row, nil
	}
	fresh := &models.GroupStandingRow{TeamID: teamID, GroupLabel: group}
	if err := r.Upsert(ctx, exec, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (r *fakeStandingRepo) Upsert(ctx context.Context, exec repositories.SQLExecutor, row *models.GroupStandingRow) error {
	if r.rows[row.GroupLabel] == nil {
		r.rows[row.GroupLabel] = make(map[int]*models.GroupStandingRow)
	}
	if existing, ok := r.rows[row.GroupLabel][row.TeamID]; ok {
		row.ID = existing.ID
	} else {
		r.nextID++
		row.ID = r.nextID
	}
	copied := *row
	r.rows[row.GroupLabel][row.TeamID] = &copied
	return nil
}

func (r *fakeStandingRepo) ListByGroup(ctx context.Context, exec repositories.SQLExecutor, group string) ([]models.GroupStandingRow, error) {
	rows := make([]models.GroupStandingRow, 0)
	for _, row := range r.rows[group] {
		copied := *row
		copied.GoalDiff = copied.GoalsFor - copied.GoalsAgainst
		rows = append(rows, copied)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDiff != rows[j].GoalDiff {
			return rows[i].GoalDiff > rows[j].GoalDiff
		}
		return rows[i].TeamID < rows[j].TeamID
	})
	return rows, nil
}

func (r *fakeStandingRepo) DeleteByGroup(ctx context.Context, exec repositories.SQLExecutor, group string) error {
	delete(r.rows, group)
	return nil
}
