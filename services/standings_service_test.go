package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorebet/prediction-league/models"
)

func groupTestMatch(id, team1, team2, score1, score2 int) *models.Match {
	m := finishedMatch(id, team1, team2, score1, score2)
	m.Phase = models.PhaseGroup
	m.GroupLabel = strPtr("A")
	return m
}

func TestGetGroupStandingsDerivesWhenCacheEmpty(t *testing.T) {
	groupA := "A"
	teamRepo := &fakeTeamRepo{teams: []models.Team{
		{ID: 1, Name: "Alpha", GroupLabel: &groupA},
		{ID: 2, Name: "Beta", GroupLabel: &groupA},
	}}
	matchRepo := newFakeMatchRepo(groupTestMatch(1, 1, 2, 3, 1))
	standingRepo := newFakeStandingRepo()

	svc := NewStandingsService(nil, teamRepo, matchRepo, standingRepo)
	rows, err := svc.GetGroupStandings(context.Background(), "A")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].TeamID)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 2, rows[0].GoalDiff)
	assert.Equal(t, 0, rows[1].Points)
}

func TestGetGroupStandingsReadsCacheAndRecomputesGoalDiff(t *testing.T) {
	standingRepo := newFakeStandingRepo()
	require.NoError(t, standingRepo.Upsert(context.Background(), nil, &models.GroupStandingRow{
		TeamID: 1, GroupLabel: "A", Points: 4, GoalsFor: 5, GoalsAgainst: 2,
	}))
	require.NoError(t, standingRepo.Upsert(context.Background(), nil, &models.GroupStandingRow{
		TeamID: 2, GroupLabel: "A", Points: 4, GoalsFor: 6, GoalsAgainst: 1,
	}))

	svc := NewStandingsService(nil, &fakeTeamRepo{}, newFakeMatchRepo(), standingRepo)
	rows, err := svc.GetGroupStandings(context.Background(), "A")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Equal points: team 2 wins on goal difference.
	assert.Equal(t, 2, rows[0].TeamID)
	assert.Equal(t, 5, rows[0].GoalDiff)
	assert.Equal(t, 3, rows[1].GoalDiff)
}

func TestGetGroupStandingsRequiresGroup(t *testing.T) {
	svc := NewStandingsService(nil, &fakeTeamRepo{}, newFakeMatchRepo(), newFakeStandingRepo())
	_, err := svc.GetGroupStandings(context.Background(), "")
	assert.ErrorIs(t, err, ErrGroupLabelRequired)
}

func TestOverrideStandingPartialFields(t *testing.T) {
	groupA := "A"
	teamRepo := &fakeTeamRepo{teams: []models.Team{{ID: 1, Name: "Alpha", GroupLabel: &groupA}}}
	standingRepo := newFakeStandingRepo()
	require.NoError(t, standingRepo.Upsert(context.Background(), nil, &models.GroupStandingRow{
		TeamID: 1, GroupLabel: "A", Points: 6, GoalsFor: 4, GoalsAgainst: 1, MatchesPlayed: 2,
	}))

	svc := NewStandingsService(nil, teamRepo, newFakeMatchRepo(), standingRepo)
	row, err := svc.OverrideStanding(context.Background(), StandingOverrideInput{
		TeamID:     1,
		GroupLabel: "A",
		Points:     intPtr(4),
	})
	require.NoError(t, err)

	// Only points changed, everything else kept its stored value.
	assert.Equal(t, 4, row.Points)
	assert.Equal(t, 4, row.GoalsFor)
	assert.Equal(t, 1, row.GoalsAgainst)
	assert.Equal(t, 2, row.MatchesPlayed)
	assert.Equal(t, 3, row.GoalDiff)
}

func TestOverrideStandingCreatesMissingRow(t *testing.T) {
	groupA := "A"
	teamRepo := &fakeTeamRepo{teams: []models.Team{{ID: 1, Name: "Alpha", GroupLabel: &groupA}}}
	standingRepo := newFakeStandingRepo()

	svc := NewStandingsService(nil, teamRepo, newFakeMatchRepo(), standingRepo)
	row, err := svc.OverrideStanding(context.Background(), StandingOverrideInput{
		TeamID:     1,
		GroupLabel: "A",
		GoalsFor:   intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, row.GoalsFor)
	assert.Zero(t, row.Points)
}

func TestOverrideStandingUnknownTeam(t *testing.T) {
	svc := NewStandingsService(nil, &fakeTeamRepo{}, newFakeMatchRepo(), newFakeStandingRepo())
	_, err := svc.OverrideStanding(context.Background(), StandingOverrideInput{TeamID: 9, GroupLabel: "A"})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}
