package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorebet/prediction-league/models"
)

func groupMatch(group string, team1, team2, score1, score2 int) *models.Match {
	return &models.Match{
		Team1ID:    team1,
		Team2ID:    team2,
		Status:     models.MatchStatusFinished,
		Phase:      models.PhaseGroup,
		GroupLabel: &group,
		Score1:     &score1,
		Score2:     &score2,
	}
}

func TestBuildGroupTable(t *testing.T) {
	groupA := "A"
	teams := []models.Team{
		{ID: 1, Name: "Alpha", GroupLabel: &groupA},
		{ID: 2, Name: "Beta", GroupLabel: &groupA},
		{ID: 3, Name: "Gamma", GroupLabel: &groupA},
	}
	matches := []*models.Match{
		groupMatch("A", 1, 2, 2, 0), // Alpha beats Beta
		groupMatch("A", 2, 3, 1, 1), // Beta draws Gamma
		groupMatch("A", 3, 1, 0, 1), // Alpha beats Gamma
	}

	rows := BuildGroupTable("A", teams, matches)
	require.Len(t, rows, 3)

	want := []models.GroupStandingRow{
		{TeamID: 1, TeamName: "Alpha", GroupLabel: "A", Points: 6, GoalsFor: 3, GoalsAgainst: 0, MatchesPlayed: 2, GoalDiff: 3},
		{TeamID: 2, TeamName: "Beta", GroupLabel: "A", Points: 1, GoalsFor: 1, GoalsAgainst: 3, MatchesPlayed: 2, GoalDiff: -2},
		{TeamID: 3, TeamName: "Gamma", GroupLabel: "A", Points: 1, GoalsFor: 1, GoalsAgainst: 2, MatchesPlayed: 2, GoalDiff: -1},
	}
	// Gamma outranks Beta on goal difference at equal points.
	assert.Equal(t, []int{1, 3, 2}, []int{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID})

	byID := map[int]models.GroupStandingRow{}
	for _, row := range rows {
		byID[row.TeamID] = row
	}
	for _, w := range want {
		got := byID[w.TeamID]
		if diff := cmp.Diff(w, got, cmpopts.IgnoreFields(models.GroupStandingRow{}, "ID", "UpdatedAt")); diff != "" {
			t.Errorf("row for team %d mismatch (-want +got):\n%s", w.TeamID, diff)
		}
	}
}

func TestBuildGroupTableSkipsUnresolvedAndForeignMatches(t *testing.T) {
	groupA, groupB := "A", "B"
	teams := []models.Team{
		{ID: 1, Name: "Alpha", GroupLabel: &groupA},
		{ID: 2, Name: "Beta", GroupLabel: &groupA},
	}

	calculating := groupMatch("A", 1, 2, 0, 0)
	calculating.Score1 = nil
	calculating.Score2 = nil

	upcoming := groupMatch("A", 1, 2, 0, 0)
	upcoming.Status = models.MatchStatusUpcoming

	knockout := groupMatch("A", 1, 2, 3, 0)
	knockout.Phase = models.PhaseQuarter

	otherGroup := groupMatch("B", 1, 2, 3, 0)
	otherGroup.GroupLabel = &groupB

	rows := BuildGroupTable("A", teams, []*models.Match{calculating, upcoming, knockout, otherGroup})
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Zero(t, row.MatchesPlayed)
		assert.Zero(t, row.Points)
	}
}

func TestBuildGroupTableExcludesUnassignedTeams(t *testing.T) {
	groupA := "A"
	teams := []models.Team{
		{ID: 1, Name: "Alpha", GroupLabel: &groupA},
		{ID: 2, Name: "Nomad"}, // no group assignment
	}
	rows := BuildGroupTable("A", teams, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].TeamID)
}

func TestSortStandingsRecomputesGoalDiff(t *testing.T) {
	rows := []models.GroupStandingRow{
		{TeamID: 1, Points: 4, GoalsFor: 2, GoalsAgainst: 5, GoalDiff: 99}, // stored diff is stale
		{TeamID: 2, Points: 4, GoalsFor: 6, GoalsAgainst: 1},
		{TeamID: 3, Points: 7, GoalsFor: 1, GoalsAgainst: 1},
	}
	SortStandings(rows)

	assert.Equal(t, []int{3, 2, 1}, []int{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID})
	assert.Equal(t, -3, rows[2].GoalDiff)
	assert.Equal(t, 5, rows[1].GoalDiff)
}
