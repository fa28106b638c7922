package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorebet/prediction-league/models"
)

func TestBuildLeaderboard(t *testing.T) {
	users := []models.User{
		{ID: 1, Nickname: "ana"},
		{ID: 2, Nickname: "bo"},
		{ID: 3, Nickname: "cyd"},
	}
	predictions := []*models.Prediction{
		{UserID: 1, MatchID: 1, Points: 10},
		{UserID: 1, MatchID: 2, Points: 0},
		{UserID: 2, MatchID: 1, Points: 3},
		{UserID: 2, MatchID: 2, Points: 3},
		{UserID: 2, MatchID: 3, Points: 4},
		{UserID: 99, MatchID: 1, Points: 50}, // unknown user, ignored
	}

	rows := BuildLeaderboard(users, predictions)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].UserID)
	assert.Equal(t, 10, rows[0].TotalPoints)
	assert.Equal(t, 2, rows[0].TotalBets)

	assert.Equal(t, 2, rows[1].UserID)
	assert.Equal(t, 10, rows[1].TotalPoints)
	assert.Equal(t, 3, rows[1].TotalBets)

	assert.Equal(t, 3, rows[2].UserID)
	assert.Zero(t, rows[2].TotalPoints)
	assert.Zero(t, rows[2].TotalBets)
}

func TestBuildLeaderboardUnrelatedPredictionDoesNotLeak(t *testing.T) {
	users := []models.User{{ID: 1, Nickname: "ana"}}
	base := BuildLeaderboard(users, []*models.Prediction{{UserID: 1, Points: 7}})
	withNoise := BuildLeaderboard(users, []*models.Prediction{
		{UserID: 1, Points: 7},
		{UserID: 2, Points: 13},
	})
	assert.Equal(t, base[0].TotalPoints, withNoise[0].TotalPoints)
}

func TestBuildLeaderboardTieBrokenByNickname(t *testing.T) {
	users := []models.User{
		{ID: 5, Nickname: "zed"},
		{ID: 6, Nickname: "amy"},
	}
	predictions := []*models.Prediction{
		{UserID: 5, Points: 6},
		{UserID: 6, Points: 6},
	}
	rows := BuildLeaderboard(users, predictions)
	assert.Equal(t, "amy", rows[0].Nickname)
	assert.Equal(t, "zed", rows[1].Nickname)
}

func TestBuildWorstValue(t *testing.T) {
	rows := []models.LeaderboardRow{
		{UserID: 1, Nickname: "ana", TotalPoints: 10, TotalBets: 2}, // 5.0 per bet
		{UserID: 2, Nickname: "bo", TotalPoints: 3, TotalBets: 3},   // 1.0 per bet
		{UserID: 3, Nickname: "cyd", TotalPoints: 0, TotalBets: 0},  // excluded
		{UserID: 4, Nickname: "dee", TotalPoints: 1, TotalBets: 1},  // 1.0 per bet, fewer bets
	}

	worst := BuildWorstValue(rows)
	require.Len(t, worst, 3)

	// Equal ratio: more bets sorts worse (first).
	assert.Equal(t, 2, worst[0].UserID)
	assert.Equal(t, 4, worst[1].UserID)
	assert.Equal(t, 1, worst[2].UserID)

	for _, row := range worst {
		assert.NotEqual(t, 3, row.UserID)
	}
}

func TestBuildWorstValueExcludesZeroBetsEvenAtZeroPoints(t *testing.T) {
	rows := []models.LeaderboardRow{
		{UserID: 1, TotalPoints: 0, TotalBets: 0},
		{UserID: 2, TotalPoints: 0, TotalBets: 4},
	}
	worst := BuildWorstValue(rows)
	require.Len(t, worst, 1)
	assert.Equal(t, 2, worst[0].UserID)
	assert.Zero(t, worst[0].PointsPerBet)
}
