package scoring

import (
	"sort"

	"github.com/scorebet/prediction-league/models"
)

// BuildLeaderboard sums each user's prediction points into the primary
// ranking: total points descending, nickname ascending on ties.
func BuildLeaderboard(users []models.User, predictions []*models.Prediction) []models.LeaderboardRow {
	totals := make(map[int]*models.LeaderboardRow, len(users))
	rows := make([]models.LeaderboardRow, 0, len(users))

	for _, u := range users {
		rows = append(rows, models.LeaderboardRow{
			UserID:   u.ID,
			Nickname: u.Nickname,
		})
	}
	for i := range rows {
		totals[rows[i].UserID] = &rows[i]
	}

	for _, p := range predictions {
		row, ok := totals[p.UserID]
		if !ok {
			continue
		}
		row.TotalPoints += p.Points
		row.TotalBets++
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		return rows[i].Nickname < rows[j].Nickname
	})

	return rows
}

// BuildWorstValue derives the "lowest performers" ranking from leaderboard
// rows: points per bet ascending, restricted to users with at least one bet.
// At an equal ratio the user with more bets sorts first.
func BuildWorstValue(rows []models.LeaderboardRow) []models.WorstValueRow {
	worst := make([]models.WorstValueRow, 0, len(rows))
	for _, row := range rows {
		if row.TotalBets < 1 {
			continue
		}
		worst = append(worst, models.WorstValueRow{
			UserID:       row.UserID,
			Nickname:     row.Nickname,
			TotalPoints:  row.TotalPoints,
			TotalBets:    row.TotalBets,
			PointsPerBet: float64(row.TotalPoints) / float64(row.TotalBets),
		})
	}

	sort.SliceStable(worst, func(i, j int) bool {
		if worst[i].PointsPerBet != worst[j].PointsPerBet {
			return worst[i].PointsPerBet < worst[j].PointsPerBet
		}
		return worst[i].TotalBets > worst[j].TotalBets
	})

	return worst
}
