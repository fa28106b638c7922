package scoring

import (
	"sort"

	"github.com/scorebet/prediction-league/models"
)

// Group-stage points per match result.
const (
	WinPoints  = 3
	DrawPoints = 1
	LossPoints = 0
)

// BuildGroupTable folds the finished group-phase matches of one group into
// ordered standing rows. Teams whose group assignment does not match the
// requested group are excluded. Ordering: points descending, then goal
// difference descending; further ties keep team order stable.
func BuildGroupTable(group string, teams []models.Team, matches []*models.Match) []models.GroupStandingRow {
	index := make(map[int]*models.GroupStandingRow)
	rows := make([]models.GroupStandingRow, 0, len(teams))

	for _, t := range teams {
		if t.GroupLabel == nil || *t.GroupLabel != group {
			continue
		}
		rows = append(rows, models.GroupStandingRow{
			TeamID:     t.ID,
			TeamName:   t.Name,
			GroupLabel: group,
		})
	}
	for i := range rows {
		index[rows[i].TeamID] = &rows[i]
	}

	for _, m := range matches {
		if m.Phase != models.PhaseGroup || m.GroupLabel == nil || *m.GroupLabel != group {
			continue
		}
		result, ok := ResolveMatch(m)
		if !ok {
			continue
		}
		applyResult(index[m.Team1ID], result.Score1, result.Score2)
		applyResult(index[m.Team2ID], result.Score2, result.Score1)
	}

	for i := range rows {
		rows[i].GoalDiff = rows[i].GoalsFor - rows[i].GoalsAgainst
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].GoalDiff > rows[j].GoalDiff
	})

	return rows
}

func applyResult(row *models.GroupStandingRow, scored, conceded int) {
	if row == nil {
		return
	}
	row.MatchesPlayed++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		row.Points += WinPoints
	case scored == conceded:
		row.Points += DrawPoints
	default:
		row.Points += LossPoints
	}
}

// SortStandings orders persisted standing rows the same way BuildGroupTable
// does, recomputing goal difference from its inputs first.
func SortStandings(rows []models.GroupStandingRow) {
	for i := range rows {
		rows[i].GoalDiff = rows[i].GoalsFor - rows[i].GoalsAgainst
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].GoalDiff > rows[j].GoalDiff
	})
}
