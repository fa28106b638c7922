package models

// LeaderboardRow is a pure re-derivation from the prediction set; rank is
// positional, not stored.
type LeaderboardRow struct {
	UserID      int    `json:"user_id"`
	Nickname    string `json:"nickname"`
	TotalPoints int    `json:"total_points"`
	TotalBets   int    `json:"total_bets"`
}

// WorstValueRow ranks users by points per bet, ascending. Users with no
// bets are excluded.
type WorstValueRow struct {
	UserID       int     `json:"user_id"`
	Nickname     string  `json:"nickname"`
	TotalPoints  int     `json:"total_points"`
	TotalBets    int     `json:"total_bets"`
	PointsPerBet float64 `json:"points_per_bet"`
}
