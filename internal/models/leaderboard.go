package models

type LeaderboardItem struct {
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	Score          float64 `json:"score"`
	Rank           int     `json:"rank,omitempty"`
	Level          int     `json:"level,omitempty"`
	Prestige       int     `json:"prestige,omitempty"`
	EffectiveLevel int     `json:"effective_level,omitempty"`
}

type LeaderboardResponse struct {
	Leaderboard []*LeaderboardItem `json:"leaderboard"`
	Me          *LeaderboardItem   `json:"me"`
}
