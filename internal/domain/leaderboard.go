package domain

import "time"

// LeaderboardEntry is a snapshot-friendly view of a player.
type LeaderboardEntry struct {
	PlayerID   string `json:"playerId"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Answered   int    `json:"answered"`
	LastResult Result `json:"lastResult,omitempty"`
}

// Leaderboard captures the ordered scoreboard of the running game.
type Leaderboard struct {
	Phase     string             `json:"phase"`
	Round     int                `json:"round"`
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
