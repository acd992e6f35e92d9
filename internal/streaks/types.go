package streaks

// Outcome is the result of a single match from one player's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// MatchResult is one (player, match) row from the club store's result feed.
// PlayerID is only populated for the group feed.
type MatchResult struct {
	PlayerID string `json:"player_id,omitempty"`
	MatchID  string `json:"match_id"`
	IsWin    bool   `json:"is_win"`
	PlayedAt int64  `json:"played_at"` // Unix timestamp
}

// Run describes one maximal sequence of consecutive same-outcome matches.
type Run struct {
	Length       int     `json:"streak"`
	Type         Outcome `json:"type"`
	StartMatchID string  `json:"start_match_id"`
	EndMatchID   string  `json:"end_match_id"`
	StartedAt    int64   `json:"start_date"`
	EndedAt      int64   `json:"end_date"`
}

// PlayerStreaks is the full streak summary for a single player.
// Current is signed: positive for an active win streak, negative for an
// active loss streak, zero when the player has no matches.
type PlayerStreaks struct {
	Current     int   `json:"current_streak"`
	LongestWin  int   `json:"longest_win_streak"`
	LongestLoss int   `json:"longest_loss_streak"`
	History     []Run `json:"streak_history"`
}

// Summary is the lighter per-player result of the group computation. It
// deliberately omits the run history to keep roster-wide payloads small;
// callers needing history fetch the single player's feed instead.
type Summary struct {
	Current     int `json:"current_streak"`
	LongestWin  int `json:"longest_win_streak"`
	LongestLoss int `json:"longest_loss_streak"`
}
