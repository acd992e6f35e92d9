package notifier

import (
	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/streaks"
	"github.com/mbakke/courtside/internal/synergy"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For completed matches. The names map resolves player ids to display names.
	SendResultNotification(match *club.Match, names map[string]string, dryRun bool) error
	// For a player reaching a win or loss streak milestone.
	SendStreakMilestone(playerName string, streak int, dryRun bool) error
	// For slash commands
	SendLeaderboard(stats []club.PlayerStats, dryRun bool) error
	SendPlayerStreaks(playerName string, ps streaks.PlayerStreaks, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(stats []club.PlayerStats) (any, error)
	FormatStreaksResponse(playerName string, ps streaks.PlayerStreaks) (any, error)
	FormatPartnershipsResponse(partnerships []synergy.Partnership) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
