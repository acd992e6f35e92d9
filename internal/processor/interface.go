package processor

import (
	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/notifier"
	"github.com/mbakke/courtside/internal/streaks"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetMatchesForProcessing() ([]*club.Match, error)
	UpdateProcessingStatus(matchID string, status club.ProcessingStatus) error
	ApplyRatings(matchID string) error
	GetPlayer(playerID string) (*club.PlayerInfo, error)
	PlayerResults(playerID string) ([]streaks.MatchResult, error)
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
