package notifier

import (
	"sync"

	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/streaks"
	"github.com/mbakke/courtside/internal/synergy"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendResultNotificationCalls []struct{ Match *club.Match }
	SendStreakMilestoneCalls    []struct {
		PlayerName string
		Streak     int
	}
	SendLeaderboardCalls   [][]club.PlayerStats
	SendPlayerStreaksCalls []struct {
		PlayerName string
		Streaks    streaks.PlayerStreaks
	}
	SendPlayerNotFoundCalls           []string
	FormatPlayerNotFoundResponseCalls []string

	// Spies
	SendResultNotificationFunc func(match *club.Match, names map[string]string, dryRun bool) error
	SendStreakMilestoneFunc    func(playerName string, streak int, dryRun bool) error

	FormatLeaderboardResponseFunc    func(stats []club.PlayerStats) (any, error)
	FormatStreaksResponseFunc        func(playerName string, ps streaks.PlayerStreaks) (any, error)
	FormatPartnershipsResponseFunc   func(partnerships []synergy.Partnership) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendStreakMilestoneCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendPlayerStreaksCalls = nil
	m.SendPlayerNotFoundCalls = nil
	m.FormatPlayerNotFoundResponseCalls = nil
}

func (m *Mock) SendResultNotification(match *club.Match, names map[string]string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, struct{ Match *club.Match }{match})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(match, names, dryRun)
	}
	return nil
}

func (m *Mock) SendStreakMilestone(playerName string, streak int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStreakMilestoneCalls = append(m.SendStreakMilestoneCalls, struct {
		PlayerName string
		Streak     int
	}{playerName, streak})
	if m.SendStreakMilestoneFunc != nil {
		return m.SendStreakMilestoneFunc(playerName, streak, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(stats []club.PlayerStats, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, stats)
	return nil
}

func (m *Mock) SendPlayerStreaks(playerName string, ps streaks.PlayerStreaks, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerStreaksCalls = append(m.SendPlayerStreaksCalls, struct {
		PlayerName string
		Streaks    streaks.PlayerStreaks
	}{playerName, ps})
	return nil
}

func (m *Mock) SendPlayerNotFound(query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerNotFoundCalls = append(m.SendPlayerNotFoundCalls, query)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(stats []club.PlayerStats) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(stats)
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatStreaksResponse(playerName string, ps streaks.PlayerStreaks) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatStreaksResponseFunc != nil {
		return m.FormatStreaksResponseFunc(playerName, ps)
	}
	return "formatted_streaks", nil
}

func (m *Mock) FormatPartnershipsResponse(partnerships []synergy.Partnership) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPartnershipsResponseFunc != nil {
		return m.FormatPartnershipsResponseFunc(partnerships)
	}
	return "formatted_partnerships", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerNotFoundResponseCalls = append(m.FormatPlayerNotFoundResponseCalls, query)
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return "formatted_player_not_found", nil
}
