package club

import (
	"sync"

	"github.com/mbakke/courtside/internal/streaks"
	"github.com/mbakke/courtside/internal/synergy"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertPlayerFunc            func(p PlayerInfo) error
	UpsertPlayersFunc           func(players []PlayerInfo) error
	GetPlayerFunc               func(playerID string) (*PlayerInfo, error)
	GetPlayerByNameFunc         func(name string) (*PlayerInfo, error)
	GetAllPlayersFunc           func() ([]PlayerInfo, error)
	IsKnownPlayerFunc           func(playerID string) bool
	UpsertMatchFunc             func(m *Match) error
	GetMatchFunc                func(matchID string) (*Match, error)
	ListMatchesFunc             func(f MatchFilter) ([]*Match, error)
	GetMatchesForProcessingFunc func() ([]*Match, error)
	UpdateProcessingStatusFunc  func(matchID string, status ProcessingStatus) error
	RecordResultFunc            func(matchID string, winner Team, score string) error
	PlayerResultsFunc           func(playerID string) ([]streaks.MatchResult, error)
	GroupResultsFunc            func() ([]streaks.MatchResult, error)
	ApplyRatingsFunc            func(matchID string) error
	GetLeaderboardFunc          func() ([]PlayerStats, error)
	GetPartnershipFunc          func(playerA, playerB string) (*synergy.Partnership, error)
	TopPartnershipsFunc         func(limit int) ([]synergy.Partnership, error)
	GetHeadToHeadFunc           func(playerA, playerB string) (*HeadToHead, error)
	CreateInviteFunc            func(inviterID, invitee string) (string, error)
	SetAttendanceFunc           func(matchID, playerID string, status AttendanceStatus) error
	UpsertVenueFunc             func(v Venue) error
	ListVenuesFunc              func() ([]Venue, error)
	RateVenueFunc               func(venueID, playerID string, rating int) error

	// Call records
	UpsertPlayerCalls           []PlayerInfo
	UpsertMatchCalls            []*Match
	RecordResultCalls           []struct {
		MatchID string
		Winner  Team
		Score   string
	}
	UpdateProcessingStatusCalls []struct {
		MatchID string
		Status  ProcessingStatus
	}
	ApplyRatingsCalls []string
	ClearCalls        int
	ClearMatchCalls   []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertPlayer(p PlayerInfo) error {
	m.mu.Lock()
	m.UpsertPlayerCalls = append(m.UpsertPlayerCalls, p)
	m.mu.Unlock()
	if m.UpsertPlayerFunc != nil {
		return m.UpsertPlayerFunc(p)
	}
	return nil
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID string) (*PlayerInfo, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return &PlayerInfo{ID: playerID}, nil
}

func (m *MockStore) GetPlayerByName(name string) (*PlayerInfo, error) {
	if m.GetPlayerByNameFunc != nil {
		return m.GetPlayerByNameFunc(name)
	}
	return &PlayerInfo{Name: name}, nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return true
}

func (m *MockStore) UpsertMatch(match *Match) error {
	m.mu.Lock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match)
	m.mu.Unlock()
	if m.UpsertMatchFunc != nil {
		return m.UpsertMatchFunc(match)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return &Match{ID: matchID}, nil
}

func (m *MockStore) ListMatches(f MatchFilter) ([]*Match, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(f)
	}
	return nil, nil
}

func (m *MockStore) GetMatchesForProcessing() ([]*Match, error) {
	if m.GetMatchesForProcessingFunc != nil {
		return m.GetMatchesForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProcessingStatus(matchID string, status ProcessingStatus) error {
	m.mu.Lock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		MatchID string
		Status  ProcessingStatus
	}{matchID, status})
	m.mu.Unlock()
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(matchID, status)
	}
	return nil
}

func (m *MockStore) RecordResult(matchID string, winner Team, score string) error {
	m.mu.Lock()
	m.RecordResultCalls = append(m.RecordResultCalls, struct {
		MatchID string
		Winner  Team
		Score   string
	}{matchID, winner, score})
	m.mu.Unlock()
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(matchID, winner, score)
	}
	return nil
}

func (m *MockStore) PlayerResults(playerID string) ([]streaks.MatchResult, error) {
	if m.PlayerResultsFunc != nil {
		return m.PlayerResultsFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) GroupResults() ([]streaks.MatchResult, error) {
	if m.GroupResultsFunc != nil {
		return m.GroupResultsFunc()
	}
	return nil, nil
}

func (m *MockStore) ApplyRatings(matchID string) error {
	m.mu.Lock()
	m.ApplyRatingsCalls = append(m.ApplyRatingsCalls, matchID)
	m.mu.Unlock()
	if m.ApplyRatingsFunc != nil {
		return m.ApplyRatingsFunc(matchID)
	}
	return nil
}

func (m *MockStore) GetLeaderboard() ([]PlayerStats, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPartnership(playerA, playerB string) (*synergy.Partnership, error) {
	if m.GetPartnershipFunc != nil {
		return m.GetPartnershipFunc(playerA, playerB)
	}
	return &synergy.Partnership{PlayerAID: playerA, PlayerBID: playerB}, nil
}

func (m *MockStore) TopPartnerships(limit int) ([]synergy.Partnership, error) {
	if m.TopPartnershipsFunc != nil {
		return m.TopPartnershipsFunc(limit)
	}
	return nil, nil
}

func (m *MockStore) GetHeadToHead(playerA, playerB string) (*HeadToHead, error) {
	if m.GetHeadToHeadFunc != nil {
		return m.GetHeadToHeadFunc(playerA, playerB)
	}
	return &HeadToHead{PlayerAID: playerA, PlayerBID: playerB}, nil
}

func (m *MockStore) CreateInvite(inviterID, invitee string) (string, error) {
	if m.CreateInviteFunc != nil {
		return m.CreateInviteFunc(inviterID, invitee)
	}
	return "mock-invite-id", nil
}

func (m *MockStore) SetAttendance(matchID, playerID string, status AttendanceStatus) error {
	if m.SetAttendanceFunc != nil {
		return m.SetAttendanceFunc(matchID, playerID, status)
	}
	return nil
}

func (m *MockStore) UpsertVenue(v Venue) error {
	if m.UpsertVenueFunc != nil {
		return m.UpsertVenueFunc(v)
	}
	return nil
}

func (m *MockStore) ListVenues() ([]Venue, error) {
	if m.ListVenuesFunc != nil {
		return m.ListVenuesFunc()
	}
	return nil, nil
}

func (m *MockStore) RateVenue(venueID, playerID string, rating int) error {
	if m.RateVenueFunc != nil {
		return m.RateVenueFunc(venueID, playerID, rating)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	m.mu.Unlock()
}
