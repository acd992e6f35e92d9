package club

import (
	"github.com/mbakke/courtside/internal/streaks"
	"github.com/mbakke/courtside/internal/synergy"
)

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	UpsertPlayer(p PlayerInfo) error
	UpsertPlayers(players []PlayerInfo) error
	GetPlayer(playerID string) (*PlayerInfo, error)
	GetPlayerByName(name string) (*PlayerInfo, error)
	GetAllPlayers() ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool

	UpsertMatch(m *Match) error
	GetMatch(matchID string) (*Match, error)
	ListMatches(f MatchFilter) ([]*Match, error)
	GetMatchesForProcessing() ([]*Match, error)
	UpdateProcessingStatus(matchID string, status ProcessingStatus) error
	RecordResult(matchID string, winner Team, score string) error

	// PlayerResults returns one row per match for the player, ordered by
	// played_at ascending. The streak analyzer depends on this ordering.
	PlayerResults(playerID string) ([]streaks.MatchResult, error)
	// GroupResults returns the whole club's result feed ordered by
	// (player_id, played_at) ascending, for the batch streak computation.
	GroupResults() ([]streaks.MatchResult, error)

	ApplyRatings(matchID string) error
	GetLeaderboard() ([]PlayerStats, error)

	GetPartnership(playerA, playerB string) (*synergy.Partnership, error)
	TopPartnerships(limit int) ([]synergy.Partnership, error)
	GetHeadToHead(playerA, playerB string) (*HeadToHead, error)

	CreateInvite(inviterID, invitee string) (string, error)
	SetAttendance(matchID, playerID string, status AttendanceStatus) error

	UpsertVenue(v Venue) error
	ListVenues() ([]Venue, error)
	RateVenue(venueID, playerID string, rating int) error

	Clear()
	ClearMatch(matchID string)
}
