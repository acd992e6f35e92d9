package club

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Team identifies one side of a match.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// ProcessingStatus is the internal pipeline state of a match.
type ProcessingStatus string

const (
	StatusNew            ProcessingStatus = "NEW"
	StatusResultRecorded ProcessingStatus = "RESULT_RECORDED"
	StatusRated          ProcessingStatus = "RATED"
	StatusNotified       ProcessingStatus = "NOTIFIED"
	StatusCompleted      ProcessingStatus = "COMPLETED"
)

// PlayerInfo represents a player in the store.
type PlayerInfo struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Level  float64 `json:"level"`
	Rating float64 `json:"rating"`
}

// Match represents a padel match between two teams of player ids. Winner and
// Score stay empty until a result is recorded.
type Match struct {
	ID               string           `json:"id"`
	VenueID          string           `json:"venue_id,omitempty"`
	OwnerID          string           `json:"owner_id"`
	PlayedAt         int64            `json:"played_at"`
	CreatedAt        int64            `json:"created_at"`
	TeamA            []string         `json:"team_a"`
	TeamB            []string         `json:"team_b"`
	Winner           Team             `json:"winner,omitempty"`
	Score            string           `json:"score,omitempty"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
}

// MatchFilter narrows ListMatches. Zero values mean "no constraint".
type MatchFilter struct {
	PlayerID string
	VenueID  string
	Since    int64 // Unix timestamp, inclusive
	Limit    uint64
}

// PlayerStats is one leaderboard row, derived from the result feed.
type PlayerStats struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	MatchesLost   int     `json:"matches_lost"`
	WinPercentage float64 `json:"win_percentage"`
	Rating        float64 `json:"rating"`
}

// HeadToHead summarizes results between two players on opposing teams.
type HeadToHead struct {
	PlayerAID string `json:"player_a_id"`
	PlayerBID string `json:"player_b_id"`
	Matches   int    `json:"matches"`
	AWins     int    `json:"a_wins"`
	BWins     int    `json:"b_wins"`
}

// Venue is a court location, with the average of its 1-5 star ratings.
type Venue struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	City          string  `json:"city,omitempty"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// AttendanceStatus is a player's RSVP for an upcoming match.
type AttendanceStatus string

const (
	AttendanceIn    AttendanceStatus = "IN"
	AttendanceOut   AttendanceStatus = "OUT"
	AttendanceMaybe AttendanceStatus = "MAYBE"
)
