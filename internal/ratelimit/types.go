package ratelimit

import (
	"fmt"
	"time"
)

// Type names a class of mutation endpoint with its own limit configuration.
type Type string

const (
	TypeMatch      Type = "match"
	TypeInvite     Type = "invite"
	TypeEvent      Type = "event"
	TypePlayer     Type = "player"
	TypeVenue      Type = "venue"
	TypeAttendance Type = "attendance"
	TypeDefault    Type = "default"
)

// Config is the sliding-window limit for one endpoint type.
type Config struct {
	MaxRequests int
	Window      time.Duration
}

// DefaultConfigs returns the limit table for all known endpoint types.
// Adding a new mutation category means adding an entry here.
func DefaultConfigs() map[Type]Config {
	return map[Type]Config{
		TypeMatch:      {MaxRequests: 10, Window: time.Minute},
		TypeInvite:     {MaxRequests: 5, Window: time.Minute},
		TypeEvent:      {MaxRequests: 10, Window: time.Minute},
		TypePlayer:     {MaxRequests: 10, Window: time.Minute},
		TypeVenue:      {MaxRequests: 10, Window: time.Minute},
		TypeAttendance: {MaxRequests: 20, Window: time.Minute},
		TypeDefault:    {MaxRequests: 30, Window: time.Minute},
	}
}

// Result reports the outcome of a single rate-limit check.
type Result struct {
	Success    bool  `json:"success"`
	Limit      int   `json:"limit"`
	Remaining  int   `json:"remaining"`
	Reset      int64 `json:"reset"`                 // ms epoch when the window frees up
	RetryAfter int   `json:"retry_after,omitempty"` // seconds, only set on rejection
}

// LimitError is the typed error returned by Assert when a limit is exceeded.
// It carries enough detail for a caller to build an HTTP 429 response.
type LimitError struct {
	Type       Type
	Limit      int
	Remaining  int
	Reset      int64
	RetryAfter int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %q: retry after %ds", e.Type, e.RetryAfter)
}
