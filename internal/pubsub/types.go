package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventProcessMatches EventType = "process-matches"
	EventSyncMatches    EventType = "sync-matches"
	EventNotifyResult   EventType = "notify-result"
	EventNotifyStreak   EventType = "notify-streak"
)

// ResultEvent is published when a match result has been recorded.
type ResultEvent struct {
	MatchID string `msgpack:"match_id"`
}

// StreakEvent is published when a player reaches a streak milestone.
type StreakEvent struct {
	PlayerID string `msgpack:"player_id"`
	Streak   int    `msgpack:"streak"`
}
