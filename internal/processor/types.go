package processor

import (
	"github.com/mbakke/courtside/internal/metrics"
	"github.com/mbakke/courtside/internal/pubsub"
)

// Processor handles the business logic of processing matches.
type Processor struct {
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
}
