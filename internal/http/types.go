package http

import (
	"net/http"

	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/config"
	"github.com/mbakke/courtside/internal/metrics"
	"github.com/mbakke/courtside/internal/notifier"
	"github.com/mbakke/courtside/internal/playtomic"
	"github.com/mbakke/courtside/internal/processor"
	"github.com/mbakke/courtside/internal/pubsub"
	"github.com/mbakke/courtside/internal/ratelimit"
)

type Server struct {
	Store          club.ClubStore
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Syncer         *playtomic.Syncer
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Limiter        *ratelimit.Store
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
