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

func NewServer(store club.ClubStore, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, syncer *playtomic.Syncer, notifier notifier.Notifier, processor *processor.Processor, limiter *ratelimit.Store, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Syncer:         syncer,
		Notifier:       notifier,
		Processor:      processor,
		Limiter:        limiter,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Mutation endpoints additionally go through the per-type rate limiter.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))

	s.Router.Handle("GET /members", Chain(s.ListMembersHandler(), paramsMiddleware))
	s.Router.Handle("GET /members/streaks", Chain(s.GroupStreaksHandler(), paramsMiddleware))
	s.Router.Handle("GET /player/streaks", Chain(s.PlayerStreaksHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /partnerships", Chain(s.PartnershipsHandler(), paramsMiddleware))
	s.Router.Handle("GET /partnership", Chain(s.PartnershipHandler(), paramsMiddleware))
	s.Router.Handle("GET /head-to-head", Chain(s.HeadToHeadHandler(), paramsMiddleware))
	s.Router.Handle("GET /venues", Chain(s.ListVenuesHandler(), paramsMiddleware))

	s.Router.Handle("POST /players", Chain(s.UpsertPlayerHandler(), paramsMiddleware, s.rateLimit(ratelimit.TypePlayer)))
	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware, s.rateLimit(ratelimit.TypeMatch)))
	s.Router.Handle("POST /results", Chain(s.RecordResultHandler(), paramsMiddleware, s.rateLimit(ratelimit.TypeMatch)))
	s.Router.Handle("POST /invites", Chain(s.CreateInviteHandler(), paramsMiddleware, s.rateLimit(ratelimit.TypeInvite)))
	s.Router.Handle("POST /attendance", Chain(s.SetAttendanceHandler(), paramsMiddleware, s.rateLimit(ratelimit.TypeAttendance)))
	s.Router.Handle("POST /venues", Chain(s.UpsertVenueHandler(), paramsMiddleware, s.rateLimit(ratelimit.TypeVenue)))
	s.Router.Handle("POST /venues/rate", Chain(s.RateVenueHandler(), paramsMiddleware, s.rateLimit(ratelimit.TypeVenue)))

	s.Router.Handle("/sync", Chain(s.SyncMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/streak", Chain(s.StreakEventHandler(), paramsMiddleware))

	s.Router.Handle("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/streaks", Chain(s.StreaksCommandHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/partnerships", Chain(s.PartnershipsCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
