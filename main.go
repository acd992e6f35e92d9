package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mbakke/courtside/internal/club"
	"github.com/mbakke/courtside/internal/config"
	"github.com/mbakke/courtside/internal/database"
	server "github.com/mbakke/courtside/internal/http"
	"github.com/mbakke/courtside/internal/metrics"
	"github.com/mbakke/courtside/internal/notifier/slack"
	"github.com/mbakke/courtside/internal/playtomic"
	"github.com/mbakke/courtside/internal/processor"
	"github.com/mbakke/courtside/internal/pubsub"
	"github.com/mbakke/courtside/internal/ratelimit"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clubStore := club.New(db)
	metricsSvc := metrics.NewService()
	metricsStore := metrics.New(db)
	metricsHandler := metrics.NewMetricsHandler()
	playtomicClient := playtomic.NewClient()
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	pubsubClient := pubsub.New(cfg.ProjectID)
	proc := processor.New(clubStore, notifier, metricsSvc, pubsubClient)
	syncer := playtomic.NewSyncer(playtomicClient, clubStore, metricsSvc, cfg.Playtomic.TenantID)

	limiter := ratelimit.New(ratelimit.DefaultConfigs())
	limiter.Start()
	defer limiter.Stop()

	s := server.NewServer(
		clubStore,
		metricsSvc,
		metricsStore,
		metricsHandler,
		cfg,
		syncer,
		notifier,
		proc,
		limiter,
		pubsubClient,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
