package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhruvbhalode/capstone/internal/api"
	"github.com/dhruvbhalode/capstone/internal/auth"
	"github.com/dhruvbhalode/capstone/internal/config"
	"github.com/dhruvbhalode/capstone/internal/db"
	"github.com/dhruvbhalode/capstone/internal/jobs"
	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/oracle"
	"github.com/dhruvbhalode/capstone/internal/repository/sqlite"
	"github.com/dhruvbhalode/capstone/internal/services"
	"github.com/dhruvbhalode/capstone/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Capstone Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("oracle_url=%s", cfg.OracleURL)
	log.Debug("oracle_probe_interval=%ds", cfg.OracleProbeIntervalSecs)
	log.Debug("oracle_target_difficulty=%.2f", cfg.OracleTargetDifficulty)
	log.Debug("mcq_pass_percent=%d", cfg.MCQPassPercent)
	log.Debug("candidate_pool_size=%d", cfg.CandidatePoolSize)
	log.Debug("shortlist_size=%d", cfg.ShortlistSize)
	log.Debug("forward_worker_count=%d", cfg.ForwardWorkerCount)
	log.Debug("forward_queue_size=%d", cfg.ForwardQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	userRepo := sqlite.NewUserRepository(database.DB)
	problemRepo := sqlite.NewProblemRepository(database.DB)
	interactionRepo := sqlite.NewInteractionRepository(database.DB)

	// Initialize oracle gateway
	oracleClient := oracle.New(
		cfg.OracleURL,
		time.Duration(cfg.OracleProbeTimeoutSecs)*time.Second,
		time.Duration(cfg.OracleRequestTimeoutSecs)*time.Second,
	)
	gateway := oracle.NewGateway(oracleClient, time.Duration(cfg.OracleProbeIntervalSecs)*time.Second)

	// Initialize worker pool for oracle forwards
	forwardPool := worker.NewPool(cfg.ForwardWorkerCount, cfg.ForwardQueueSize)
	queue := jobs.NewWorkerQueue(forwardPool, gateway)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	userService := services.NewUserService(userRepo, tokens)
	problemService := services.NewProblemService(problemRepo)
	interactionService := services.NewInteractionService(interactionRepo, userRepo, problemRepo, queue, cfg.MCQPassPercent)
	recommendationService := services.NewRecommendationService(interactionRepo, problemRepo, userRepo, gateway, services.RecommendationPolicy{
		CandidatePoolSize: cfg.CandidatePoolSize,
		ShortlistSize:     cfg.ShortlistSize,
		TargetDifficulty:  cfg.OracleTargetDifficulty,
	})
	analyticsService := services.NewAnalyticsService(interactionRepo, userRepo, gateway)

	srv := &api.Server{
		UserService:           userService,
		ProblemService:        problemService,
		InteractionService:    interactionService,
		RecommendationService: recommendationService,
		AnalyticsService:      analyticsService,
		Gateway:               gateway,
		Tokens:                tokens,
		DB:                    database,
	}

	ctx, cancel := context.WithCancel(context.Background())
	gateway.Start(ctx)
	forwardPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first so no new work arrives.
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping probe loop")
	gateway.Stop()

	log.Debug("stopping forward pool")
	cancel()
	forwardPool.Stop()

	log.Info("===========================================")
	log.Info("Capstone Server Stopped")
	log.Info("===========================================")
}
