package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/wordpuzzle/internal/api"
	"github.com/vytor/wordpuzzle/internal/config"
	"github.com/vytor/wordpuzzle/internal/db"
	"github.com/vytor/wordpuzzle/internal/engine"
	"github.com/vytor/wordpuzzle/internal/jobs"
	"github.com/vytor/wordpuzzle/internal/logger"
	"github.com/vytor/wordpuzzle/internal/puzzlegen"
	"github.com/vytor/wordpuzzle/internal/repository"
	"github.com/vytor/wordpuzzle/internal/repository/memory"
	"github.com/vytor/wordpuzzle/internal/repository/sqlite"
	"github.com/vytor/wordpuzzle/internal/services"
	"github.com/vytor/wordpuzzle/internal/worker"
)

// memoryDBPath selects the in-process store. Nothing survives a restart.
const memoryDBPath = "memory"

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Word Puzzle Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("ollama_url=%s", cfg.OllamaURL)
	log.Debug("ollama_model=%s", cfg.OllamaModel)
	log.Debug("retention_days=%d", cfg.RetentionDays)
	log.Debug("sweep_interval=%v", cfg.SweepInterval)

	// Open storage
	var (
		puzzleRepo repository.PuzzleRepository
		gameRepo   repository.GameRepository
		ready      api.ReadyChecker
	)
	if cfg.DBPath == memoryDBPath {
		log.Warn("using in-memory store, games are lost on restart")
		store := memory.NewStore(nil)
		puzzleRepo, gameRepo = store.Puzzles(), store.Games()
	} else {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			log.Error("failed to open database: %v", err)
			os.Exit(1)
		}
		defer func() {
			log.Debug("closing database connection")
			database.Close()
		}()
		puzzleRepo = sqlite.NewPuzzleRepository(database.DB)
		gameRepo = sqlite.NewGameRepository(database.DB)
		ready = database
	}

	// Puzzle source
	var generator puzzlegen.Generator
	if cfg.OllamaURL != "" {
		log.Info("generating puzzles with %s at %s", cfg.OllamaModel, cfg.OllamaURL)
		client := puzzlegen.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.GenerateTimeout)
		generator = puzzlegen.NewFallbackGenerator(puzzlegen.NewAIGenerator(client, nil, nil), nil)
	} else {
		log.Info("OLLAMA_URL not set, serving built-in puzzles")
		generator = puzzlegen.NewStatic(nil)
	}

	// Initialize services
	sessionService := services.NewSessionService(puzzleRepo, gameRepo, generator, time.Now)
	gameService := services.NewGameService(gameRepo, engine.New())
	retentionService := services.NewRetentionService(gameRepo, cfg.RetentionDays)

	srv := &api.Server{
		SessionService: sessionService,
		GameService:    gameService,
		Store:          ready,
		RequestTimeout: cfg.GenerateTimeout + 10*time.Second,
		Log:            log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start(ctx)
	go jobs.Schedule(logger.NewContext(ctx, log), jobs.NewWorkerQueue(pool, retentionService, nil), cfg.SweepInterval)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: srv.RequestTimeout + 5*time.Second,
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Stop the scheduler and drain the pool
	cancel()
	pool.Stop()

	log.Info("===========================================")
	log.Info("Word Puzzle Server Stopped")
	log.Info("===========================================")
}
