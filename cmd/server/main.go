package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/marinai/marinai-backend/internal/config"
	"github.com/marinai/marinai-backend/internal/database"
	"github.com/marinai/marinai-backend/internal/handler"
	"github.com/marinai/marinai-backend/internal/imagepath"
	"github.com/marinai/marinai-backend/internal/logger"
	"github.com/marinai/marinai-backend/internal/repository"
	"github.com/marinai/marinai-backend/internal/router"
	"github.com/marinai/marinai-backend/internal/service"
	"github.com/marinai/marinai-backend/internal/validator"
	"github.com/marinai/marinai-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log, closeLog := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	defer closeLog()
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("media", cfg.MediaBasePath).
		Msg("Starting MarinAI Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	examSetRepo := repository.NewExamSetRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	attemptRepo := repository.NewAttemptSetRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	mediaRoot := os.DirFS(cfg.MediaBasePath)
	images := imagepath.NewResolver(mediaRoot, log)
	poolCache := service.NewRedisPoolCache(rdb, cfg.PoolCacheTTL)
	totalsQueue := worker.NewTotalsQueue(rdb)

	authService := service.NewAuthService(cfg, userRepo, log)
	solveService := service.NewSolveService(examSetRepo, questionRepo, attemptRepo, images, log)
	cbtService := service.NewCBTService(examSetRepo, questionRepo, attemptRepo, poolCache, images, log)
	resultService := service.NewResultService(examSetRepo, attemptRepo, answerRepo, totalsQueue, images, log)
	mediaService := service.NewMediaService(mediaRoot, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:   handler.NewAuthHandler(authService, log),
		Solve:  handler.NewSolveHandler(solveService, mediaService, log),
		CBT:    handler.NewCBTHandler(cbtService, log),
		Result: handler.NewResultHandler(resultService, log),
		MyPage: handler.NewMyPageHandler(resultService, log),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": pool,
			"redis":    database.RedisPinger{Client: rdb},
		}, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	totalsWorker := worker.NewTotalsWorker(pool, rdb, cfg.TotalsBatchSize, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		totalsWorker.Start(workerCtx)
	}()

	// ─── Prewarm Caches ───────────────────────────────────────────────
	// Build CBT pools and image marker maps before accepting traffic.
	if err := cbtService.PrewarmPools(ctx); err != nil {
		log.Warn().Err(err).Msg("CBT pool prewarm failed")
	}
	if sets, err := examSetRepo.ListAll(ctx); err != nil {
		log.Warn().Err(err).Msg("Image marker prewarm failed")
	} else {
		images.Prewarm(sets)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the totals worker; it flushes its pending batch before returning.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
