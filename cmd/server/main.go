package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/siswadata/rapor-backend/internal/config"
	"github.com/siswadata/rapor-backend/internal/database"
	"github.com/siswadata/rapor-backend/internal/handler"
	"github.com/siswadata/rapor-backend/internal/logger"
	"github.com/siswadata/rapor-backend/internal/repository"
	"github.com/siswadata/rapor-backend/internal/router"
	"github.com/siswadata/rapor-backend/internal/service"
	"github.com/siswadata/rapor-backend/internal/store"
	"github.com/siswadata/rapor-backend/internal/validator"
	"github.com/siswadata/rapor-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreBackend).
		Msg("Starting Rapor Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	// Redis carries the backup queue even when Postgres backs the store.
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Select Store Backend ──────────────────────────────────────────
	var kv store.Store
	if cfg.StoreBackend == "redis" {
		kv = store.NewRedisStore(rdb)
	} else {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		kv = store.NewPostgresStore(pool)
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(kv)
	attendanceRepo := repository.NewAttendanceRepository(kv)
	gradeRepo := repository.NewGradeRepository(kv)

	// ─── Initialize Services ──────────────────────────────────────────
	classService := service.NewClassService(studentRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, log)
	gradeService := service.NewGradeService(gradeRepo, attendanceService, log)
	recapService := service.NewRecapService(gradeRepo, studentRepo, log)
	importService := service.NewImportService(studentRepo, gradeRepo, attendanceRepo, log)
	backupService := service.NewBackupService(kv, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Student:    handler.NewStudentHandler(classService),
		Attendance: handler.NewAttendanceHandler(attendanceService, classService),
		Grade:      handler.NewGradeHandler(gradeService, classService),
		Recap:      handler.NewRecapHandler(recapService, classService),
		Import:     handler.NewImportHandler(importService),
		Backup:     handler.NewBackupHandler(backupService),
		System:     handler.NewSystemHandler(cfg, studentRepo, attendanceRepo, gradeRepo, backupService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	backupWorker := worker.NewBackupWorker(kv, rdb, cfg.BackupDir, log)
	go backupWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	// 2. Stop the backup worker and let an in-flight snapshot finish.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}
