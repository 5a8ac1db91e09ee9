package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-records/internal/config"
	"hospital-records/internal/database"
	"hospital-records/internal/hospital"
	"hospital-records/internal/logger"
	"hospital-records/internal/metrics"
	"hospital-records/internal/repository"
	"hospital-records/internal/router"
	"hospital-records/internal/service"
	"hospital-records/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hospital-records: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg := config.LoadConfig()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "hospital-records")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	// 2. Initialize database connection
	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// 3. Initialize repositories and token manager
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	tokens := utils.NewTokenManager(cfg.JWT.AccessSecret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// 4. Initialize services
	m := metrics.New()
	authService := service.NewAuthService(userRepo, auditRepo, tokens, log)
	if cfg.Admin.Password != "" {
		if err := authService.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
			return fmt.Errorf("failed to bootstrap administrator: %w", err)
		}
	} else {
		log.Warn("ADMIN_PASSWORD not set, skipping administrator bootstrap")
	}

	records := hospital.New(cfg.Hospital.Name, nil)
	recordsService := service.NewRecordsService(records, auditRepo, m, log)
	exportService := service.NewExportService(recordsService)

	// 5. Start background housekeeping
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	retention := service.NewRetentionWorker(auditRepo, userRepo,
		cfg.Retention.CleanupInterval, cfg.Retention.AuditRetention, log)
	go retention.Start(ctx)

	// 6. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	r, err := router.New(router.Deps{
		AuthService:    authService,
		RecordsService: recordsService,
		ExportService:  exportService,
		Tokens:         tokens,
		Metrics:        m,
		Log:            log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 7. Serve until interrupted, then shut down gracefully
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("hospital", cfg.Hospital.Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server exited")
	return nil
}
