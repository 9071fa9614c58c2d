package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/verdemed/verdemed/application/usecase"
	"github.com/verdemed/verdemed/infrastructure/config"
	verdemedhttp "github.com/verdemed/verdemed/infrastructure/http"
	"github.com/verdemed/verdemed/infrastructure/http/middleware"
	"github.com/verdemed/verdemed/infrastructure/persistence/postgres"
	"github.com/verdemed/verdemed/infrastructure/service/identity"
	"github.com/verdemed/verdemed/infrastructure/service/jwt"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
	"github.com/verdemed/verdemed/infrastructure/service/password"
	"github.com/verdemed/verdemed/infrastructure/service/ratelimit"
	"github.com/verdemed/verdemed/infrastructure/service/reconcile"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "verdemed",
	})
	structuredLogger.Info(ctx, "application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "database connection established", nil)

	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.Config{
		Enabled:       cfg.RateLimitEnabled,
		RedisURL:      cfg.RedisURL,
		Attempts:      cfg.RateLimitAttempts,
		Window:        cfg.RateLimitWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "failed to initialize rate limiting", err, map[string]interface{}{
			"redisUrl": cfg.RedisURL,
		})
		log.Fatalf("Failed to initialize rate limiting: %v", err)
	}

	// Repositories
	identityRepo := postgres.NewIdentityRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	auditLogRepo := postgres.NewAuditLogRepository(db)
	reconciliationRepo := postgres.NewReconciliationRepository(db)

	// Services
	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(cfg.BcryptCost)

	identityProvider := identity.NewProvider(
		identityRepo,
		refreshTokenRepo,
		tokenService,
		passwordService,
		structuredLogger,
		cfg.RefreshTokenSalt,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	// Use cases
	auditUseCase := usecase.NewAuditRecorder(auditLogRepo, structuredLogger)
	userUseCase := usecase.NewUserUseCase(identityProvider, profileRepo, patientRepo, doctorRepo, auditUseCase, structuredLogger)
	authUseCase := usecase.NewAuthUseCase(identityProvider, auditUseCase, structuredLogger)

	rateLimitMiddleware := middleware.NewRateLimitMiddleware(
		rateLimitService,
		structuredLogger,
		cfg.RateLimitAttempts,
		cfg.RateLimitWindow,
		cfg.RateLimitBlockDuration,
	)

	router := verdemedhttp.NewRouter(verdemedhttp.RouterDeps{
		UserUseCase:      userUseCase,
		AuthUseCase:      authUseCase,
		AuditUseCase:     auditUseCase,
		IdentityProvider: identityProvider,
		Profiles:         profileRepo,
		RateLimit:        rateLimitMiddleware,
		DB:               db,
		Logger:           structuredLogger,
		AllowedOrigins:   cfg.AllowedOrigins,
	})

	server := verdemedhttp.NewServer(verdemedhttp.ServerConfig{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, router, structuredLogger)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if cfg.ReconcileEnabled {
		worker := reconcile.NewWorker(reconciliationRepo, profileRepo, structuredLogger, cfg.ReconcileInterval)
		go worker.Run(workerCtx)
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopWorker()

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "server exited", nil)
}
