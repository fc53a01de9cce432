package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"feedbackhub/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/cache"
	"feedbackhub/internal/config"
	"feedbackhub/internal/db"
	"feedbackhub/internal/handler"
	"feedbackhub/internal/logging"
	"feedbackhub/internal/metrics"
	"feedbackhub/internal/repository"
	"feedbackhub/internal/router"
	"feedbackhub/internal/service"
)

const serviceName = "feedback"

// @title Feedback API
// @version 1.0
// @description Users register, log in and manage their own feedback posts.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(serviceName, cfg.LogLevel, cfg.LogPretty)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, logging.NewGormLogger(logger, cfg.DBEcho))
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	rdb := db.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rdb.Close()

	if cfg.ResetDB {
		logger.Warn().Msg("RESET_DB=true detected, dropping all tables and sessions")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}
	if cfg.ResetDB {
		if err := db.PurgeSessionState(context.Background(), rdb); err != nil {
			logger.Fatal().Err(err).Msg("purge sessions")
		}
	}

	m := metrics.NewMetrics(serviceName)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	feedbackRepo := repository.NewFeedbackRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SecretKey, cfg.SessionTTL)
	sessions := auth.NewSessionManager(jwtService, auth.NewSessionStore(rdb), service.NewAccountLookup(userRepo))

	// Initialize services
	profiles := cache.New(rdb)
	authService := service.NewAuthService(userRepo, profiles, logger)
	userService := service.NewUserService(userRepo, feedbackRepo, sessions, profiles, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions, m, cfg.CookieSecure, logger)
	userHandler := handler.NewUserHandler(userService, m, cfg.CookieSecure)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, m)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(
		e,
		logger,
		jwtService,
		sessions,
		m,
		authHandler,
		userHandler,
		feedbackHandler,
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	logger.Info().Str("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Msg("swagger documentation available")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	logger.Info().Msg("server stopped")
}
