package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"blogapi/docs"
	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/events"
	"blogapi/internal/handler"
	"blogapi/internal/logging"
	"blogapi/internal/middleware"
	"blogapi/internal/repository"
	"blogapi/internal/router"
	"blogapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Blog API
// @version 1.0
// @description Blog service with session authentication, post ownership and hypermedia links.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("database init", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logger.Warn("drop tables", "error", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer redisClient.Close()
	cacheClient := cache.New(redisClient)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("amqp unavailable, post events disabled", "error", err)
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Initialize services
	sessions := auth.NewSessionManager(auth.NewRedisSessionStore(redisClient), cfg.SessionTTL)
	credentialService := service.NewCredentialService(userRepo, cacheClient, cfg.BcryptCost)
	postService := service.NewPostService(postRepo, cacheClient, cfg.PostCacheTTL, publisher, logger)

	// Initialize handlers
	cookie := middleware.SessionCookie{Name: cfg.SessionCookieName, Secure: cfg.SessionSecure}
	authHandler := handler.NewAuthHandler(credentialService, sessions, cookie)
	postHandler := handler.NewPostHandler(postService, credentialService)

	e := echo.New()
	router.Register(e, cfg, logger, sessions, authHandler, postHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	logger.Info("swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", "addr", addr, "driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
}
