package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	applexicon "github.com/postguard/postguard/pkg/app/lexicon"
	"github.com/postguard/postguard/pkg/config"
	handlers "github.com/postguard/postguard/pkg/handlers/http"
	infraCache "github.com/postguard/postguard/pkg/infra/cache"
	"github.com/postguard/postguard/pkg/infra/database"
	infraLogger "github.com/postguard/postguard/pkg/infra/logger"
	"github.com/postguard/postguard/pkg/infra/repository"
	"github.com/postguard/postguard/pkg/middleware"
	"github.com/postguard/postguard/pkg/moderation"
	"github.com/postguard/postguard/pkg/ratelimit"
	"github.com/postguard/postguard/pkg/server"
	"github.com/postguard/postguard/pkg/spam"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(&database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheClient, err := infraCache.NewClient(infraCache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		logger.Fatalf("failed to initialize cache: %v", err)
	}

	// repository
	lexiconRepository := repository.NewLexiconRepository(db.DB)
	moderationLogRepository := repository.NewModerationLogRepository(db.DB)
	postRepository := repository.NewPostRepository(db.DB)

	// service
	lexiconFinder := applexicon.NewFinder(lexiconRepository, cacheClient, logger)
	orchestrator := moderation.NewOrchestrator(
		lexiconFinder,
		moderationLogRepository,
		cfg.Moderation.OnLookupError,
		logger,
		nil,
	)
	detector := spam.NewDetector(cfg.Moderation.SpamKeywords, logger, nil)

	middlewareTransport, limiters, err := buildRateLimiters(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to initialize rate limiters: %v", err)
	}
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	handlerTransport := handlers.HandlerTransport{
		CheckContentHandler:       handlers.NewCheckContentHandler(logger, orchestrator),
		CensorContentHandler:      handlers.NewCensorContentHandler(logger, orchestrator),
		ModerateContentHandler:    handlers.NewModerateContentHandler(logger, orchestrator),
		ModerationStatsHandler:    handlers.NewModerationStatsHandler(logger, moderationLogRepository),
		SpamCheckHandler:          handlers.NewSpamCheckHandler(logger, detector, postRepository, cfg),
		CreateLexiconEntryHandler: handlers.NewCreateLexiconEntryHandler(logger, lexiconRepository, lexiconFinder),
		ListLexiconEntriesHandler: handlers.NewListLexiconEntriesHandler(logger, lexiconRepository),
		GetLexiconEntryHandler:    handlers.NewGetLexiconEntryHandler(logger, lexiconRepository),
		UpdateLexiconEntryHandler: handlers.NewUpdateLexiconEntryHandler(logger, lexiconRepository, lexiconFinder),
		DeleteLexiconEntryHandler: handlers.NewDeleteLexiconEntryHandler(logger, lexiconRepository, lexiconFinder),
	}

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}

// buildRateLimiters creates one limiter per configured route group and starts
// their sweep goroutines.
func buildRateLimiters(
	ctx context.Context,
	cfg *config.Config,
	logger *logrus.Logger,
) (*middleware.Transport, []*ratelimit.Limiter, error) {
	sweepInterval, err := time.ParseDuration(cfg.RateLimit.SweepInterval)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid sweep interval %q: %w", cfg.RateLimit.SweepInterval, err)
	}

	transport := &middleware.Transport{
		RateLimiters: make(map[string]middleware.Middleware, len(cfg.RateLimit.Routes)),
	}
	limiters := make([]*ratelimit.Limiter, 0, len(cfg.RateLimit.Routes))

	for route, raw := range cfg.RateLimit.Routes {
		limiterConfig, err := ratelimit.ParseSettings(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("route %q: %w", route, err)
		}
		limiter, err := ratelimit.New(limiterConfig, logger, &ratelimit.LimiterOpts{
			SweepInterval: sweepInterval,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("route %q: %w", route, err)
		}
		limiter.Start(ctx)
		limiters = append(limiters, limiter)
		transport.RateLimiters[route] = middleware.NewRateLimitMiddleware(logger, limiter, route)
	}

	return transport, limiters, nil
}
