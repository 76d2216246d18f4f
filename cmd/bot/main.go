package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/inspired/internal/common/clock"
	"github.com/KirkDiggler/inspired/internal/common/uuid"
	"github.com/KirkDiggler/inspired/internal/config"
	"github.com/KirkDiggler/inspired/internal/dice"
	"github.com/KirkDiggler/inspired/internal/formula"
	"github.com/KirkDiggler/inspired/internal/handlers/discord"
	"github.com/KirkDiggler/inspired/internal/repositories/actor"
	"github.com/KirkDiggler/inspired/internal/repositories/message"
	"github.com/KirkDiggler/inspired/internal/roll"
	"github.com/KirkDiggler/inspired/internal/services/inspiration"
	"github.com/KirkDiggler/inspired/internal/services/messaging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.JSONLogs() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return err
	}

	messageRepo, err := message.NewRedis(&message.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return err
	}

	actorRepo, err := actor.NewRedis(&actor.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return err
	}

	parser := formula.New()
	roller := dice.New(&dice.Config{Seed: cfg.DiceSeed})

	mutator, err := roll.NewMutator(&roll.MutatorConfig{
		Parser: parser,
		Roller: roller,
		Async:  cfg.AsyncEvaluation,
		Logger: logger.With("component", "mutator"),
	})
	if err != nil {
		return err
	}

	svc, err := inspiration.New(&inspiration.Config{
		MessageRepo:   messageRepo,
		ActorRepo:     actorRepo,
		Mutator:       mutator,
		Parser:        parser,
		Roller:        roller,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
		Async:         cfg.AsyncEvaluation,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Roller: roller,
	})
	if err != nil {
		return err
	}

	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		GMRoleID:      cfg.GMRoleID,
		Service:       svc,
		Messaging:     messagingSvc,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	if err := bot.Start(); err != nil {
		return err
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.Error("failed to stop bot", "error", err)
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to stop metrics server", "error", err)
		}
	}

	logger.Info("bot has been shut down")
	return nil
}
