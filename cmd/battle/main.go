package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/knight-battles/internal/config"
	"github.com/KirkDiggler/knight-battles/internal/logging"
	"github.com/KirkDiggler/knight-battles/internal/repositories/rosters"
	"github.com/KirkDiggler/knight-battles/internal/roster"
	"github.com/KirkDiggler/knight-battles/internal/services/tournament"
)

func main() {
	verbose := flag.Bool("v", false, "Print every fight before the results")
	asJSON := flag.Bool("json", false, "Print the report as JSON")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if envErr != nil {
		logger.Debug("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *verbose, *asJSON); err != nil {
		logger.Error("Battle failed", zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, verbose, asJSON bool) error {
	repo, closeRepo, err := openRoster(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	svc := tournament.NewService(&tournament.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})

	report, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(os.Stdout, report)
	}
	return writeText(os.Stdout, report, verbose)
}

// openRoster uses Redis when REDIS_URL is set, otherwise an in-memory store
// seeded from the roster file
func openRoster(ctx context.Context, cfg *config.Config, logger *zap.Logger) (rosters.Repository, func(), error) {
	if cfg.Redis.URL == "" {
		logger.Debug("No REDIS_URL found, loading roster file", zap.String("path", cfg.Roster.File))

		knights, err := roster.LoadFile(cfg.Roster.File)
		if err != nil {
			return nil, nil, err
		}

		repo := rosters.NewInMemoryRepository()
		for id, knightCfg := range knights {
			if err := repo.Put(ctx, id, knightCfg); err != nil {
				return nil, nil, err
			}
		}
		return repo, func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Debug("Using Redis roster", zap.String("prefix", cfg.Redis.KeyPrefix))

	repo := rosters.NewRedisRepository(&rosters.RedisRepoConfig{
		Client:    client,
		KeyPrefix: cfg.Redis.KeyPrefix,
	})

	return repo, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Error closing Redis connection", zap.Error(err))
		}
	}, nil
}
