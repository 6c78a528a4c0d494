package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/knight-battles/internal/config"
	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
	"github.com/KirkDiggler/knight-battles/internal/logging"
	"github.com/KirkDiggler/knight-battles/internal/repositories/rosters"
	"github.com/KirkDiggler/knight-battles/internal/roster"
	"github.com/KirkDiggler/knight-battles/internal/services/tournament"
)

func main() {
	file := flag.String("file", "", "Roster file to import (defaults to KNIGHTS_ROSTER_FILE)")
	flag.Parse()

	_ = godotenv.Load()

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

	if *file != "" {
		cfg.Roster.File = *file
	}

	if err := run(context.Background(), cfg, logger, os.Stdout); err != nil {
		logger.Error("Import failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// run loads the roster file before touching Redis so a bad file never
// needs a connection
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	if cfg.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	knights, err := roster.LoadFile(cfg.Roster.File)
	if err != nil {
		return err
	}

	client, err := connectRedis(ctx, cfg.Redis.URL)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := importKnights(ctx, client, cfg.Redis.KeyPrefix, knights, logger); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Imported %d knights from %s\n", len(knights), cfg.Roster.File)
	return err
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func importKnights(ctx context.Context, client redis.UniversalClient, prefix string, knights map[string]*knight.Config, logger *zap.Logger) error {
	svc := tournament.NewService(&tournament.ServiceConfig{
		Repository: rosters.NewRedisRepository(&rosters.RedisRepoConfig{
			Client:    client,
			KeyPrefix: prefix,
		}),
		Logger: logger,
	})

	return svc.ImportRoster(ctx, knights)
}
