package rosters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/knight-battles/internal/domain/knight"
	knighterr "github.com/KirkDiggler/knight-battles/internal/errors"
)

// DefaultKeyPrefix namespaces roster keys when RedisRepoConfig.KeyPrefix is empty
const DefaultKeyPrefix = "knights"

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client    redis.UniversalClient
	KeyPrefix string
}

type redisRepo struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed roster repository with the default key prefix
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client: client,
	})
}

// NewRedisRepository creates a Redis-backed roster repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	return &redisRepo{
		client: cfg.Client,
		prefix: prefix,
	}
}

// key generates the Redis key for a knight record
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("%s:knight:%s", r.prefix, id)
}

// idsKey generates the Redis key for the set of stored knight ids
func (r *redisRepo) idsKey() string {
	return fmt.Sprintf("%s:ids", r.prefix)
}

// Put stores cfg as JSON and indexes its id
func (r *redisRepo) Put(ctx context.Context, id string, cfg *knight.Config) error {
	if err := validatePut(id, cfg); err != nil {
		return err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return knighterr.WrapWithCode(err, knighterr.CodeInternal, "failed to marshal knight").
			WithMeta("knight_id", id)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(id), string(data), 0)
	pipe.SAdd(ctx, r.idsKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return knighterr.WrapWithCode(err, knighterr.CodeInternal, "failed to store knight in Redis").
			WithMeta("knight_id", id)
	}

	return nil
}

// Get retrieves the record stored under id
func (r *redisRepo) Get(ctx context.Context, id string) (*knight.Config, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, knighterr.NotFoundf("knight not found: %s", id).WithMeta("knight_id", id)
		}
		return nil, knighterr.WrapWithCode(err, knighterr.CodeInternal, "failed to get knight from Redis").
			WithMeta("knight_id", id)
	}

	var cfg knight.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, knighterr.WrapWithCode(err, knighterr.CodeInternal, "failed to unmarshal knight").
			WithMeta("knight_id", id)
	}

	return &cfg, nil
}

// List fetches every indexed record concurrently
func (r *redisRepo) List(ctx context.Context) (map[string]*knight.Config, error) {
	ids, err := r.client.SMembers(ctx, r.idsKey()).Result()
	if err != nil {
		return nil, knighterr.WrapWithCode(err, knighterr.CodeInternal, "failed to list knight ids from Redis")
	}

	var mu sync.Mutex
	knights := make(map[string]*knight.Config, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			cfg, err := r.Get(ctx, id)
			if err != nil {
				return knighterr.Wrapf(err, "failed to get knight %s", id)
			}

			mu.Lock()
			knights[id] = cfg
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return knights, nil
}

// Delete removes the record and its index entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.idsKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return knighterr.WrapWithCode(err, knighterr.CodeInternal, "failed to delete knight from Redis").
			WithMeta("knight_id", id)
	}

	if del.Val() == 0 {
		return knighterr.NotFoundf("knight not found: %s", id).WithMeta("knight_id", id)
	}

	return nil
}
