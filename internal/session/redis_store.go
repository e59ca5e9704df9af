package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ecotech_server/internal/config"
	"ecotech_server/pkg/constants"
	"ecotech_server/pkg/errorx"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates the go-redis client from config and pings it once.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisConfig.Password,
		DB:       cfg.RedisConfig.Db,
		PoolSize: 20,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errorx.Wrapf(err, errorx.CodeCacheError, "redis ping %s", cfg.RedisAddr())
	}
	return client, nil
}

// RedisStore keeps sessions in redis as prefix+sessionID -> adminID with a TTL.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. An empty prefix uses the default key prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = constants.SESSION_KEY_PREFIX
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, adminID uint, ttl time.Duration) error {
	value := strconv.FormatUint(uint64(adminID), 10)
	if err := r.client.Set(ctx, r.key(sessionID), value, ttl).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis set session %s", sessionID)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (uint, bool, error) {
	value, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, errorx.Wrapf(err, errorx.CodeCacheError, "redis get session %s", sessionID)
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, false, errorx.Wrapf(err, errorx.CodeCacheError, "redis session %s holds %q", sessionID, value)
	}
	return uint(id), true, nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Unlink(ctx, r.key(sessionID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis unlink session %s", sessionID)
	}
	return nil
}
