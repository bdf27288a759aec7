package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/world"
)

const (
	worldKeyPrefix   = "world:"
	sessionKeyPrefix = "session:"
)

// RedisStorage implements the Storage interface using Redis
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStorage{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	r.logger.Debug("Redis ping successful", "result", cmd.Val())
	return nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

// WaitForConnection pings Redis until it responds or the context expires.
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := r.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("redis connection timed out: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (r *RedisStorage) SaveWorld(ctx context.Context, w *world.World) error {
	if w.Name == "" {
		return fmt.Errorf("world name is required")
	}
	w.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}

	if err := r.client.Set(ctx, worldKeyPrefix+w.Name, data, 0).Err(); err != nil {
		r.logger.Error("Redis SET failed", "world", w.Name, "error", err)
		return fmt.Errorf("failed to save world: %w", err)
	}

	r.logger.Debug("World saved", "world", w.Name, "size_bytes", len(data))
	return nil
}

func (r *RedisStorage) LoadWorld(ctx context.Context, name string) (*world.World, error) {
	data, err := r.client.Get(ctx, worldKeyPrefix+name).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load world: %w", err)
	}

	var w world.World
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world: %w", err)
	}
	return &w, nil
}

func (r *RedisStorage) DeleteWorld(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, worldKeyPrefix+name, sessionKeyPrefix+name).Err(); err != nil {
		return fmt.Errorf("failed to delete world: %w", err)
	}

	r.logger.Debug("World deleted", "world", name)
	return nil
}

func (r *RedisStorage) ListWorlds(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	iter := r.client.Scan(ctx, 0, worldKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, iter.Val()[len(worldKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	return names, nil
}

func (r *RedisStorage) SaveSession(ctx context.Context, sess *adventure.Session) error {
	if sess.World == nil || sess.World.Name == "" {
		return fmt.Errorf("session world name is required")
	}
	sess.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+sess.World.Name, data, 0).Err(); err != nil {
		r.logger.Error("Redis SET failed", "world", sess.World.Name, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Debug("Session saved", "world", sess.World.Name, "round", sess.Round)
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, worldName string) (*adventure.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+worldName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess adventure.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, worldName string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+worldName).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
