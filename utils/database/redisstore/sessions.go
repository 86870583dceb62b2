// Package redisstore keeps embed-authoring sessions in Redis so they survive restarts and are
// shared between bot processes.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"community-bot/model"
	"community-bot/monitoring"
	"community-bot/utils/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "embed_session:"

// Connect parses url, builds a client and checks it answers. An unreachable server is an error.
func Connect(ctx context.Context, url string, logger *zap.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to reach redis: %w", err)
	}
	logger.Info("connected to redis", zap.String("addr", opts.Addr))
	return client, nil
}

// SessionStore implements database.SessionStore on a go-redis client.
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewSessionStore(client *redis.Client, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{client: client, now: now}
}

var _ database.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Put(ctx context.Context, sess *model.EmbedSession, ttl time.Duration) error {
	defer monitoring.ObserveStore(database.BackendRedis, "sessions", "put")()

	c := *sess
	c.Data = sess.Data.Clone()
	c.UpdatedAt = s.now().UTC()
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode embed session: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, keyPrefix+sess.UserID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store embed session for %s: %w", sess.UserID, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*model.EmbedSession, error) {
	defer monitoring.ObserveStore(database.BackendRedis, "sessions", "get")()

	raw, err := s.client.Get(ctx, keyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load embed session for %s: %w", userID, err)
	}
	var sess model.EmbedSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode embed session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	defer monitoring.ObserveStore(database.BackendRedis, "sessions", "delete")()

	if err := s.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete embed session for %s: %w", userID, err)
	}
	return nil
}
