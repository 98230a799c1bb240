package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/randytsao24/verdigo/internal/planner"
)

const keyPrefix = "verdigo:session:"

// RedisStore keeps sessions as JSON strings in Redis
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// Connect opens a client for a redis:// URL and checks it answers
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// NewRedisStore creates a store on rdb whose sessions expire after ttl
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Save(ctx context.Context, s *planner.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+s.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("saving session %s: %w", s.ID, err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (*planner.Session, error) {
	data, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	var s planner.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &s, nil
}

// Close closes the underlying client
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
