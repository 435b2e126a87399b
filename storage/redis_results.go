package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"employee-stats/models"
)

const (
	resultKeyPrefix = "employee-stats:result:"
	lockKeyPrefix   = "employee-stats:lock:"
)

// releaseScript deletes the lock key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// RedisResultStore keeps session results in Redis so several API replicas
// share them. The run lock is a SET NX key with a TTL whose value is the
// owning run's token.
type RedisResultStore struct {
	client  *redis.Client
	lockTTL time.Duration
}

// NewRedisResultStore connects to addr and checks it answers.
func NewRedisResultStore(ctx context.Context, addr, password string, db int, lockTTL time.Duration) (*RedisResultStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return NewRedisResultStoreFromClient(client, lockTTL), nil
}

// NewRedisResultStoreFromClient wraps an existing client.
func NewRedisResultStoreFromClient(client *redis.Client, lockTTL time.Duration) *RedisResultStore {
	return &RedisResultStore{client: client, lockTTL: lockTTL}
}

func (r *RedisResultStore) Save(ctx context.Context, result *models.SessionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("redis: encode result: %w", err)
	}
	if err := r.client.Set(ctx, resultKeyPrefix+result.SessionID, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis: save result: %w", err)
	}
	return nil
}

func (r *RedisResultStore) Load(ctx context.Context, sessionID string) (*models.SessionResult, error) {
	payload, err := r.client.Get(ctx, resultKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: load result: %w", err)
	}

	var result models.SessionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("redis: decode result: %w", err)
	}
	return &result, nil
}

func (r *RedisResultStore) TryLock(ctx context.Context, sessionID, token string) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockKeyPrefix+sessionID, token, r.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis: lock: %w", err)
	}
	return ok, nil
}

// Unlock is a no-op when the lock expired and another run has taken it.
func (r *RedisResultStore) Unlock(ctx context.Context, sessionID, token string) error {
	if err := releaseScript.Run(ctx, r.client, []string{lockKeyPrefix + sessionID}, token).Err(); err != nil {
		return fmt.Errorf("redis: unlock: %w", err)
	}
	return nil
}

func (r *RedisResultStore) Close() error {
	return r.client.Close()
}
