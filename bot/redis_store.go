package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSessionStore keeps sessions in redis so an in-flight form
// survives a process restart. Expiry is handled by key TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(identity string) string {
	return "bot:session:" + identity
}

func (rs *RedisSessionStore) Get(identity string) (*Session, error) {
	data, err := rs.client.Get(context.Background(), sessionKey(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis session get: %w", err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (rs *RedisSessionStore) Put(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := rs.client.Set(context.Background(), sessionKey(session.Identity), data, rs.ttl).Err(); err != nil {
		return fmt.Errorf("redis session put: %w", err)
	}
	return nil
}

// PruneIdle is a no-op: redis expires keys on its own.
func (rs *RedisSessionStore) PruneIdle(time.Duration) ([]string, error) {
	return nil, nil
}
