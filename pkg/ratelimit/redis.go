package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Lua script for atomic check-and-increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = window in milliseconds
// ARGV[2] = max limit
// Returns: [allowed (0|1), current_count, pttl_remaining]
var takeScript = goredis.NewScript(`
local limit = tonumber(ARGV[2])
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= limit then
    return {0, current, redis.call('PTTL', KEYS[1])}
end
current = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if current == 1 or ttl < 0 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
    ttl = tonumber(ARGV[1])
end
return {1, current, ttl}
`)

// RedisStore keeps counters in Redis, shared by every process using the same server
type RedisStore struct {
	client goredis.Scripter
}

// NewRedisStore creates a store backed by client
func NewRedisStore(client goredis.Scripter) *RedisStore {
	return &RedisStore{client: client}
}

// Take implements Store
func (s *RedisStore) Take(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	result, err := takeScript.Run(ctx, s.client, []string{key}, window.Milliseconds(), limit).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	// Parse result [allowed, count, pttl]
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 3 {
		return Decision{}, fmt.Errorf("unexpected redis result format")
	}

	allowed, _ := arr[0].(int64)
	count, _ := arr[1].(int64)
	ttl, _ := arr[2].(int64)
	if ttl < 0 {
		ttl = 0
	}

	return Decision{
		Allowed: allowed == 1,
		Count:   int(count),
		Limit:   limit,
		ResetAt: time.Now().Add(time.Duration(ttl) * time.Millisecond),
	}, nil
}
