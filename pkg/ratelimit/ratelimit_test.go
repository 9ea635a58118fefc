package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter() (*Limiter, *MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)}
	store := NewMemoryStore().WithClock(clock.Now)
	l := New(Config{Limit: 5, Window: time.Hour, KeyPrefix: "rl:submit:", Fallback: store})
	return l, store, clock
}

func TestLimiterWindowBoundary(t *testing.T) {
	l, _, clock := newTestLimiter()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		d, err := l.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "submission %d should be allowed", i)
		assert.Equal(t, i, d.Count)
	}

	d, err := l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, d.Allowed, "6th submission in the window must be denied")
	assert.Equal(t, 5, d.Count, "denied submissions must not increment the counter")
	assert.Equal(t, 0, d.Remaining())

	// Exactly at resetAt the window is still open
	clock.Advance(time.Hour)
	d, _ = l.Allow(ctx, "203.0.113.7")
	assert.False(t, d.Allowed)

	clock.Advance(time.Millisecond)
	d, err = l.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count, "a new window restarts the count at 1")
	assert.Equal(t, clock.Now().Add(time.Hour), d.ResetAt)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l, _, _ := newTestLimiter()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = l.Allow(ctx, "198.51.100.1")
	}
	d, _ := l.Allow(ctx, "198.51.100.1")
	assert.False(t, d.Allowed)

	d, _ = l.Allow(ctx, "198.51.100.2")
	assert.True(t, d.Allowed)

	d, _ = l.Allow(ctx, "unknown")
	assert.True(t, d.Allowed)
}

func TestMemoryStoreConcurrentTakeNeverExceedsLimit(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := store.Take(context.Background(), "burst", 5, time.Hour)
			if err == nil && d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}

func TestMemoryStoreSweep(t *testing.T) {
	l, store, clock := newTestLimiter()
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	clock.Advance(30 * time.Minute)
	_, _ = l.Allow(ctx, "b")
	require.Equal(t, 2, store.Len())

	clock.Advance(31 * time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

type failingStore struct{ calls int }

func (f *failingStore) Take(context.Context, string, int, time.Duration) (Decision, error) {
	f.calls++
	return Decision{}, errors.New("connection refused")
}

func TestLimiterFallsBackWhenStoreFails(t *testing.T) {
	primary := &failingStore{}
	var reported error
	l := New(Config{
		Limit:        1,
		Window:       time.Minute,
		Store:        primary,
		OnStoreError: func(err error) { reported = err },
	})

	d, err := l.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, primary.calls)
	assert.EqualError(t, reported, "connection refused")

	d, err = l.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
}

func TestLimiterFailClosed(t *testing.T) {
	l := New(Config{Limit: 1, Window: time.Minute, Store: &failingStore{}, FailClosed: true})

	d, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, d.Allowed)
}

// scriptResult answers every script call with a fixed reply
type scriptResult struct {
	reply interface{}
	err   error
	keys  []string
	args  []interface{}
}

func (s *scriptResult) cmd(keys []string, args []interface{}) *goredis.Cmd {
	s.keys, s.args = keys, args
	return goredis.NewCmdResult(s.reply, s.err)
}

func (s *scriptResult) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *goredis.Cmd {
	return s.cmd(keys, args)
}

func (s *scriptResult) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *goredis.Cmd {
	return s.cmd(keys, args)
}

func (s *scriptResult) EvalRO(_ context.Context, _ string, keys []string, args ...interface{}) *goredis.Cmd {
	return s.cmd(keys, args)
}

func (s *scriptResult) EvalShaRO(_ context.Context, _ string, keys []string, args ...interface{}) *goredis.Cmd {
	return s.cmd(keys, args)
}

func (s *scriptResult) ScriptExists(_ context.Context, hashes ...string) *goredis.BoolSliceCmd {
	return goredis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (s *scriptResult) ScriptLoad(_ context.Context, _ string) *goredis.StringCmd {
	return goredis.NewStringResult("", nil)
}

func TestRedisStoreParsesScriptReply(t *testing.T) {
	fake := &scriptResult{reply: []interface{}{int64(1), int64(3), int64(120000)}}
	store := NewRedisStore(fake)

	d, err := store.Take(context.Background(), "rl:submit:1.2.3.4", 5, time.Hour)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 3, d.Count)
	assert.Equal(t, 2, d.Remaining())
	assert.Equal(t, []string{"rl:submit:1.2.3.4"}, fake.keys)
	assert.Equal(t, []interface{}{int64(3600000), 5}, fake.args)
	assert.WithinDuration(t, time.Now().Add(2*time.Minute), d.ResetAt, 5*time.Second)
}

func TestRedisStoreDenied(t *testing.T) {
	store := NewRedisStore(&scriptResult{reply: []interface{}{int64(0), int64(5), int64(1000)}})

	d, err := store.Take(context.Background(), "k", 5, time.Hour)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 5, d.Count)
}

func TestRedisStoreErrors(t *testing.T) {
	store := NewRedisStore(&scriptResult{err: errors.New("i/o timeout")})
	_, err := store.Take(context.Background(), "k", 5, time.Hour)
	assert.ErrorContains(t, err, "i/o timeout")

	store = NewRedisStore(&scriptResult{reply: "OK"})
	_, err = store.Take(context.Background(), "k", 5, time.Hour)
	assert.ErrorContains(t, err, "unexpected redis result format")
}
