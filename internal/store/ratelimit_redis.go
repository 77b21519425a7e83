package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
)

var ErrUnexpectedLimiterReply = errors.New("unexpected rate limiter reply")

// tokenBucketScript refills the bucket for every whole interval elapsed
// since the last refill, then takes one token if available. It returns
// {allowed, remaining, retry_after_ms}.
const tokenBucketScript = `
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + (intervals * interval_ms)
	end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`

// RateLimitDecision is the outcome of taking one token from a bucket.
type RateLimitDecision struct {
	Allowed    bool
	Limit      int
	Remaining  int64
	RetryAfter time.Duration
}

// RedisRateLimiter is a token-bucket limiter whose state lives in redis,
// so every server instance shares the same buckets.
type RedisRateLimiter struct {
	client redis.Scripter
	script *redis.Script
	cfg    config.RateLimit
	now    func() time.Time

	logger *logger.Logger
}

// NewRedisClient connects to the configured redis server and pings it.
func NewRedisClient(ctx context.Context, cfg config.RateLimit, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", cfg.RedisAddress, err)
	}

	log.Info().Str("address", cfg.RedisAddress).Msg("connected to redis")
	return client, nil
}

func NewRedisRateLimiter(client redis.Scripter, cfg config.RateLimit, log *logger.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		script: redis.NewScript(tokenBucketScript),
		cfg:    cfg,
		now:    time.Now,
		logger: log,
	}
}

// Take removes one token from the bucket identified by key.
func (l *RedisRateLimiter) Take(ctx context.Context, key string) (RateLimitDecision, error) {
	ttl := int64(l.cfg.TTL / time.Second)
	if ttl < 1 {
		ttl = 1
	}

	args := []any{
		l.now().UnixMilli(),
		l.cfg.Capacity,
		l.cfg.RefillInterval.Milliseconds(),
		ttl,
	}

	reply, err := l.script.Run(ctx, l.client, []string{l.cfg.Prefix + ":" + key}, args...).Result()
	if err != nil {
		l.logger.Err(err).Str("func", "RedisRateLimiter.Take").Str("key", key).Msg("error running rate limiter script")
		return RateLimitDecision{}, fmt.Errorf("error running rate limiter script: %w", err)
	}

	values, ok := reply.([]any)
	if !ok || len(values) != 3 {
		return RateLimitDecision{}, fmt.Errorf("%w: %#v", ErrUnexpectedLimiterReply, reply)
	}

	retryMs := asInt64(values[2])
	return RateLimitDecision{
		Allowed:    asInt64(values[0]) == 1,
		Limit:      l.cfg.Capacity,
		Remaining:  asInt64(values[1]),
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}, nil
}

// RetryAfterSeconds rounds d up to whole seconds for the Retry-After header.
func RetryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
