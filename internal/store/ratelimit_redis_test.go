package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
)

// fakeScripter answers EvalSha with a canned reply and records the call.
type fakeScripter struct {
	reply any
	err   error

	keys []string
	args []any
}

func (f *fakeScripter) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, "", keys, args...)
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	f.keys = keys
	f.args = args
	return redis.NewCmdResult(f.reply, f.err)
}

func (f *fakeScripter) EvalRO(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return f.Eval(ctx, script, keys, args...)
}

func (f *fakeScripter) EvalShaRO(ctx context.Context, sha1 string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, sha1, keys, args...)
}

func (f *fakeScripter) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeScripter) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func testRateLimitConfig() config.RateLimit {
	return config.RateLimit{
		Capacity:       5,
		RefillInterval: 2 * time.Second,
		TTL:            time.Minute,
		Prefix:         "rl",
	}
}

func TestRedisRateLimiter_Take(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reply   any
		err     error
		want    RateLimitDecision
		wantErr bool
	}{
		{
			name:  "allowed",
			reply: []any{int64(1), int64(4), int64(0)},
			want:  RateLimitDecision{Allowed: true, Limit: 5, Remaining: 4},
		},
		{
			name:  "blocked with retry hint",
			reply: []any{int64(0), int64(0), int64(1500)},
			want:  RateLimitDecision{Allowed: false, Limit: 5, Remaining: 0, RetryAfter: 1500 * time.Millisecond},
		},
		{
			name:    "redis failure",
			err:     errors.New("connection refused"),
			wantErr: true,
		},
		{
			name:    "malformed reply",
			reply:   "OK",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeScripter{reply: tt.reply, err: tt.err}
			limiter := NewRedisRateLimiter(client, testRateLimitConfig(), logger.Nop())
			limiter.now = func() time.Time { return fixed }

			got, err := limiter.Take(context.Background(), "ip:10.0.0.1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"rl:ip:10.0.0.1"}, client.keys)
			assert.Equal(t, []any{fixed.UnixMilli(), 5, int64(2000), int64(60)}, client.args)
		})
	}
}

func TestRedisRateLimiter_Take_MalformedReplyIsTyped(t *testing.T) {
	limiter := NewRedisRateLimiter(&fakeScripter{reply: []any{int64(1)}}, testRateLimitConfig(), logger.Nop())

	_, err := limiter.Take(context.Background(), "k")
	assert.ErrorIs(t, err, ErrUnexpectedLimiterReply)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 0, RetryAfterSeconds(0))
	assert.Equal(t, 1, RetryAfterSeconds(1500*time.Millisecond/2))
	assert.Equal(t, 2, RetryAfterSeconds(1500*time.Millisecond))
	assert.Equal(t, 0, RetryAfterSeconds(-time.Second))
}
