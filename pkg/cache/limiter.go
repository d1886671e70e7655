package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// FixedWindowLimiter counts hits per key in Redis. A nil limiter, or any Redis error, allows the request.
type FixedWindowLimiter struct {
	client  *redis.Client
	script  *redis.Script
	timeout time.Duration
}

// NewFixedWindowLimiter returns nil when client is nil.
func NewFixedWindowLimiter(client *redis.Client) *FixedWindowLimiter {
	if client == nil {
		return nil
	}
	return &FixedWindowLimiter{
		client:  client,
		script:  redis.NewScript(fixedWindowScript),
		timeout: 250 * time.Millisecond,
	}
}

// Allow reports whether key is still under limit for the current window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}
