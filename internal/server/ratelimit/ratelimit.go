// Package ratelimit provides per-client token bucket rate limiting for the
// roadmap API. Roadmap generation is an expensive LLM-backed operation, so
// it carries a much stricter limit than read endpoints.
package ratelimit

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Rule is the limit applied to one class of requests.
type Rule struct {
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds the limiter configuration.
type Config struct {
	Enabled bool
	Default Rule
	Roadmap Rule // POST /v1/roadmaps
}

// LoadConfig reads the limiter configuration from environment variables.
func LoadConfig() *Config {
	cfg := &Config{
		Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		Default: Rule{Limit: 300, Window: time.Minute},
		Roadmap: Rule{Limit: 10, Window: time.Hour, Burst: 2},
	}
	if v := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 0); v > 0 {
		cfg.Default.Limit = v
	}
	if v := getEnvInt("RATE_LIMIT_ROADMAP_LIMIT", 0); v > 0 {
		cfg.Roadmap.Limit = v
	}
	return cfg
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Info reports the limit state for a checked request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
}

func (b *bucket) refill(now time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now
}

// Limiter tracks one token bucket per client and request class.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
}

// NewLimiter creates a limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = LoadConfig()
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}
}

// Allow checks whether a request from clientID is allowed under the given
// rule class ("roadmap" or anything else for the default rule) and consumes
// a token if so.
func (l *Limiter) Allow(clientID, class string) Info {
	if !l.config.Enabled {
		return Info{Allowed: true}
	}

	rule := l.config.Default
	if class == "roadmap" {
		rule = l.config.Roadmap
	}
	if rule.Limit <= 0 {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := clientID + ":" + class
	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		b = &bucket{
			capacity:   float64(capacity),
			refillRate: float64(rule.Limit) / rule.Window.Seconds(),
			tokens:     float64(capacity),
			lastRefill: time.Now(),
		}
		l.buckets[key] = b
	}

	now := time.Now()
	b.refill(now)

	info := Info{Limit: rule.Limit}
	if b.tokens >= 1.0 {
		b.tokens--
		info.Allowed = true
	}
	info.Remaining = int(b.tokens)

	if b.tokens < b.capacity {
		secondsUntilFull := (b.capacity - b.tokens) / b.refillRate
		info.ResetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	} else {
		info.ResetTime = now
	}
	if !info.Allowed {
		// Time until one whole token is available
		info.RetryAfter = time.Duration((1.0 - b.tokens) / b.refillRate * float64(time.Second))
	}

	return info
}
