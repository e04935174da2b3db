// Package ratelimit limits requests per client and endpoint with token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages a token bucket per client and endpoint.
type Limiter struct {
	config    *Config
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

// NewLimiter creates a new rate limiter with the given configuration. A nil
// config disables limiting.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{Enabled: false}
	}
	return &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	ec := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Path:   endpoint,
			Method: method,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if ec.Limit <= 0 || ec.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)
	b := l.bucket(clientID+":"+method+":"+ec.Path, ec, now)

	info := Info{Limit: ec.Limit}
	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); !r.OK() || delay > 0 {
		r.CancelAt(now)
		info.RetryAfter = delay
		return false, info
	}
	info.Allowed = true
	info.Remaining = int(b.limiter.TokensAt(now))
	return true, info
}

func (l *Limiter) bucket(key string, ec *EndpointConfig, now time.Time) *bucket {
	b, ok := l.buckets[key]
	if !ok {
		burst := ec.Burst
		if burst <= 0 {
			burst = ec.Limit
		}
		every := ec.Window / time.Duration(ec.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

// sweep drops buckets idle for longer than IdleTTL, at most once per
// CleanupInterval. Callers hold l.mu.
func (l *Limiter) sweep(now time.Time) {
	if l.config.CleanupInterval <= 0 || l.config.IdleTTL <= 0 {
		return
	}
	if now.Sub(l.lastSweep) < l.config.CleanupInterval {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-l.config.IdleTTL)
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
