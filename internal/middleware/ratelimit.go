package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"sales-dashboard/internal/config"
)

const (
	limiterIdleTTL = 5 * time.Minute
	sweepInterval  = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than limiterIdleTTL are dropped by Run.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	cfg     config.SecurityConfig
	now     func() time.Time
}

func NewRateLimiter(cfg config.SecurityConfig) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		cfg:     cfg,
		now:     time.Now,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	if !rl.cfg.EnableRateLimit {
		return true
	}

	rl.mu.Lock()
	c, ok := rl.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RateLimitRPS), rl.cfg.RateLimitBurst)}
		rl.clients[ip] = c
	}
	c.lastSeen = rl.now()
	rl.mu.Unlock()

	return c.limiter.Allow()
}

// Run sweeps idle buckets until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() int {
	cutoff := rl.now().Add(-limiterIdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// Clients reports the number of tracked client buckets.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
