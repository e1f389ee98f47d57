// Package ratelimit provides per-IP connection rate limiting for the
// TCP accept loop, so a single remote address cannot monopolize the
// connection pool.
package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"redis/internal/config"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter rate-limits new connections per remote IP.
type Limiter struct {
	limiters sync.Map // map[string]*limiterEntry
	cfg      config.RateLimitConfig
	stopChan chan struct{}
	stopOnce sync.Once

	allowedCount  uint64
	rejectedCount uint64
}

// New creates a Limiter from cfg and starts its stale-entry cleanup
// goroutine. Disabled limiters still track stats but always Allow.
func New(cfg config.RateLimitConfig) *Limiter {
	l := &Limiter{
		cfg:      cfg,
		stopChan: make(chan struct{}),
	}
	if cfg.Enabled {
		go l.cleanupLoop()
	}
	return l
}

// Stop halts the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

func (l *Limiter) getLimiter(ip string) *rate.Limiter {
	now := time.Now()

	if v, ok := l.limiters.Load(ip); ok {
		e := v.(*limiterEntry)
		e.lastSeen = now
		return e.limiter
	}

	entry := &limiterEntry{
		limiter:  rate.NewLimiter(rate.Limit(l.cfg.ConnectionsPerSec), l.cfg.Burst),
		lastSeen: now,
	}
	actual, _ := l.limiters.LoadOrStore(ip, entry)
	return actual.(*limiterEntry).limiter
}

// Allow reports whether a new connection from ip should be accepted.
func (l *Limiter) Allow(ip string) bool {
	if !l.cfg.Enabled {
		atomic.AddUint64(&l.allowedCount, 1)
		return true
	}
	if l.getLimiter(ip).Allow() {
		atomic.AddUint64(&l.allowedCount, 1)
		return true
	}
	atomic.AddUint64(&l.rejectedCount, 1)
	return false
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *Limiter) cleanup() {
	cutoff := time.Now().Add(-l.cfg.CleanupInterval * 2)
	l.limiters.Range(func(key, value interface{}) bool {
		if value.(*limiterEntry).lastSeen.Before(cutoff) {
			l.limiters.Delete(key)
		}
		return true
	})
}

// Stats reports cumulative allow/reject counts.
func (l *Limiter) Stats() (allowed, rejected uint64) {
	return atomic.LoadUint64(&l.allowedCount), atomic.LoadUint64(&l.rejectedCount)
}
