package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"newsbrief/internal/logger"
)

// Budget caps generative summarizer calls per rolling day. A zero max means
// unlimited. Cache hits are tracked so the /metrics surface can show how many
// model calls the summary cache absorbed.
type Budget struct {
	mu          sync.Mutex
	used        int
	max         int
	cacheHits   int
	cacheMisses int
	resetTime   time.Time
}

func NewBudget(max int) *Budget {
	return &Budget{
		max:       max,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reports whether another model call fits in the budget.
func (b *Budget) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	if b.max > 0 && b.used >= b.max {
		logger.Warn("AI budget exhausted", "used", b.used, "max", b.max)
		return false
	}
	return true
}

// Use consumes one model call from the budget.
func (b *Budget) Use() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	if b.max > 0 && b.used >= b.max {
		return fmt.Errorf("AI request budget exceeded (%d/%d)", b.used, b.max)
	}
	b.used++
	b.cacheMisses++
	return nil
}

// RecordCacheHit notes that a cached summary served instead of a model call.
func (b *Budget) RecordCacheHit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cacheHits++
}

func (b *Budget) HitRate() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := b.cacheHits + b.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(b.cacheHits) / float64(total) * 100
}

func (b *Budget) GetStats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	return map[string]interface{}{
		"ai_requests_used":  b.used,
		"ai_requests_limit": b.max,
		"cache_hits":        b.cacheHits,
		"cache_misses":      b.cacheMisses,
		"reset_time":        b.resetTime,
	}
}

func (b *Budget) checkReset() {
	if time.Now().After(b.resetTime) {
		logger.Info("resetting AI budget counters", "used", b.used)
		b.used = 0
		b.cacheHits = 0
		b.cacheMisses = 0
		b.resetTime = time.Now().Add(24 * time.Hour)
	}
}
