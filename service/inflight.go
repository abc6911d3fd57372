package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/brandboost-ai/brandboost/common"
	"github.com/brandboost-ai/brandboost/common/config"
	"github.com/brandboost-ai/brandboost/common/logger"
)

// InflightRegistry tracks sessions with a generation in progress so a second
// request from the same browser is rejected instead of queued.
type InflightRegistry struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
}

func NewInflightRegistry(ttl time.Duration) *InflightRegistry {
	return &InflightRegistry{
		entries: make(map[string]time.Time),
		ttl:     ttl,
	}
}

// Acquire marks the key as busy. It returns false when a live generation
// already holds the key.
func (r *InflightRegistry) Acquire(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if startedAt, ok := r.entries[key]; ok && time.Since(startedAt) < r.ttl {
		return false
	}
	r.entries[key] = time.Now()
	return true
}

// Release frees the key. Safe to call for keys that were never acquired.
func (r *InflightRegistry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// Sweep drops entries older than the ttl. Entries normally leave through
// Release; the sweep only catches handlers that died before deferring it.
func (r *InflightRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, startedAt := range r.entries {
		if time.Since(startedAt) >= r.ttl {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

func (r *InflightRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// GenerationGuard is the process-wide registry used by the generation
// endpoint. The ttl leaves headroom over the upstream timeout so slow
// responses are not swept while still running.
var GenerationGuard = NewInflightRegistry(time.Duration(config.GenerationTimeout+30) * time.Second)

// StartInflightSweeper clears abandoned entries in the background.
func StartInflightSweeper() {
	common.SafeGoroutine(func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if removed := GenerationGuard.Sweep(); removed > 0 {
				logger.SysLog(fmt.Sprintf("inflight sweeper removed %d stale entries", removed))
			}
		}
	})
}
