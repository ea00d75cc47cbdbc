package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
)

// branchEntry holds a cached branch snapshot with its expiration
type branchEntry struct {
	branch    ledger.Branch
	expiresAt time.Time
}

// InMemoryBranchCache implements the branch cache with a process-local map.
// It is suitable for single-instance deployments and testing; it does not
// share state across processes, so a multi-instance deployment must use the
// Redis cache instead.
type InMemoryBranchCache struct {
	mu        sync.RWMutex
	entries   map[int64]branchEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryBranchCache creates an in-memory branch cache and starts a
// background goroutine that evicts expired snapshots.
func NewInMemoryBranchCache(ttl time.Duration) *InMemoryBranchCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	c := &InMemoryBranchCache{
		entries:  make(map[int64]branchEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// GetBranch returns a copy of the cached branch snapshot, if present and
// not expired.
func (c *InMemoryBranchCache) GetBranch(ctx context.Context, branchID int64) (*ledger.Branch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[branchID]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, false
	}

	branch := e.branch
	return &branch, true
}

// SetBranch stores a branch snapshot. The snapshot is copied so later
// mutations of the caller's value do not leak into the cache.
func (c *InMemoryBranchCache) SetBranch(ctx context.Context, branch *ledger.Branch) {
	if branch == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[branch.ID] = branchEntry{
		branch:    *branch,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// InvalidateBranch drops the cached snapshot after a balance mutation
func (c *InMemoryBranchCache) InvalidateBranch(ctx context.Context, branchID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, branchID)
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryBranchCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of cached snapshots (for testing/monitoring)
func (c *InMemoryBranchCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryBranchCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryBranchCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}

var _ BranchCache = (*InMemoryBranchCache)(nil)
