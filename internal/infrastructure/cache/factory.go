package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// BranchCache is the common surface of the Redis and in-memory branch
// caches. The settlement services consume it through their own narrower
// interfaces; Close releases whatever resources the implementation holds.
type BranchCache interface {
	GetBranch(ctx context.Context, branchID int64) (*ledger.Branch, bool)
	SetBranch(ctx context.Context, branch *ledger.Branch)
	InvalidateBranch(ctx context.Context, branchID int64)
	Close() error
}

// BranchCacheFactory creates branch caches based on configuration
type BranchCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// BranchCacheFactoryOption is a functional option for configuring the factory
type BranchCacheFactoryOption func(*BranchCacheFactory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) BranchCacheFactoryOption {
	return func(f *BranchCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) BranchCacheFactoryOption {
	return func(f *BranchCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewBranchCacheFactory creates a new factory
func NewBranchCacheFactory(cfg config.RedisConfig, opts ...BranchCacheFactoryOption) *BranchCacheFactory {
	f := &BranchCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed branch cache
func (f *BranchCacheFactory) CreateRedisCache() (BranchCache, error) {
	cache, err := NewRedisBranchCache(RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
		TTL:      f.redisConfig.TTL,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis branch cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates a process-local branch cache. Suitable for
// single-instance deployments and testing; snapshots are not shared across
// instances, so a stale read is possible when several servers share one
// database.
func (f *BranchCacheFactory) CreateInMemoryCache() BranchCache {
	ttl := f.redisConfig.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return NewInMemoryBranchCache(ttl)
}

// CreateCache creates a branch cache, preferring Redis and falling back to
// the in-memory cache when Redis is unavailable and fallback is allowed.
func (f *BranchCacheFactory) CreateCache() (BranchCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis branch cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for branch cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory branch cache. "+
		"Cached balances will not be shared across server instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
