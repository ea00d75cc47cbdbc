package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ahmad-alhalwany/payment-system-sub000/internal/domain/ledger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBranchCache is a read-through cache for branch records backed by
// Redis. It lives entirely outside the settlement engine: services consult
// it on reads and invalidate after mutations, and a cache failure is always
// treated as a miss, never surfaced to the caller.
type RedisBranchCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisBranchCache creates a branch cache with its own Redis client
func NewRedisBranchCache(cfg RedisConfig, logger *zap.Logger) (*RedisBranchCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisBranchCacheWithClient(client, cfg.TTL, logger), nil
}

// NewRedisBranchCacheWithClient creates a branch cache sharing an existing
// Redis client. Useful for testing or when a client is shared across
// components.
func NewRedisBranchCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisBranchCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisBranchCache{
		client:    client,
		keyPrefix: "ledger:branch:",
		ttl:       ttl,
		logger:    logger,
	}
}

func (c *RedisBranchCache) key(branchID int64) string {
	return fmt.Sprintf("%s%d", c.keyPrefix, branchID)
}

// GetBranch looks up a cached branch snapshot. Any Redis or decode failure
// counts as a miss.
func (c *RedisBranchCache) GetBranch(ctx context.Context, branchID int64) (*ledger.Branch, bool) {
	payload, err := c.client.Get(ctx, c.key(branchID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("branch cache read failed", zap.Int64("branch_id", branchID), zap.Error(err))
		}
		return nil, false
	}

	var branch ledger.Branch
	if err := json.Unmarshal(payload, &branch); err != nil {
		c.logger.Warn("branch cache decode failed", zap.Int64("branch_id", branchID), zap.Error(err))
		return nil, false
	}
	return &branch, true
}

// SetBranch stores a branch snapshot with the configured TTL
func (c *RedisBranchCache) SetBranch(ctx context.Context, branch *ledger.Branch) {
	payload, err := json.Marshal(branch)
	if err != nil {
		c.logger.Warn("branch cache encode failed", zap.Int64("branch_id", branch.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(branch.ID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("branch cache write failed", zap.Int64("branch_id", branch.ID), zap.Error(err))
	}
}

// InvalidateBranch drops the cached snapshot after a balance mutation
func (c *RedisBranchCache) InvalidateBranch(ctx context.Context, branchID int64) {
	if err := c.client.Del(ctx, c.key(branchID)).Err(); err != nil {
		c.logger.Warn("branch cache invalidation failed", zap.Int64("branch_id", branchID), zap.Error(err))
	}
}

// Close closes the underlying Redis client
func (c *RedisBranchCache) Close() error {
	return c.client.Close()
}
