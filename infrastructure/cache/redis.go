/*
Package cache wraps the optional redis instance.

Two concerns live here: a read-through cache for coupon lookups by code, and
the checkout idempotency keys. Both degrade gracefully: with no redis
configured every call is a miss and checkout idempotency is simply off.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"storefront/config"
	"storefront/domain/coupon"
	"storefront/pkg/logger"
)

// Cache is the redis-backed cache. A nil *Cache is a valid no-op instance.
type Cache struct {
	rdb            *redis.Client
	couponTTL      time.Duration
	idempotencyTTL time.Duration
}

// New connects to redis per the configuration. Returns nil (disabled cache)
// when no address is configured.
func New(cfg *config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	couponTTL := cfg.CouponTTL
	if couponTTL <= 0 {
		couponTTL = 5 * time.Minute
	}
	idempotencyTTL := cfg.IdempotencyTTL
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}

	logger.Info("Redis connected", zap.String("addr", cfg.Addr))
	return &Cache{rdb: rdb, couponTTL: couponTTL, idempotencyTTL: idempotencyTTL}, nil
}

// Close releases the client
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// GetCoupon returns the cached coupon for a code, or nil on miss.
// Cache errors are logged and treated as misses so redis outages never break
// coupon validation.
func (c *Cache) GetCoupon(ctx context.Context, code string) *coupon.Coupon {
	if c == nil {
		return nil
	}

	raw, err := c.rdb.Get(ctx, couponKey(code)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Coupon cache read failed", zap.String("code", code), zap.Error(err))
		}
		return nil
	}

	var cached coupon.Coupon
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		logger.Warn("Coupon cache entry corrupt", zap.String("code", code), zap.Error(err))
		return nil
	}
	return &cached
}

// SetCoupon caches a coupon under its code
func (c *Cache) SetCoupon(ctx context.Context, cpn *coupon.Coupon) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(cpn)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, couponKey(cpn.Code), raw, c.couponTTL).Err(); err != nil {
		logger.Warn("Coupon cache write failed", zap.String("code", cpn.Code), zap.Error(err))
	}
}

// InvalidateCoupon drops the cached entry for a code.
// Called whenever an admin mutates the coupon or a usage is recorded.
func (c *Cache) InvalidateCoupon(ctx context.Context, code string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, couponKey(code)).Err(); err != nil {
		logger.Warn("Coupon cache invalidation failed", zap.String("code", code), zap.Error(err))
	}
}

func couponKey(code string) string {
	return "coupon:" + coupon.NormalizeCode(code)
}

// ClaimIdempotencyKey claims a checkout idempotency key for an order ID.
// Returns the already-stored order ID when the key was claimed before, or an
// empty string when this call won the claim. With no redis the claim always
// succeeds.
func (c *Cache) ClaimIdempotencyKey(ctx context.Context, key, orderID string) (string, error) {
	if c == nil || key == "" {
		return "", nil
	}

	redisKey := "idempotency:" + key
	ok, err := c.rdb.SetNX(ctx, redisKey, orderID, c.idempotencyTTL).Result()
	if err != nil {
		return "", err
	}
	if ok {
		return "", nil
	}
	return c.rdb.Get(ctx, redisKey).Result()
}

// ReleaseIdempotencyKey drops a claimed key after a failed checkout so the
// client can retry
func (c *Cache) ReleaseIdempotencyKey(ctx context.Context, key string) {
	if c == nil || key == "" {
		return
	}
	if err := c.rdb.Del(ctx, "idempotency:"+key).Err(); err != nil {
		logger.Warn("Idempotency key release failed", zap.Error(err))
	}
}
