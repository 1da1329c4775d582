package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"relief-airlift-service/internal/domain"
	"relief-airlift-service/internal/platform/obs"

	redis "github.com/redis/go-redis/v9"
)

// RedisPlanCache stores solved plans keyed by scenario fingerprint, so
// repeated solves of an unchanged scenario skip the simplex run entirely.
type RedisPlanCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{Client: client, TTL: ttl}
}

// Return the cached plan for a fingerprint, if any.
func (c *RedisPlanCache) GetPlan(ctx context.Context, fingerprint string) (_ *domain.DeliveryPlan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}
	if fingerprint == "" {
		return nil, false, errors.New("get plan cache: fingerprint must not be empty")
	}

	raw, err := c.Client.Get(ctx, planKey(fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: %w", err)
	}

	var plan domain.DeliveryPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, false, fmt.Errorf("get plan cache: decode cached plan: %w", err)
	}

	return &plan, true, nil
}

// Store a solved plan under a fingerprint.
func (c *RedisPlanCache) PutPlan(ctx context.Context, fingerprint string, plan *domain.DeliveryPlan) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}
	if fingerprint == "" {
		return errors.New("put plan cache: fingerprint must not be empty")
	}
	if plan == nil {
		return errors.New("put plan cache: plan is nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("put plan cache: encode plan: %w", err)
	}

	if err := c.Client.Set(ctx, planKey(fingerprint), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put plan cache: %w", err)
	}

	return nil
}

func planKey(fingerprint string) string { return "plan:" + fingerprint }
