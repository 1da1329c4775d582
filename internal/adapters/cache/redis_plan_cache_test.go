package cache

import (
	"context"
	"testing"
	"time"

	"relief-airlift-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
)

func testCache(t *testing.T) *RedisPlanCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisPlanCache(client, time.Minute)
}

func TestRedisPlanCacheRoundtrip(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	plan := &domain.DeliveryPlan{
		PlanID:   "p-1",
		Scenario: "sample",
		Status:   domain.PlanOptimal,
		Deliveries: []domain.Delivery{
			{DroneID: 0, DepotID: 0, DestID: 1, Quantity: 40, UnitCost: 2, Cost: 80},
		},
		TotalCost: 80,
		Objective: 80,
		Warnings:  []string{"destination 1 (shelter): demand shortfall of 5.000 units"},
	}

	if err := c.PutPlan(ctx, "fp-1", plan); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.GetPlan(ctx, "fp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("stored plan not found")
	}

	if got.PlanID != plan.PlanID || got.Scenario != plan.Scenario || got.Status != plan.Status {
		t.Errorf("cached plan header = %+v, want %+v", got, plan)
	}
	if len(got.Deliveries) != 1 || got.Deliveries[0] != plan.Deliveries[0] {
		t.Errorf("cached deliveries = %+v, want %+v", got.Deliveries, plan.Deliveries)
	}
	if len(got.Warnings) != 1 || got.Warnings[0] != plan.Warnings[0] {
		t.Errorf("cached warnings = %v, want %v", got.Warnings, plan.Warnings)
	}
}

func TestRedisPlanCacheMiss(t *testing.T) {
	c := testCache(t)

	got, ok, err := c.GetPlan(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || got != nil {
		t.Errorf("miss returned (%v, %v), want (nil, false)", got, ok)
	}
}

func TestRedisPlanCacheValidation(t *testing.T) {
	c := testCache(t)
	ctx := context.Background()

	if _, _, err := c.GetPlan(ctx, ""); err == nil {
		t.Error("empty fingerprint get: expected error, got nil")
	}
	if err := c.PutPlan(ctx, "", &domain.DeliveryPlan{}); err == nil {
		t.Error("empty fingerprint put: expected error, got nil")
	}
	if err := c.PutPlan(ctx, "fp", nil); err == nil {
		t.Error("nil plan put: expected error, got nil")
	}
}
