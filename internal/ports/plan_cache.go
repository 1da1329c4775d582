package ports

import (
	"context"

	"relief-airlift-service/internal/domain"
)

// Optional cache for solved plans, keyed by a scenario fingerprint.
// Scenario data is immutable per run, so an unchanged fingerprint means the
// previously extracted plan is still valid.
type PlanCache interface {
	// Return the cached plan for a fingerprint, and whether one was found.
	GetPlan(ctx context.Context, fingerprint string) (*domain.DeliveryPlan, bool, error)

	// Store a solved plan under a fingerprint.
	PutPlan(ctx context.Context, fingerprint string, plan *domain.DeliveryPlan) error
}
