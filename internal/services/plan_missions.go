package services

import (
	"context"
	"fmt"
	"log"

	"relief-airlift-service/internal/domain"
	"relief-airlift-service/internal/platform/obs"
	"relief-airlift-service/internal/ports"
)

type PlanMissionsRequest struct {
	Scenario string
}

// PlanMissions loads a scenario from the repository and produces its
// delivery plan, consulting the plan cache first when one is wired.
//
// Cache failures are logged and ignored: the cache is an optimization, not a
// source of truth, and a solve must never fail because redis is down.
func PlanMissions(
	ctx context.Context,
	req PlanMissionsRequest,
	repo ports.ScenarioRepository,
	solver ports.LinearSolver,
	cache ports.PlanCache,
) (_ *domain.DeliveryPlan, err error) {
	defer obs.Time(ctx, "services.PlanMissions")(&err)

	scenario, err := repo.GetScenario(ctx, req.Scenario)
	if err != nil {
		return nil, fmt.Errorf("plan missions: get scenario %q: %w", req.Scenario, err)
	}

	fingerprint := ScenarioFingerprint(scenario)

	if cache != nil {
		cached, ok, cerr := cache.GetPlan(ctx, fingerprint)
		if cerr != nil {
			log.Printf("plan missions: plan cache get failed: %v", cerr)
		} else if ok {
			return cached, nil
		}
	}

	plan, err := SolveScenario(ctx, scenario, solver)
	if err != nil {
		return nil, fmt.Errorf("plan missions: %w", err)
	}

	if cache != nil {
		if cerr := cache.PutPlan(ctx, fingerprint, plan); cerr != nil {
			log.Printf("plan missions: plan cache put failed: %v", cerr)
		}
	}

	return plan, nil
}
