package services

import (
	"context"
	"fmt"

	"relief-airlift-service/internal/domain"
	"relief-airlift-service/internal/ports"

	"github.com/google/uuid"
)

// SolveScenario runs one full build -> solve -> extract pass over a scenario.
//
// The solve is a single blocking call; the scenario itself is read-only and
// may be reused for repeated or comparative runs. Infeasibility flows back
// as a plan with PlanInfeasible status, not as an error.
func SolveScenario(ctx context.Context, s *domain.Scenario, solver ports.LinearSolver) (*domain.DeliveryPlan, error) {
	model, idx, err := BuildAirliftModel(s)
	if err != nil {
		return nil, fmt.Errorf("solve scenario: %w", err)
	}

	sol, err := solver.Solve(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("solve scenario %q: %w: %v", s.Name, ErrSolverFailure, err)
	}

	plan, err := ExtractPlan(s, idx, sol)
	if err != nil {
		return nil, fmt.Errorf("solve scenario: %w", err)
	}

	plan.PlanID = uuid.NewString()
	return plan, nil
}
