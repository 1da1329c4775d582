package services

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"relief-airlift-service/internal/domain"
	"relief-airlift-service/internal/ports"
)

// Solved quantities below this are floating-point noise and treated as zero.
const QuantityTolerance = 1e-6

// Maximum relative divergence allowed between the re-summed plan cost and
// the solver-reported objective before the plan is flagged as suspect.
const CostTolerance = 1e-6

// Returned (wrapped) when the solver produced no definitive status, or an
// unbounded model, and the run cannot continue.
var ErrSolverFailure = errors.New("solver failure")

// ExtractPlan turns a solver outcome into a DeliveryPlan.
//
// Optimal outcomes yield one delivery per route variable above
// QuantityTolerance, sorted by (drone, depot, destination). The plan cost is
// re-summed from the emitted deliveries and cross-checked against the solver
// objective; divergence beyond CostTolerance attaches a warning rather than
// failing the run. Infeasible outcomes yield an empty plan with
// PlanInfeasible status. Unbounded and error outcomes abort with
// ErrSolverFailure, carrying the solver diagnostic.
func ExtractPlan(s *domain.Scenario, idx *ModelIndex, sol ports.Solution) (*domain.DeliveryPlan, error) {
	switch sol.Status {
	case ports.StatusOptimal:
	case ports.StatusInfeasible:
		return &domain.DeliveryPlan{
			Scenario:   s.Name,
			Status:     domain.PlanInfeasible,
			Deliveries: []domain.Delivery{},
		}, nil
	default:
		return nil, fmt.Errorf("extract plan: scenario %q: solver status %s (%s): %w",
			s.Name, sol.Status, sol.Diagnostic, ErrSolverFailure)
	}

	plan := &domain.DeliveryPlan{
		Scenario:   s.Name,
		Status:     domain.PlanOptimal,
		Deliveries: make([]domain.Delivery, 0, len(idx.Routes)),
		Objective:  sol.Objective,
	}

	for vi, r := range idx.Routes {
		if vi >= len(sol.Values) {
			return nil, fmt.Errorf("extract plan: scenario %q: solution has %d values for %d routes: %w",
				s.Name, len(sol.Values), len(idx.Routes), ErrSolverFailure)
		}

		qty := sol.Values[vi]
		if qty < QuantityTolerance {
			continue
		}

		unit, ok := s.Costs.UnitCost(r.DepotID, r.DestID)
		if !ok {
			return nil, fmt.Errorf("extract plan: scenario %q: missing route cost depot=%d dest=%d: %w",
				s.Name, r.DepotID, r.DestID, ErrSolverFailure)
		}

		plan.Deliveries = append(plan.Deliveries, domain.Delivery{
			DroneID:  r.DroneID,
			DepotID:  r.DepotID,
			DestID:   r.DestID,
			Quantity: qty,
			UnitCost: unit,
			Cost:     qty * unit,
		})
	}

	// Variable creation order already follows (drone, depot, destination),
	// but the plan contract is deterministic ordering, so sort explicitly.
	slices.SortFunc(plan.Deliveries, func(a, b domain.Delivery) int {
		if c := a.DroneID - b.DroneID; c != 0 {
			return c
		}
		if c := a.DepotID - b.DepotID; c != 0 {
			return c
		}
		return a.DestID - b.DestID
	})

	for _, d := range plan.Deliveries {
		plan.TotalCost += d.Cost
	}

	// Under best effort the objective also carries shortfall penalties, so
	// they must be added back before comparing against the solver's value.
	resummed := plan.TotalCost
	for _, ds := range s.Destinations {
		vi, ok := idx.Shortfalls[ds.DestID]
		if !ok || vi >= len(sol.Values) {
			continue
		}
		short := sol.Values[vi]
		if short < QuantityTolerance {
			continue
		}
		resummed += short * ShortfallPenalty * ds.Priority.Weight()
		plan.Warnings = append(plan.Warnings, fmt.Sprintf(
			"destination %d (%s): demand shortfall of %.3f units", ds.DestID, ds.Name, short))
	}

	if diff := relativeDiff(resummed, sol.Objective); diff > CostTolerance {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf(
			"extraction inconsistency: re-summed cost %.6f diverges from solver objective %.6f (relative %.2e)",
			resummed, sol.Objective, diff))
	}

	return plan, nil
}

func relativeDiff(a, b float64) float64 {
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	return diff / scale
}
