package services

import (
	"errors"
	"math"
	"strings"
	"testing"

	"relief-airlift-service/internal/domain"
	"relief-airlift-service/internal/ports"
)

func extractorScenario() (*domain.Scenario, *ModelIndex) {
	costs := domain.NewCostMatrix()
	costs.Set(0, 0, 2)
	costs.Set(0, 1, 3)

	s := &domain.Scenario{
		Name:   "extract",
		Policy: domain.DemandStrict,
		Drones: []domain.Drone{
			{DroneID: 0, Capacity: 10, Home: domain.NoHomeDepot},
			{DroneID: 1, Capacity: 10, Home: domain.NoHomeDepot},
		},
		Depots: []domain.Depot{{DepotID: 0, Stock: 20}},
		Destinations: []domain.Destination{
			{DestID: 0, Demand: 10, Priority: domain.PriorityMedium},
			{DestID: 1, Demand: 5, Priority: domain.PriorityMedium},
		},
		Costs: costs,
	}

	idx := &ModelIndex{
		Routes: []RouteVar{
			{DroneID: 0, DepotID: 0, DestID: 0},
			{DroneID: 0, DepotID: 0, DestID: 1},
			{DroneID: 1, DepotID: 0, DestID: 0},
			{DroneID: 1, DepotID: 0, DestID: 1},
		},
		Shortfalls: map[int]int{},
	}
	return s, idx
}

func TestExtractPlanFiltersNoiseAndSorts(t *testing.T) {
	s, idx := extractorScenario()

	// Drone 0 carries 10 to dest 0; drone 1 carries 5 to dest 1; the other
	// two variables hold solver noise below tolerance.
	sol := ports.Solution{
		Status:    ports.StatusOptimal,
		Objective: 10*2 + 5*3,
		Values:    []float64{10, 3e-9, 7e-10, 5},
	}

	plan, err := ExtractPlan(s, idx, sol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Status != domain.PlanOptimal {
		t.Fatalf("status = %s, want optimal", plan.Status)
	}
	if len(plan.Deliveries) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(plan.Deliveries))
	}

	first, second := plan.Deliveries[0], plan.Deliveries[1]
	if first.DroneID != 0 || first.DestID != 0 || first.Quantity != 10 {
		t.Errorf("first delivery = %+v, want drone 0 -> dest 0, qty 10", first)
	}
	if second.DroneID != 1 || second.DestID != 1 || second.Quantity != 5 {
		t.Errorf("second delivery = %+v, want drone 1 -> dest 1, qty 5", second)
	}

	if math.Abs(plan.TotalCost-35) > 1e-9 {
		t.Errorf("total cost = %v, want 35", plan.TotalCost)
	}
	if len(plan.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", plan.Warnings)
	}
}

func TestExtractPlanFlagsObjectiveMismatch(t *testing.T) {
	s, idx := extractorScenario()

	sol := ports.Solution{
		Status:    ports.StatusOptimal,
		Objective: 99, // deliberately wrong
		Values:    []float64{10, 0, 0, 5},
	}

	plan, err := ExtractPlan(s, idx, sol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(plan.Warnings), plan.Warnings)
	}
	if !strings.Contains(plan.Warnings[0], "extraction inconsistency") {
		t.Errorf("warning %q does not mention extraction inconsistency", plan.Warnings[0])
	}

	// The plan stays usable: deliveries and re-summed cost are intact.
	if math.Abs(plan.TotalCost-35) > 1e-9 {
		t.Errorf("total cost = %v, want 35", plan.TotalCost)
	}
}

func TestExtractPlanShortfallWarning(t *testing.T) {
	s, idx := extractorScenario()
	s.Policy = domain.DemandBestEffort

	// Append a shortfall variable for destination 1 with 2 units unmet.
	idx.Shortfalls[1] = 4
	sol := ports.Solution{
		Status:    ports.StatusOptimal,
		Objective: 10*2 + 3*3 + 2*ShortfallPenalty,
		Values:    []float64{10, 0, 0, 3, 2},
	}

	plan, err := ExtractPlan(s, idx, sol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(plan.Warnings), plan.Warnings)
	}
	if !strings.Contains(plan.Warnings[0], "shortfall") {
		t.Errorf("warning %q does not mention shortfall", plan.Warnings[0])
	}

	// Shortfall penalties belong to the objective, not the delivery cost.
	if math.Abs(plan.TotalCost-29) > 1e-9 {
		t.Errorf("total cost = %v, want 29", plan.TotalCost)
	}
}

func TestExtractPlanInfeasible(t *testing.T) {
	s, idx := extractorScenario()

	sol := ports.Solution{Status: ports.StatusInfeasible, Diagnostic: "lp: problem is infeasible"}

	plan, err := ExtractPlan(s, idx, sol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Status != domain.PlanInfeasible {
		t.Fatalf("status = %s, want infeasible", plan.Status)
	}
	if len(plan.Deliveries) != 0 {
		t.Errorf("infeasible plan carries %d deliveries, want 0", len(plan.Deliveries))
	}
	if plan.TotalCost != 0 {
		t.Errorf("infeasible plan cost = %v, want 0", plan.TotalCost)
	}
}

func TestExtractPlanSolverFailure(t *testing.T) {
	s, idx := extractorScenario()

	for _, status := range []ports.SolveStatus{ports.StatusUnbounded, ports.StatusError} {
		sol := ports.Solution{Status: status, Diagnostic: "engine breakdown"}

		_, err := ExtractPlan(s, idx, sol)
		if err == nil {
			t.Errorf("status %s: expected error, got nil", status)
			continue
		}
		if !errors.Is(err, ErrSolverFailure) {
			t.Errorf("status %s: error %v does not wrap ErrSolverFailure", status, err)
		}
		if !strings.Contains(err.Error(), "engine breakdown") {
			t.Errorf("status %s: error %v does not carry the solver diagnostic", status, err)
		}
	}
}
