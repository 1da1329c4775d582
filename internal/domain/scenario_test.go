package domain

import (
	"math"
	"testing"
)

func TestPriorityWeight(t *testing.T) {
	if w := PriorityHigh.Weight(); w != 0.5 {
		t.Errorf("high weight = %v, want 0.5", w)
	}
	if w := PriorityMedium.Weight(); w != 1.0 {
		t.Errorf("medium weight = %v, want 1.0", w)
	}
	if w := PriorityLow.Weight(); w != 1.5 {
		t.Errorf("low weight = %v, want 1.5", w)
	}
	// Unknown classes fall back to the medium weight.
	if w := Priority("urgent").Weight(); w != 1.0 {
		t.Errorf("unknown weight = %v, want 1.0", w)
	}
}

func TestDistanceCosts(t *testing.T) {
	depots := []Depot{
		{DepotID: 0, Position: Coordinates{X: 0, Y: 0}, Stock: 100},
	}
	dests := []Destination{
		{DestID: 0, Position: Coordinates{X: 3, Y: 4}, Demand: 10, Priority: PriorityHigh},
		{DestID: 1, Position: Coordinates{X: 6, Y: 8}, Demand: 10, Priority: PriorityLow},
	}

	costs := DistanceCosts(depots, dests, 2.0)

	// distance 5 * rate 2 * high weight 0.5
	unit, ok := costs.UnitCost(0, 0)
	if !ok {
		t.Fatal("missing cost entry for (0, 0)")
	}
	if math.Abs(unit-5.0) > 1e-12 {
		t.Errorf("unit cost (0,0) = %v, want 5.0", unit)
	}

	// distance 10 * rate 2 * low weight 1.5
	unit, ok = costs.UnitCost(0, 1)
	if !ok {
		t.Fatal("missing cost entry for (0, 1)")
	}
	if math.Abs(unit-30.0) > 1e-12 {
		t.Errorf("unit cost (0,1) = %v, want 30.0", unit)
	}

	if costs.Len() != 2 {
		t.Errorf("cost matrix has %d entries, want 2", costs.Len())
	}
}

func TestScenarioTotals(t *testing.T) {
	s := &Scenario{
		Depots: []Depot{
			{DepotID: 0, Stock: 150},
			{DepotID: 1, Stock: 50},
		},
		Destinations: []Destination{
			{DestID: 0, Demand: 80},
			{DestID: 1, Demand: 70},
		},
	}

	if got := s.TotalStock(); got != 200 {
		t.Errorf("TotalStock = %v, want 200", got)
	}
	if got := s.TotalDemand(); got != 150 {
		t.Errorf("TotalDemand = %v, want 150", got)
	}
}

func TestDeliveryPlanAggregates(t *testing.T) {
	plan := &DeliveryPlan{
		Status: PlanOptimal,
		Deliveries: []Delivery{
			{DroneID: 0, DepotID: 0, DestID: 0, Quantity: 40},
			{DroneID: 0, DepotID: 1, DestID: 1, Quantity: 20},
			{DroneID: 1, DepotID: 0, DestID: 1, Quantity: 30},
		},
	}

	if got := plan.DeliveredTo(1); got != 50 {
		t.Errorf("DeliveredTo(1) = %v, want 50", got)
	}
	if got := plan.ShippedFrom(0); got != 70 {
		t.Errorf("ShippedFrom(0) = %v, want 70", got)
	}
	if got := plan.CarriedBy(0); got != 60 {
		t.Errorf("CarriedBy(0) = %v, want 60", got)
	}
	if got := plan.DeliveredTo(9); got != 0 {
		t.Errorf("DeliveredTo(9) = %v, want 0", got)
	}
}
