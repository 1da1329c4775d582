package domain

// Outcome of a planning run as seen by consumers of the plan.
type PlanStatus string

const (
	PlanOptimal    PlanStatus = "optimal"
	PlanInfeasible PlanStatus = "infeasible"
)

// One concrete delivery action: a drone carries Quantity units from a depot
// to a destination at the given per-unit cost.
type Delivery struct {
	DroneID  int
	DepotID  int
	DestID   int
	Quantity float64
	UnitCost float64
	Cost     float64
}

// The solved output of one planning run.
// Deliveries are sorted by (drone, depot, destination) so identical inputs
// always produce identical plans. An infeasible run carries no deliveries.
// Warnings flag demand shortfall and extraction inconsistencies; a plan with
// warnings is still usable but should be surfaced as suspect.
type DeliveryPlan struct {
	PlanID     string
	Scenario   string
	Status     PlanStatus
	Deliveries []Delivery
	TotalCost  float64 // re-summed from the emitted deliveries
	Objective  float64 // objective value reported by the solver
	Warnings   []string
}

// Total quantity delivered into one destination.
func (p *DeliveryPlan) DeliveredTo(destID int) float64 {
	total := 0.0
	for _, d := range p.Deliveries {
		if d.DestID == destID {
			total += d.Quantity
		}
	}
	return total
}

// Total quantity shipped out of one depot.
func (p *DeliveryPlan) ShippedFrom(depotID int) float64 {
	total := 0.0
	for _, d := range p.Deliveries {
		if d.DepotID == depotID {
			total += d.Quantity
		}
	}
	return total
}

// Total quantity carried by one drone across all its routes.
func (p *DeliveryPlan) CarriedBy(droneID int) float64 {
	total := 0.0
	for _, d := range p.Deliveries {
		if d.DroneID == droneID {
			total += d.Quantity
		}
	}
	return total
}
