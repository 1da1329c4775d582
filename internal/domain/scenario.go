package domain

// Relative urgency of a destination. Higher priority lowers the effective
// per-unit route cost of serving it, so scarce stock flows there first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Per-unit cost multiplier applied to routes serving this priority class.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 0.5
	case PriorityLow:
		return 1.5
	default:
		return 1.0
	}
}

// DemandPolicy fixes how destination demand is modelled for a scenario.
// The two policies are mutually exclusive and never mixed within one solve.
type DemandPolicy string

const (
	// Demand is a hard minimum: every destination must receive at least its
	// demand, and a stock deficit makes the whole scenario infeasible.
	DemandStrict DemandPolicy = "strict"

	// Demand may be left partially unmet: shortfall carries a large penalty
	// in the objective and is reported as plan warnings, never hidden.
	DemandBestEffort DemandPolicy = "best_effort"
)

// NoHomeDepot marks a drone that is not stationed at any depot.
const NoHomeDepot = -1

// A delivery drone available for one planning run.
// Capacity bounds the drone's total lift across all routes it is assigned
// in a single run (single-trip aggregate model).
type Drone struct {
	DroneID  int
	Name     string
	Capacity float64
	Home     int // depot ID, or NoHomeDepot
}

// A supply depot holding a stock of relief goods.
type Depot struct {
	DepotID  int
	Name     string
	Position Coordinates
	Stock    float64
}

// A point of need with a demand for relief goods.
type Destination struct {
	DestID   int
	Name     string
	Position Coordinates
	Demand   float64
	Priority Priority
}

// A complete description of one planning problem.
// A Scenario is constructed once from static input and read-only thereafter,
// so the same value can safely back repeated or comparative solves.
type Scenario struct {
	Name         string
	Policy       DemandPolicy
	Drones       []Drone
	Depots       []Depot
	Destinations []Destination
	Costs        CostMatrix
}

// Total stock available across all depots.
func (s *Scenario) TotalStock() float64 {
	total := 0.0
	for _, d := range s.Depots {
		total += d.Stock
	}
	return total
}

// Total demand across all destinations.
func (s *Scenario) TotalDemand() float64 {
	total := 0.0
	for _, d := range s.Destinations {
		total += d.Demand
	}
	return total
}
