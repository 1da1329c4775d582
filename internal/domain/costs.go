package domain

type costKey struct {
	depot int
	dest  int
}

// Per-unit route costs for (depot, destination) pairs, shared by all drones.
// Entries are populated during scenario construction and read-only afterwards.
type CostMatrix struct {
	entries map[costKey]float64
}

func NewCostMatrix() CostMatrix {
	return CostMatrix{entries: make(map[costKey]float64)}
}

// Set the per-unit cost for one depot -> destination route.
func (m CostMatrix) Set(depotID, destID int, unitCost float64) {
	m.entries[costKey{depot: depotID, dest: destID}] = unitCost
}

// UnitCost returns the per-unit cost for a route and whether an entry exists.
func (m CostMatrix) UnitCost(depotID, destID int) (float64, bool) {
	c, ok := m.entries[costKey{depot: depotID, dest: destID}]
	return c, ok
}

// Len returns the number of route entries.
func (m CostMatrix) Len() int { return len(m.entries) }

// DistanceCosts builds a full cost matrix from Euclidean distances scaled by
// ratePerUnit and each destination's priority weight. This is the default
// costing used when a scenario does not carry explicit route costs.
func DistanceCosts(depots []Depot, dests []Destination, ratePerUnit float64) CostMatrix {
	m := NewCostMatrix()
	for _, dp := range depots {
		for _, ds := range dests {
			unit := dp.Position.DistanceTo(ds.Position) * ratePerUnit * ds.Priority.Weight()
			m.Set(dp.DepotID, ds.DestID, unit)
		}
	}
	return m
}
