package services

import (
	"errors"
	"fmt"

	"relief-airlift-service/internal/domain"
	"relief-airlift-service/internal/ports"
)

// Per-unit objective penalty for demand left unmet under the best-effort
// policy, before priority weighting. Large enough to dominate any realistic
// route cost, so coverage is always preferred over savings.
const ShortfallPenalty = 1000.0

// Returned (wrapped) when scenario data cannot produce a well-formed model.
var ErrInvalidScenario = errors.New("invalid scenario")

// RouteVar identifies the (drone, depot, destination) triple behind one
// assignment variable.
type RouteVar struct {
	DroneID int
	DepotID int
	DestID  int
}

// ModelIndex maps model variable indices back to scenario entities.
// Routes is aligned with the first len(Routes) variables of the model;
// Shortfalls maps destination IDs to their slack variable (best effort only).
type ModelIndex struct {
	Routes     []RouteVar
	Shortfalls map[int]int
}

// BuildAirliftModel constructs the linear program for one scenario.
//
// One continuous variable is created per (drone, depot, destination) triple,
// bounded above by min(capacity, stock, demand) to tighten the feasible
// region. Rows enforce depot stock, drone capacity (single-trip aggregate)
// and destination demand under the scenario's demand policy:
//
//   - DemandStrict: incoming >= demand; a stock deficit leaves the model
//     infeasible and is reported upward unchanged.
//   - DemandBestEffort: incoming + shortfall = demand, with the shortfall
//     variable penalized in the objective.
//
// The scenario is never mutated; the returned index is needed to extract a
// plan from the solved variable values.
func BuildAirliftModel(s *domain.Scenario) (*ports.Model, *ModelIndex, error) {
	if err := validateScenario(s); err != nil {
		return nil, nil, err
	}

	m := &ports.Model{Name: s.Name}
	idx := &ModelIndex{Shortfalls: make(map[int]int)}

	// Assignment variables, in (drone, depot, destination) order. Keeping
	// this order is what makes extracted plans deterministic.
	for _, dr := range s.Drones {
		for _, dp := range s.Depots {
			for _, ds := range s.Destinations {
				unit, ok := s.Costs.UnitCost(dp.DepotID, ds.DestID)
				if !ok {
					return nil, nil, fmt.Errorf(
						"build model: missing route cost depot=%d dest=%d: %w",
						dp.DepotID, ds.DestID, ErrInvalidScenario,
					)
				}
				if unit < 0 {
					return nil, nil, fmt.Errorf(
						"build model: negative route cost %.3f depot=%d dest=%d: %w",
						unit, dp.DepotID, ds.DestID, ErrInvalidScenario,
					)
				}

				upper := min(dr.Capacity, dp.Stock, ds.Demand)
				name := fmt.Sprintf("x_%d_%d_%d", dr.DroneID, dp.DepotID, ds.DestID)
				m.AddVariable(name, 0, upper, unit)
				idx.Routes = append(idx.Routes, RouteVar{
					DroneID: dr.DroneID,
					DepotID: dp.DepotID,
					DestID:  ds.DestID,
				})
			}
		}
	}

	// Depot stock: total outgoing quantity per depot must not exceed stock.
	for _, dp := range s.Depots {
		terms := make([]ports.Term, 0, len(s.Drones)*len(s.Destinations))
		for vi, r := range idx.Routes {
			if r.DepotID == dp.DepotID {
				terms = append(terms, ports.Term{Var: vi, Coeff: 1})
			}
		}
		m.AddConstraint(fmt.Sprintf("stock_%d", dp.DepotID), ports.LessEq, dp.Stock, terms)
	}

	// Drone payload: total quantity per drone across all routes must not
	// exceed its capacity.
	for _, dr := range s.Drones {
		terms := make([]ports.Term, 0, len(s.Depots)*len(s.Destinations))
		for vi, r := range idx.Routes {
			if r.DroneID == dr.DroneID {
				terms = append(terms, ports.Term{Var: vi, Coeff: 1})
			}
		}
		m.AddConstraint(fmt.Sprintf("capacity_%d", dr.DroneID), ports.LessEq, dr.Capacity, terms)
	}

	// Destination demand, per the scenario's policy.
	for _, ds := range s.Destinations {
		terms := make([]ports.Term, 0, len(s.Drones)*len(s.Depots)+1)
		for vi, r := range idx.Routes {
			if r.DestID == ds.DestID {
				terms = append(terms, ports.Term{Var: vi, Coeff: 1})
			}
		}

		switch s.Policy {
		case domain.DemandStrict:
			m.AddConstraint(fmt.Sprintf("demand_%d", ds.DestID), ports.GreaterEq, ds.Demand, terms)
		case domain.DemandBestEffort:
			penalty := ShortfallPenalty * ds.Priority.Weight()
			vi := m.AddVariable(fmt.Sprintf("shortfall_%d", ds.DestID), 0, ds.Demand, penalty)
			idx.Shortfalls[ds.DestID] = vi
			terms = append(terms, ports.Term{Var: vi, Coeff: 1})
			m.AddConstraint(fmt.Sprintf("demand_%d", ds.DestID), ports.Equal, ds.Demand, terms)
		}
	}

	return m, idx, nil
}

// Reject malformed scenario data before any solver work.
func validateScenario(s *domain.Scenario) error {
	if s == nil {
		return fmt.Errorf("build model: scenario is nil: %w", ErrInvalidScenario)
	}
	if len(s.Drones) == 0 {
		return fmt.Errorf("build model: scenario %q has no drones: %w", s.Name, ErrInvalidScenario)
	}
	if len(s.Depots) == 0 {
		return fmt.Errorf("build model: scenario %q has no depots: %w", s.Name, ErrInvalidScenario)
	}
	if len(s.Destinations) == 0 {
		return fmt.Errorf("build model: scenario %q has no destinations: %w", s.Name, ErrInvalidScenario)
	}

	switch s.Policy {
	case domain.DemandStrict, domain.DemandBestEffort:
	default:
		return fmt.Errorf("build model: scenario %q has unknown demand policy %q: %w",
			s.Name, s.Policy, ErrInvalidScenario)
	}

	droneIDs := make(map[int]struct{}, len(s.Drones))
	for _, d := range s.Drones {
		if d.Capacity < 0 {
			return fmt.Errorf("build model: drone %d has negative capacity %.3f: %w",
				d.DroneID, d.Capacity, ErrInvalidScenario)
		}
		if _, ok := droneIDs[d.DroneID]; ok {
			return fmt.Errorf("build model: duplicate drone ID %d: %w", d.DroneID, ErrInvalidScenario)
		}
		droneIDs[d.DroneID] = struct{}{}
	}

	depotIDs := make(map[int]struct{}, len(s.Depots))
	for _, d := range s.Depots {
		if d.Stock < 0 {
			return fmt.Errorf("build model: depot %d has negative stock %.3f: %w",
				d.DepotID, d.Stock, ErrInvalidScenario)
		}
		if _, ok := depotIDs[d.DepotID]; ok {
			return fmt.Errorf("build model: duplicate depot ID %d: %w", d.DepotID, ErrInvalidScenario)
		}
		depotIDs[d.DepotID] = struct{}{}
	}

	destIDs := make(map[int]struct{}, len(s.Destinations))
	for _, d := range s.Destinations {
		if d.Demand < 0 {
			return fmt.Errorf("build model: destination %d has negative demand %.3f: %w",
				d.DestID, d.Demand, ErrInvalidScenario)
		}
		if _, ok := destIDs[d.DestID]; ok {
			return fmt.Errorf("build model: duplicate destination ID %d: %w", d.DestID, ErrInvalidScenario)
		}
		destIDs[d.DestID] = struct{}{}
	}

	for _, d := range s.Drones {
		if d.Home == domain.NoHomeDepot {
			continue
		}
		if _, ok := depotIDs[d.Home]; !ok {
			return fmt.Errorf("build model: drone %d references unknown home depot %d: %w",
				d.DroneID, d.Home, ErrInvalidScenario)
		}
	}

	return nil
}
