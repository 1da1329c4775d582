package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"relief-airlift-service/internal/domain"
)

// ScenarioFingerprint returns a stable digest of everything that influences
// a solve: entities, parameters, route costs, and the demand policy.
// Scenario data is read-only per run, so an unchanged fingerprint means a
// previously extracted plan is still valid; this is what makes the plan
// cache safe.
func ScenarioFingerprint(s *domain.Scenario) string {
	h := sha256.New()
	fmt.Fprintf(h, "scenario|%s|%s\n", s.Name, s.Policy)

	for _, d := range s.Drones {
		fmt.Fprintf(h, "drone|%d|%s|%.9f|%d\n", d.DroneID, d.Name, d.Capacity, d.Home)
	}
	for _, d := range s.Depots {
		fmt.Fprintf(h, "depot|%d|%s|%.9f|%.9f|%.9f\n",
			d.DepotID, d.Name, d.Position.X, d.Position.Y, d.Stock)
	}
	for _, d := range s.Destinations {
		fmt.Fprintf(h, "dest|%d|%s|%.9f|%.9f|%.9f|%s\n",
			d.DestID, d.Name, d.Position.X, d.Position.Y, d.Demand, d.Priority)
	}

	// Iterate costs in the deterministic (depot, destination) order rather
	// than over the underlying map.
	for _, dp := range s.Depots {
		for _, ds := range s.Destinations {
			if unit, ok := s.Costs.UnitCost(dp.DepotID, ds.DestID); ok {
				fmt.Fprintf(h, "cost|%d|%d|%.9f\n", dp.DepotID, ds.DestID, unit)
			}
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
