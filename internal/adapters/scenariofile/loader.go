package scenariofile

import (
	"fmt"
	"os"
	"strings"

	"relief-airlift-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// Default distance-to-cost rate when a scenario file omits cost_rate.
const defaultCostRate = 1.0

type fileDoc struct {
	Scenarios []scenarioDoc `yaml:"scenarios"`
}

type scenarioDoc struct {
	Name         string         `yaml:"name"`
	Policy       string         `yaml:"policy"`
	CostRate     float64        `yaml:"cost_rate"`
	Drones       []droneDoc     `yaml:"drones"`
	Depots       []depotDoc     `yaml:"depots"`
	Destinations []destDoc      `yaml:"destinations"`
	RouteCosts   []routeCostDoc `yaml:"route_costs"`
}

type droneDoc struct {
	ID       int     `yaml:"id"`
	Name     string  `yaml:"name"`
	Capacity float64 `yaml:"capacity"`
	Home     *int    `yaml:"home"`
}

type depotDoc struct {
	ID    int     `yaml:"id"`
	Name  string  `yaml:"name"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Stock float64 `yaml:"stock"`
}

type destDoc struct {
	ID       int     `yaml:"id"`
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Demand   float64 `yaml:"demand"`
	Priority string  `yaml:"priority"`
}

type routeCostDoc struct {
	Depot    int     `yaml:"depot"`
	Dest     int     `yaml:"dest"`
	UnitCost float64 `yaml:"unit_cost"`
}

// LoadFile reads one YAML scenario file and returns its scenarios.
func LoadFile(path string) ([]*domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: read %q: %w", path, err)
	}
	scenarios, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %q: %w", path, err)
	}
	return scenarios, nil
}

// Parse decodes scenario YAML. Missing fields get operational defaults:
// policy "strict", priority "medium", cost_rate 1.0, and no home depot.
// Route costs default to priority-weighted Euclidean distance times
// cost_rate; explicit route_costs entries override individual pairs.
func Parse(data []byte) ([]*domain.Scenario, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("parse yaml: no scenarios defined")
	}

	seen := make(map[string]struct{}, len(doc.Scenarios))
	out := make([]*domain.Scenario, 0, len(doc.Scenarios))
	for i, sd := range doc.Scenarios {
		s, err := buildScenario(sd)
		if err != nil {
			return nil, fmt.Errorf("scenario #%d: %w", i+1, err)
		}
		if _, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

func buildScenario(sd scenarioDoc) (*domain.Scenario, error) {
	name := strings.TrimSpace(sd.Name)
	if name == "" {
		return nil, fmt.Errorf("scenario name must not be empty")
	}

	policy, err := parsePolicy(sd.Policy)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", name, err)
	}

	rate := sd.CostRate
	if rate == 0 {
		rate = defaultCostRate
	}
	if rate < 0 {
		return nil, fmt.Errorf("scenario %q: cost_rate must be non-negative, got %.3f", name, rate)
	}

	drones := make([]domain.Drone, 0, len(sd.Drones))
	for _, d := range sd.Drones {
		home := domain.NoHomeDepot
		if d.Home != nil {
			home = *d.Home
		}
		drones = append(drones, domain.Drone{
			DroneID:  d.ID,
			Name:     d.Name,
			Capacity: d.Capacity,
			Home:     home,
		})
	}

	depots := make([]domain.Depot, 0, len(sd.Depots))
	for _, d := range sd.Depots {
		depots = append(depots, domain.Depot{
			DepotID:  d.ID,
			Name:     d.Name,
			Position: domain.Coordinates{X: d.X, Y: d.Y},
			Stock:    d.Stock,
		})
	}

	dests := make([]domain.Destination, 0, len(sd.Destinations))
	for _, d := range sd.Destinations {
		priority, err := parsePriority(d.Priority)
		if err != nil {
			return nil, fmt.Errorf("scenario %q destination %d: %w", name, d.ID, err)
		}
		dests = append(dests, domain.Destination{
			DestID:   d.ID,
			Name:     d.Name,
			Position: domain.Coordinates{X: d.X, Y: d.Y},
			Demand:   d.Demand,
			Priority: priority,
		})
	}

	costs := domain.DistanceCosts(depots, dests, rate)
	for _, rc := range sd.RouteCosts {
		if _, ok := costs.UnitCost(rc.Depot, rc.Dest); !ok {
			return nil, fmt.Errorf("scenario %q: route cost override for unknown pair depot=%d dest=%d",
				name, rc.Depot, rc.Dest)
		}
		costs.Set(rc.Depot, rc.Dest, rc.UnitCost)
	}

	return &domain.Scenario{
		Name:         name,
		Policy:       policy,
		Drones:       drones,
		Depots:       depots,
		Destinations: dests,
		Costs:        costs,
	}, nil
}

func parsePolicy(raw string) (domain.DemandPolicy, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "", "strict":
		return domain.DemandStrict, nil
	case "best_effort":
		return domain.DemandBestEffort, nil
	default:
		return "", fmt.Errorf("unknown demand policy %q", raw)
	}
}

func parsePriority(raw string) (domain.Priority, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "", "medium":
		return domain.PriorityMedium, nil
	case "high":
		return domain.PriorityHigh, nil
	case "low":
		return domain.PriorityLow, nil
	default:
		return "", fmt.Errorf("unknown priority %q", raw)
	}
}
