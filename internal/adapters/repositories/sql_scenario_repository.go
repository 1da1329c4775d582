package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"relief-airlift-service/internal/domain"
	"relief-airlift-service/internal/ports"
)

// SQL-backed implementation of the ScenarioRepository port.
// Works against both the local SQLite store and Postgres; the schema is
// created by InitSchema and populated by SeedFromYAML.
type SQLScenarioRepository struct{ DB *sql.DB }

func NewSQLScenarioRepository(db *sql.DB) *SQLScenarioRepository {
	return &SQLScenarioRepository{DB: db}
}

// Return the names of all stored scenarios.
func (r *SQLScenarioRepository) ListScenarios(ctx context.Context) ([]string, error) {
	if r.DB == nil {
		return nil, errors.New("scenario repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT name FROM scenarios ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: query scenarios table: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 8)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list scenarios: scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenarios: row iteration: %w", err)
	}

	return names, nil
}

// Retrieve one scenario with its drones, depots, destinations and route costs.
func (r *SQLScenarioRepository) GetScenario(ctx context.Context, name string) (*domain.Scenario, error) {
	if r.DB == nil {
		return nil, errors.New("scenario repository: DB is nil")
	}

	var policy string
	err := r.DB.QueryRowContext(ctx,
		`SELECT policy FROM scenarios WHERE name = $1;`, name).Scan(&policy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get scenario %q: %w", name, ports.ErrScenarioNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get scenario %q: query scenarios table: %w", name, err)
	}

	s := &domain.Scenario{
		Name:   name,
		Policy: domain.DemandPolicy(policy),
		Costs:  domain.NewCostMatrix(),
	}

	if s.Drones, err = r.loadDrones(ctx, name); err != nil {
		return nil, fmt.Errorf("get scenario %q: %w", name, err)
	}
	if s.Depots, err = r.loadDepots(ctx, name); err != nil {
		return nil, fmt.Errorf("get scenario %q: %w", name, err)
	}
	if s.Destinations, err = r.loadDestinations(ctx, name); err != nil {
		return nil, fmt.Errorf("get scenario %q: %w", name, err)
	}
	if err = r.loadRouteCosts(ctx, name, s.Costs); err != nil {
		return nil, fmt.Errorf("get scenario %q: %w", name, err)
	}

	return s, nil
}

func (r *SQLScenarioRepository) loadDrones(ctx context.Context, scenario string) ([]domain.Drone, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT drone_id, name, capacity, home
	FROM drones
	WHERE scenario = $1
	ORDER BY drone_id;
	`, scenario)
	if err != nil {
		return nil, fmt.Errorf("query drones table: %w", err)
	}
	defer rows.Close()

	drones := make([]domain.Drone, 0, 8)
	for rows.Next() {
		var d domain.Drone
		if err := rows.Scan(&d.DroneID, &d.Name, &d.Capacity, &d.Home); err != nil {
			return nil, fmt.Errorf("scan drone row: %w", err)
		}
		drones = append(drones, d)
	}
	return drones, rows.Err()
}

func (r *SQLScenarioRepository) loadDepots(ctx context.Context, scenario string) ([]domain.Depot, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT depot_id, name, x, y, stock
	FROM depots
	WHERE scenario = $1
	ORDER BY depot_id;
	`, scenario)
	if err != nil {
		return nil, fmt.Errorf("query depots table: %w", err)
	}
	defer rows.Close()

	depots := make([]domain.Depot, 0, 8)
	for rows.Next() {
		var d domain.Depot
		if err := rows.Scan(&d.DepotID, &d.Name, &d.Position.X, &d.Position.Y, &d.Stock); err != nil {
			return nil, fmt.Errorf("scan depot row: %w", err)
		}
		depots = append(depots, d)
	}
	return depots, rows.Err()
}

func (r *SQLScenarioRepository) loadDestinations(ctx context.Context, scenario string) ([]domain.Destination, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT dest_id, name, x, y, demand, priority
	FROM destinations
	WHERE scenario = $1
	ORDER BY dest_id;
	`, scenario)
	if err != nil {
		return nil, fmt.Errorf("query destinations table: %w", err)
	}
	defer rows.Close()

	dests := make([]domain.Destination, 0, 8)
	for rows.Next() {
		var d domain.Destination
		var priority string
		if err := rows.Scan(&d.DestID, &d.Name, &d.Position.X, &d.Position.Y, &d.Demand, &priority); err != nil {
			return nil, fmt.Errorf("scan destination row: %w", err)
		}
		d.Priority = domain.Priority(priority)
		dests = append(dests, d)
	}
	return dests, rows.Err()
}

func (r *SQLScenarioRepository) loadRouteCosts(ctx context.Context, scenario string, costs domain.CostMatrix) error {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT depot_id, dest_id, unit_cost
	FROM route_costs
	WHERE scenario = $1;
	`, scenario)
	if err != nil {
		return fmt.Errorf("query route_costs table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var depotID, destID int
		var unit float64
		if err := rows.Scan(&depotID, &destID, &unit); err != nil {
			return fmt.Errorf("scan route cost row: %w", err)
		}
		costs.Set(depotID, destID, unit)
	}
	return rows.Err()
}
