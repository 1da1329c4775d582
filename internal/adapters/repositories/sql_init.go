package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"relief-airlift-service/internal/adapters/scenariofile"
	"relief-airlift-service/internal/domain"
)

// Initialize the scenario database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createScenariosQuery := `
	CREATE TABLE IF NOT EXISTS scenarios (
		name TEXT PRIMARY KEY,
		policy TEXT NOT NULL
	);
	`

	createDronesQuery := `
	CREATE TABLE IF NOT EXISTS drones (
		scenario TEXT NOT NULL,
		drone_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		capacity REAL NOT NULL,
		home INTEGER NOT NULL,
		PRIMARY KEY (scenario, drone_id)
	);
	`

	createDepotsQuery := `
	CREATE TABLE IF NOT EXISTS depots (
		scenario TEXT NOT NULL,
		depot_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		stock REAL NOT NULL,
		PRIMARY KEY (scenario, depot_id)
	);
	`

	createDestinationsQuery := `
	CREATE TABLE IF NOT EXISTS destinations (
		scenario TEXT NOT NULL,
		dest_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		demand REAL NOT NULL,
		priority TEXT NOT NULL,
		PRIMARY KEY (scenario, dest_id)
	);
	`

	createRouteCostsQuery := `
	CREATE TABLE IF NOT EXISTS route_costs (
		scenario TEXT NOT NULL,
		depot_id INTEGER NOT NULL,
		dest_id INTEGER NOT NULL,
		unit_cost REAL NOT NULL,
		PRIMARY KEY (scenario, depot_id, dest_id)
	);
	`

	statements := []string{
		createScenariosQuery,
		createDronesQuery,
		createDepotsQuery,
		createDestinationsQuery,
		createRouteCostsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with scenarios from a YAML file.
// Route costs are materialized per (depot, destination) pair so readers do
// not depend on the file's cost_rate.
func SeedFromYAML(db *sql.DB, yamlPath string) error {
	scenarios, err := scenariofile.LoadFile(yamlPath)
	if err != nil {
		return fmt.Errorf("seed scenarios: %w", err)
	}
	return SeedScenarios(db, scenarios)
}

// Insert or update the given scenarios.
func SeedScenarios(db *sql.DB, scenarios []*domain.Scenario) error {
	if db == nil {
		return errors.New("seed scenarios: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed scenarios: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range scenarios {
		if err := seedScenario(tx, s); err != nil {
			return fmt.Errorf("seed scenarios: scenario %q: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed scenarios: commit tx: %w", err)
	}

	return nil
}

func seedScenario(tx *sql.Tx, s *domain.Scenario) error {
	_, err := tx.Exec(`
	INSERT INTO scenarios (name, policy)
	VALUES ($1, $2)
	ON CONFLICT (name) DO UPDATE SET policy = EXCLUDED.policy;
	`, s.Name, string(s.Policy))
	if err != nil {
		return fmt.Errorf("insert scenario: %w", err)
	}

	for _, d := range s.Drones {
		_, err := tx.Exec(`
		INSERT INTO drones (scenario, drone_id, name, capacity, home)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scenario, drone_id) DO UPDATE
		SET name = EXCLUDED.name, capacity = EXCLUDED.capacity, home = EXCLUDED.home;
		`, s.Name, d.DroneID, d.Name, d.Capacity, d.Home)
		if err != nil {
			return fmt.Errorf("insert drone %d: %w", d.DroneID, err)
		}
	}

	for _, d := range s.Depots {
		_, err := tx.Exec(`
		INSERT INTO depots (scenario, depot_id, name, x, y, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (scenario, depot_id) DO UPDATE
		SET name = EXCLUDED.name, x = EXCLUDED.x, y = EXCLUDED.y, stock = EXCLUDED.stock;
		`, s.Name, d.DepotID, d.Name, d.Position.X, d.Position.Y, d.Stock)
		if err != nil {
			return fmt.Errorf("insert depot %d: %w", d.DepotID, err)
		}
	}

	for _, d := range s.Destinations {
		_, err := tx.Exec(`
		INSERT INTO destinations (scenario, dest_id, name, x, y, demand, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (scenario, dest_id) DO UPDATE
		SET name = EXCLUDED.name, x = EXCLUDED.x, y = EXCLUDED.y,
			demand = EXCLUDED.demand, priority = EXCLUDED.priority;
		`, s.Name, d.DestID, d.Name, d.Position.X, d.Position.Y, d.Demand, string(d.Priority))
		if err != nil {
			return fmt.Errorf("insert destination %d: %w", d.DestID, err)
		}
	}

	for _, dp := range s.Depots {
		for _, ds := range s.Destinations {
			unit, ok := s.Costs.UnitCost(dp.DepotID, ds.DestID)
			if !ok {
				continue
			}
			_, err := tx.Exec(`
			INSERT INTO route_costs (scenario, depot_id, dest_id, unit_cost)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (scenario, depot_id, dest_id) DO UPDATE
			SET unit_cost = EXCLUDED.unit_cost;
			`, s.Name, dp.DepotID, ds.DestID, unit)
			if err != nil {
				return fmt.Errorf("insert route cost depot=%d dest=%d: %w", dp.DepotID, ds.DestID, err)
			}
		}
	}

	return nil
}
