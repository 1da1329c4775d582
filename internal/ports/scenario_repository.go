package ports

import (
	"context"
	"errors"

	"relief-airlift-service/internal/domain"
)

// Returned by repositories when a scenario name is unknown.
var ErrScenarioNotFound = errors.New("scenario not found")

// Port: a boundary for retrieving Scenario data from a data source.
type ScenarioRepository interface {
	// Retrieve one scenario by name.
	GetScenario(ctx context.Context, name string) (*domain.Scenario, error)

	// List the names of all stored scenarios.
	ListScenarios(ctx context.Context) ([]string, error)
}
