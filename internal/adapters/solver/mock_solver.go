package solver

import (
	"context"

	"relief-airlift-service/internal/ports"
)

// MockSolver returns a canned outcome and records the last model it saw.
type MockSolver struct {
	Result    ports.Solution
	Err       error
	LastModel *ports.Model
	Calls     int
}

func (m *MockSolver) Solve(ctx context.Context, model *ports.Model) (ports.Solution, error) {
	m.LastModel = model
	m.Calls++
	return m.Result, m.Err
}
