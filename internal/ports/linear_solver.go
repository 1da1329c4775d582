package ports

import "context"

// Sense of a linear constraint row.
type Sense int

const (
	LessEq Sense = iota
	GreaterEq
	Equal
)

// A continuous decision variable with box bounds and an objective coefficient.
// Upper may be math.Inf(1) for an unbounded variable.
type Variable struct {
	Name  string
	Lower float64
	Upper float64
	Cost  float64
}

// One coefficient of a constraint row, referencing a variable by index.
type Term struct {
	Var   int
	Coeff float64
}

// A linear constraint: sum of Terms (Sense) RHS.
type Constraint struct {
	Name  string
	Sense Sense
	RHS   float64
	Terms []Term
}

// A linear minimization problem handed across the solver boundary.
// The model is built once per run and discarded after extraction; it holds
// no references back into scenario data.
type Model struct {
	Name        string
	Variables   []Variable
	Constraints []Constraint
}

// AddVariable appends a variable and returns its index.
func (m *Model) AddVariable(name string, lower, upper, cost float64) int {
	m.Variables = append(m.Variables, Variable{Name: name, Lower: lower, Upper: upper, Cost: cost})
	return len(m.Variables) - 1
}

// AddConstraint appends a constraint row.
func (m *Model) AddConstraint(name string, sense Sense, rhs float64, terms []Term) {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Sense: sense, RHS: rhs, Terms: terms})
}

// Normalized solver outcome.
type SolveStatus int

const (
	StatusOptimal SolveStatus = iota
	StatusInfeasible
	StatusUnbounded
	StatusError
)

func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "error"
	}
}

// Result of one solve. Values is aligned with Model.Variables and only
// meaningful when Status is StatusOptimal. Diagnostic carries the underlying
// engine's message for non-optimal outcomes.
type Solution struct {
	Status     SolveStatus
	Objective  float64
	Values     []float64
	Diagnostic string
}

// Contract for an LP engine.
//
// Infeasible and unbounded models are legitimate outcomes and are reported
// through Solution.Status, never as a Go error; callers react differently to
// the two and the distinction must not be collapsed. An error return means
// the engine could not produce any definitive status (malformed model or
// internal failure) and is fatal for the run.
type LinearSolver interface {
	Solve(ctx context.Context, m *Model) (Solution, error)
}
