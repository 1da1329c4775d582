package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"relief-airlift-service/internal/ports"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SimplexSolver implements ports.LinearSolver on gonum's dense simplex.
//
// The general-form model (box bounds, mixed-sense rows) is rewritten into
// standard form (min c'x subject to Ax = b, x >= 0): each <= row gains a
// slack column, each >= row a surplus column, and each finite upper bound
// becomes its own <= row. Every auxiliary column appears in exactly one row,
// so the rewritten matrix keeps full row rank.
type SimplexSolver struct {
	// Tol is the pivot tolerance handed to the simplex routine.
	Tol float64
}

func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{Tol: 1e-10}
}

func (s *SimplexSolver) Solve(ctx context.Context, m *ports.Model) (ports.Solution, error) {
	if m == nil || len(m.Variables) == 0 {
		return ports.Solution{}, errors.New("simplex solve: model has no variables")
	}
	if err := ctx.Err(); err != nil {
		return ports.Solution{}, fmt.Errorf("simplex solve: %w", err)
	}

	n := len(m.Variables)

	aux := 0
	for _, con := range m.Constraints {
		if con.Sense != ports.Equal {
			aux++
		}
	}
	boundRows := 0
	for _, v := range m.Variables {
		if v.Lower != 0 {
			return ports.Solution{}, fmt.Errorf(
				"simplex solve: variable %q has lower bound %.3f, only 0 is supported", v.Name, v.Lower)
		}
		if !math.IsInf(v.Upper, 1) {
			boundRows++
			aux++
		}
	}

	rows := len(m.Constraints) + boundRows
	if rows == 0 {
		return ports.Solution{}, errors.New("simplex solve: model has no constraints")
	}
	cols := n + aux

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)
	for i, v := range m.Variables {
		c[i] = v.Cost
	}

	next := n // next free auxiliary column
	r := 0
	for _, con := range m.Constraints {
		for _, t := range con.Terms {
			if t.Var < 0 || t.Var >= n {
				return ports.Solution{}, fmt.Errorf(
					"simplex solve: constraint %q references variable index %d of %d", con.Name, t.Var, n)
			}
			a.Set(r, t.Var, a.At(r, t.Var)+t.Coeff)
		}
		switch con.Sense {
		case ports.LessEq:
			a.Set(r, next, 1)
			next++
		case ports.GreaterEq:
			a.Set(r, next, -1)
			next++
		}
		b[r] = con.RHS
		r++
	}

	for i, v := range m.Variables {
		if math.IsInf(v.Upper, 1) {
			continue
		}
		a.Set(r, i, 1)
		a.Set(r, next, 1)
		next++
		b[r] = v.Upper
		r++
	}

	objective, x, err := lp.Simplex(c, a, b, s.Tol, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		return ports.Solution{Status: ports.StatusInfeasible, Diagnostic: err.Error()}, nil
	case errors.Is(err, lp.ErrUnbounded):
		return ports.Solution{Status: ports.StatusUnbounded, Diagnostic: err.Error()}, nil
	default:
		// Singular bases and pivot breakdowns are engine failures, not
		// scenario outcomes; keep them distinct from infeasibility.
		return ports.Solution{Status: ports.StatusError, Diagnostic: err.Error()}, nil
	}

	values := make([]float64, n)
	copy(values, x[:n])

	return ports.Solution{
		Status:    ports.StatusOptimal,
		Objective: objective,
		Values:    values,
	}, nil
}
