// Package lp wraps gonum's linear-programming solver behind a small
// incremental problem builder: bounded decision variables, linear equality
// constraints and a linear objective. Each Problem owns its variables and
// constraints exclusively; independent problems can be solved concurrently.
package lp

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Var identifies a decision variable within one Problem.
// A Var from one Problem must never be used with another.
type Var int

// Term is one coeff*var entry of a linear expression.
type Term struct {
	Var   Var
	Coeff float64
}

// Status is the terminal state of a solve attempt.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusUnbounded:
		return "UNBOUNDED"
	default:
		return "ERROR"
	}
}

type equality struct {
	terms []Term
	rhs   float64
}

// Problem is an LP instance under construction. Variables and constraints are
// registered in order; Solve converts the problem to standard form and runs
// gonum's simplex method.
type Problem struct {
	name string

	lower []float64
	upper []float64
	names []string

	equalities []equality

	objective []Term
	maximize  bool
}

func NewProblem(name string) *Problem {
	return &Problem{name: name}
}

func (p *Problem) Name() string { return p.name }

// NumVariables returns the number of registered decision variables.
func (p *Problem) NumVariables() int { return len(p.lower) }

// NumEqualities returns the number of registered equality constraints.
func (p *Problem) NumEqualities() int { return len(p.equalities) }

// AddVariable registers a decision variable bounded to [lower, upper] and
// returns its handle. Bounds must satisfy lower <= upper; an infinite bound
// leaves that side unconstrained.
func (p *Problem) AddVariable(lower, upper float64, name string) Var {
	if lower > upper {
		panic(fmt.Sprintf("lp: variable %q has lower bound %v > upper bound %v", name, lower, upper))
	}
	p.lower = append(p.lower, lower)
	p.upper = append(p.upper, upper)
	p.names = append(p.names, name)
	return Var(len(p.lower) - 1)
}

// AddEquality registers the constraint sum(terms) == rhs.
func (p *Problem) AddEquality(terms []Term, rhs float64) {
	p.equalities = append(p.equalities, equality{terms: append([]Term(nil), terms...), rhs: rhs})
}

// Maximize installs sum(terms) as the objective, to be maximized.
// Calling it again replaces the previous objective.
func (p *Problem) Maximize(terms []Term) {
	p.objective = append([]Term(nil), terms...)
	p.maximize = true
}

// Minimize installs sum(terms) as the objective, to be minimized.
func (p *Problem) Minimize(terms []Term) {
	p.objective = append([]Term(nil), terms...)
	p.maximize = false
}

// SolveStats carries diagnostics of one solve attempt. The simplex backend
// does not expose an iteration counter, so problem dimensions are reported
// alongside the wall-clock solve time. NumInequalities counts the bound rows
// of the lowered system, one per finite upper bound.
type SolveStats struct {
	SolveTime       time.Duration
	NumVariables    int
	NumEqualities   int
	NumInequalities int
}

// Solution holds the result of a successful or failed solve.
// Variable values are only available when Status == StatusOptimal.
type Solution struct {
	Status    Status
	Objective float64
	Stats     SolveStats

	values []float64
}

// Value returns the solved value of v. It panics when the solution is not
// optimal or v does not belong to the solved problem.
func (s *Solution) Value(v Var) float64 {
	if s.Status != StatusOptimal {
		panic("lp: no variable values available, solution is " + s.Status.String())
	}
	return s.values[v]
}

// Values maps a slice of variables to their solved values.
func (s *Solution) Values(vars []Var) []float64 {
	out := make([]float64, len(vars))
	for i, v := range vars {
		out[i] = s.Value(v)
	}
	return out
}

const simplexTol = 1e-10

// Solve lowers the problem to standard form (minimize c*y subject to
// A*y == b, y >= 0) and runs gonum's simplex method. A variable with a
// finite lower bound becomes a shifted column y = x - lower; a variable
// unbounded below is split into y+ - y-. Each finite upper bound adds one
// slack row y + s == upper - lower. This direct lowering keeps the
// constraint matrix full rank, which simplex needs to find an initial
// feasible basis. Solve never returns a partial solution: any non-optimal
// terminal status comes back with Status set and values unavailable.
func (p *Problem) Solve() (*Solution, error) {
	n := len(p.lower)
	if n == 0 {
		return nil, fmt.Errorf("lp: problem %q has no variables", p.name)
	}
	if len(p.objective) == 0 {
		return nil, fmt.Errorf("lp: problem %q has no objective", p.name)
	}

	// Column layout: one column per shifted variable, two per split
	// variable, then one slack column per finite upper bound.
	pos := make([]int, n)
	neg := make([]int, n)
	shift := make([]float64, n)
	nCols := 0
	for i := 0; i < n; i++ {
		pos[i] = nCols
		if math.IsInf(p.lower[i], -1) {
			neg[i] = nCols + 1
			nCols += 2
		} else {
			neg[i] = -1
			shift[i] = p.lower[i]
			nCols++
		}
	}

	var bounded []int
	for i := 0; i < n; i++ {
		if !math.IsInf(p.upper[i], 1) {
			bounded = append(bounded, i)
		}
	}

	nRows := len(p.equalities) + len(bounded)
	totalCols := nCols + len(bounded)

	// Objective coefficients; simplex minimizes, so negate for maximization.
	c := make([]float64, totalCols)
	for _, t := range p.objective {
		coeff := t.Coeff
		if p.maximize {
			coeff = -coeff
		}
		c[pos[t.Var]] += coeff
		if neg[t.Var] >= 0 {
			c[neg[t.Var]] -= coeff
		}
	}

	stats := SolveStats{
		NumVariables:    n,
		NumEqualities:   len(p.equalities),
		NumInequalities: len(bounded),
	}

	if nRows == 0 {
		// No equalities and no upper bounds: the minimum sits at the lower
		// bounds unless a coefficient rewards unlimited growth.
		sol := &Solution{Stats: stats}
		for _, coeff := range c {
			if coeff < 0 {
				sol.Status = StatusUnbounded
				return sol, fmt.Errorf("lp: solving %q: %w", p.name, lp.ErrUnbounded)
			}
		}
		values := append([]float64(nil), shift...)
		sol.Status = StatusOptimal
		sol.Objective = p.evaluate(values)
		sol.values = values
		return sol, nil
	}

	a := mat.NewDense(nRows, totalCols, nil)
	b := make([]float64, nRows)
	for r, eq := range p.equalities {
		b[r] = eq.rhs
		for _, t := range eq.terms {
			a.Set(r, pos[t.Var], a.At(r, pos[t.Var])+t.Coeff)
			if neg[t.Var] >= 0 {
				a.Set(r, neg[t.Var], a.At(r, neg[t.Var])-t.Coeff)
			}
			b[r] -= t.Coeff * shift[t.Var]
		}
	}
	for k, i := range bounded {
		r := len(p.equalities) + k
		a.Set(r, pos[i], 1)
		if neg[i] >= 0 {
			a.Set(r, neg[i], -1)
		}
		a.Set(r, nCols+k, 1)
		b[r] = p.upper[i] - shift[i]
	}

	start := time.Now()
	_, y, err := lp.Simplex(c, a, b, simplexTol, nil)
	stats.SolveTime = time.Since(start)

	sol := &Solution{Stats: stats}
	if err != nil {
		switch err {
		case lp.ErrInfeasible:
			sol.Status = StatusInfeasible
		case lp.ErrUnbounded:
			sol.Status = StatusUnbounded
		default:
			sol.Status = StatusError
		}
		return sol, fmt.Errorf("lp: solving %q: %w", p.name, err)
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = y[pos[i]] + shift[i]
		if neg[i] >= 0 {
			values[i] -= y[neg[i]]
		}
	}

	sol.Status = StatusOptimal
	sol.Objective = p.evaluate(values)
	sol.values = values
	return sol, nil
}

// evaluate computes the objective at the given variable values, in the
// problem's own orientation (no sign flip for maximization).
func (p *Problem) evaluate(values []float64) float64 {
	obj := 0.0
	for _, t := range p.objective {
		obj += t.Coeff * values[t.Var]
	}
	return obj
}
