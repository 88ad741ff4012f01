package mobkp

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTruncated is returned by a Solver alongside a non-nil set when the
// timeout elapsed before the search finished. The set is still a valid,
// possibly incomplete, approximation of the front.
var ErrTruncated = errors.New("solve truncated by timeout")

// Solver computes the non-dominated objective vectors of p within timeout.
type Solver interface {
	Solve(ctx context.Context, p *Problem, timeout time.Duration) (*SolutionSet, error)
}

type SolverFunc func(ctx context.Context, p *Problem, timeout time.Duration) (*SolutionSet, error)

func (f SolverFunc) Solve(ctx context.Context, p *Problem, timeout time.Duration) (*SolutionSet, error) {
	return f(ctx, p, timeout)
}

type SolveResult struct {
	Solutions *SolutionSet
	Elapsed   time.Duration
	Truncated bool
}

// SolverAdapter routes two-objective problems to TwoObjective and everything
// else to General.
type SolverAdapter struct {
	TwoObjective Solver
	General      Solver
}

func (a *SolverAdapter) solverFor(m int) (Solver, error) {
	var s Solver
	if m == 2 {
		s = a.TwoObjective
	} else {
		s = a.General
	}
	if s == nil {
		return nil, fmt.Errorf("no solver configured for m=%d", m)
	}
	return s, nil
}

// Solve decodes raw and runs the solver selected by its objective count.
// A timeout-truncated solve is reported as success with Truncated set.
func (a *SolverAdapter) Solve(ctx context.Context, raw *RawInstance, timeout time.Duration) (*Problem, *SolveResult, error) {
	s, err := a.solverFor(raw.M())
	if err != nil {
		return nil, nil, err
	}
	p := raw.Problem()

	start := time.Now()
	set, err := s.Solve(ctx, p, timeout)
	elapsed := time.Since(start)
	truncated := errors.Is(err, ErrTruncated)
	if err != nil && !truncated {
		return nil, nil, fmt.Errorf("solve n=%d m=%d: %w", p.N, p.M, err)
	}
	if set == nil {
		set = NewSolutionSet()
	}
	return p, &SolveResult{Solutions: set, Elapsed: elapsed, Truncated: truncated}, nil
}
