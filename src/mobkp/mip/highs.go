//go:build highs

// Package mip enumerates the exact front of two-objective instances with
// the HiGHS MIP solver, one lexicographic epsilon-constraint pair per point.
// It needs libhighs and is only built with -tags highs.
package mip

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lanl/highs"

	"mobkp_instances/src/mobkp"
)

type TwoObjective struct{}

var _ mobkp.Solver = (*TwoObjective)(nil)

func column(p *mobkp.Problem, j int) []float64 {
	col := make([]float64, p.N)
	for i, it := range p.Items {
		col[i] = float64(it.Values[j])
	}
	return col
}

// defKnapsack builds max c·x subject to the capacity row and
// floor <= bound·x, x binary.
func defKnapsack(p *mobkp.Problem, costs, bound []float64, floor float64) *highs.Model {
	lp := new(highs.Model)
	lp.Maximize = true
	lp.VarTypes = make([]highs.VariableType, p.N)
	lp.ColLower = make([]float64, p.N)
	lp.ColUpper = make([]float64, p.N)
	for j := range p.N {
		lp.VarTypes[j] = highs.IntegerType
		lp.ColUpper[j] = 1
	}
	lp.ColCosts = costs

	weights := make([]float64, p.N)
	for i, it := range p.Items {
		weights[i] = float64(it.Weight)
	}
	lp.AddDenseRow(0, weights, float64(p.Capacity))
	lp.AddDenseRow(floor, bound, math.Inf(1))
	return lp
}

type outcome int

const (
	optimal outcome = iota
	infeasible
	timedOut
)

// runHighsSolver solves lp within budget and returns the objective vector of
// the optimal selection.
func runHighsSolver(p *mobkp.Problem, lp *highs.Model, budget time.Duration) ([]int64, outcome, error) {
	raw, err := lp.ToRawModel()
	if err != nil {
		return nil, 0, err
	}
	if err := raw.SetFloatOption("time_limit", budget.Seconds()); err != nil {
		return nil, 0, err
	}
	solution, err := raw.Solve()
	if err != nil {
		return nil, 0, err
	}
	switch solution.Status {
	case highs.Optimal:
	case highs.TimeLimit:
		return nil, timedOut, nil
	default:
		return nil, infeasible, nil
	}
	point := make([]int64, p.M)
	for i, it := range p.Items {
		if solution.ColumnPrimal[i] > 0.5 {
			for j := range point {
				point[j] += it.Values[j]
			}
		}
	}
	return point, optimal, nil
}

// Solve walks the front from the f1-maximal end. Every MIP gets the time
// left before the deadline as its HiGHS time_limit; running out returns the
// points found so far with mobkp.ErrTruncated.
func (s *TwoObjective) Solve(ctx context.Context, p *mobkp.Problem, timeout time.Duration) (*mobkp.SolutionSet, error) {
	if p.M != 2 {
		return nil, fmt.Errorf("highs two-objective solver called with m=%d", p.M)
	}
	deadline := time.Now().Add(timeout)
	f1, f2 := column(p, 0), column(p, 1)
	set := mobkp.NewSolutionSet()

	eps := 0.0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		budget := time.Until(deadline)
		if budget <= 0 {
			return set, mobkp.ErrTruncated
		}
		first, res, err := runHighsSolver(p, defKnapsack(p, f1, f2, eps), budget)
		if err != nil {
			return nil, err
		}
		switch res {
		case timedOut:
			return set, mobkp.ErrTruncated
		case infeasible:
			return set, nil
		}

		// among the maximisers of f1 take the best f2
		budget = time.Until(deadline)
		if budget <= 0 {
			return set, mobkp.ErrTruncated
		}
		point, res, err := runHighsSolver(p, defKnapsack(p, f2, f1, float64(first[0])), budget)
		if err != nil {
			return nil, err
		}
		switch res {
		case timedOut:
			return set, mobkp.ErrTruncated
		case infeasible:
			return nil, fmt.Errorf("highs: lexicographic stage infeasible at f1=%d", first[0])
		}
		set.Add(point)
		eps = float64(point[1] + 1)
	}
}
