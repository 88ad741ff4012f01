package main

import (
	"fmt"
	"slices"
	"strings"

	"mobkp_instances/src/config"
	"mobkp_instances/src/mobkp"
	"mobkp_instances/src/mobkp/dp"
)

// twoObjectiveSolvers is extended by solver_highs.go when built with -tags highs.
var twoObjectiveSolvers = map[string]func() mobkp.Solver{
	config.SolverDP: func() mobkp.Solver { return &dp.TwoObjective{} },
}

func solverNames() string {
	names := make([]string, 0, len(twoObjectiveSolvers))
	for name := range twoObjectiveSolvers {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func newSolverAdapter(name string) (*mobkp.SolverAdapter, error) {
	newTwo, ok := twoObjectiveSolvers[name]
	if !ok {
		return nil, fmt.Errorf("two-objective solver %q is not available in this build (have %s)", name, solverNames())
	}
	return &mobkp.SolverAdapter{TwoObjective: newTwo(), General: &dp.General{}}, nil
}
