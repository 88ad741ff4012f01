//go:build highs

package main

import (
	"mobkp_instances/src/config"
	"mobkp_instances/src/mobkp"
	"mobkp_instances/src/mobkp/mip"
)

func init() {
	twoObjectiveSolvers[config.SolverHighs] = func() mobkp.Solver { return &mip.TwoObjective{} }
}
