package mobkp

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mobkp_instances/src/logger"
)

// Pipeline generates, solves and persists one instance per request.
type Pipeline struct {
	Random     Generator
	Correlated Generator
	Solver     *SolverAdapter
	// StatsDir receives the times<m>D.csv files; empty means the folder of
	// each request.
	StatsDir string
	Log      *zap.SugaredLogger
}

type Result struct {
	Request *Request
	Problem *Problem
	Solve   *SolveResult
}

func (p *Pipeline) log() *zap.SugaredLogger {
	if p.Log == nil {
		return logger.Default
	}
	return p.Log
}

func (p *Pipeline) generator(t InstanceType) (Generator, error) {
	g := p.Random
	if t.Correlated() {
		g = p.Correlated
	}
	if g == nil {
		return nil, fmt.Errorf("no generator configured for %s instances", t)
	}
	return g, nil
}

func (p *Pipeline) statsDir(r *Request) string {
	if p.StatsDir != "" {
		return p.StatsDir
	}
	return r.Folder
}

// Run handles a single request. A failing stats append is logged and does
// not fail the request.
func (p *Pipeline) Run(ctx context.Context, r *Request) (*Result, error) {
	log := p.log().With("file", r.Path())
	log.Debugf("%s", r)

	g, err := p.generator(r.Type)
	if err != nil {
		return nil, err
	}
	raw, err := g.Generate(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", r.Path(), err)
	}
	if raw.N() != r.N || raw.M() != r.M {
		return nil, malformed(r.Path(), "generated n=%d m=%d, requested n=%d m=%d", raw.N(), raw.M(), r.N, r.M)
	}

	problem, res, err := p.Solver.Solve(ctx, raw, r.Timeout)
	if err != nil {
		return nil, err
	}
	if rho, err := ObservedCorrelation(problem); err == nil {
		log.Debugw("generated instance", "capacity", problem.Capacity, "observed_correlation", rho)
	}
	if res.Truncated {
		log.Warnw("solve hit the timeout, front may be incomplete", "timeout", r.Timeout, "solutions", res.Solutions.Len())
	}

	if err := WriteInstanceFile(r.Path(), problem, res.Solutions); err != nil {
		return nil, err
	}
	log.Infow("saved instance", "solutions", res.Solutions.Len(), "elapsed", res.Elapsed)

	stats := &StatsLogger{Folder: p.statsDir(r)}
	st := RunStats{
		M:           r.M,
		N:           r.N,
		Seed:        r.Seed,
		Correlation: r.Correlation,
		Elapsed:     res.Elapsed,
		Solutions:   res.Solutions.Len(),
	}
	if err := stats.Append(st); err != nil {
		log.Errorw("failed to append stats", "stats_file", stats.Path(r.M), "error", err)
	}
	return &Result{Request: r, Problem: problem, Solve: res}, nil
}

// RunBatch runs reqs in order. By default the first failure aborts the rest;
// with keepGoing failures are logged, skipped and returned together.
func (p *Pipeline) RunBatch(ctx context.Context, reqs []*Request, keepGoing bool) ([]*Result, error) {
	results := make([]*Result, 0, len(reqs))
	var errs error
	for i, r := range reqs {
		if err := ctx.Err(); err != nil {
			return results, multierr.Append(errs, err)
		}
		p.log().Infow("generating instance", "index", i+1, "total", len(reqs), "file", r.Path())
		res, err := p.Run(ctx, r)
		if err != nil {
			if !keepGoing {
				return results, err
			}
			p.log().Errorw("instance failed, continuing", "file", r.Path(), "error", err)
			errs = multierr.Append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errs
}
