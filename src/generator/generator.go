package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"mobkp_instances/src/config"
	"mobkp_instances/src/logger"
	"mobkp_instances/src/mobkp"
)

func newLogger(cfg *config.Config, output io.Writer) *zap.SugaredLogger {
	if cfg.LogFormat == "json" {
		return logger.New(cfg.LogLevel, output)
	}
	return logger.NewText(cfg.LogLevel, output)
}

func newPipeline(cfg *config.Config, log *zap.SugaredLogger) (*mobkp.Pipeline, error) {
	solver, err := newSolverAdapter(cfg.TwoObjective)
	if err != nil {
		return nil, err
	}
	var correlated mobkp.Generator
	switch cfg.Generator {
	case config.GeneratorGaussian:
		correlated = &mobkp.GaussianGenerator{Max: cfg.MaxValue}
	default:
		correlated = &mobkp.ExternalGenerator{Path: cfg.GeneratorPath}
	}
	return &mobkp.Pipeline{
		Random:     &mobkp.RandomGenerator{Max: cfg.MaxValue},
		Correlated: correlated,
		Solver:     solver,
		StatsDir:   cfg.StatsDir,
		Log:        log,
	}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg, stderr)
	logger.SetDefault(log)
	defer logger.Sync()

	base, err := o.params(cfg)
	if err != nil {
		return err
	}
	batch, err := mobkp.ParseBatch(o.nRange, o.seedRange, o.corrList)
	if err != nil {
		return err
	}
	if o.outfile != "" && batch.Size(base) > 1 {
		logger.Warn("ignoring --outfile for a batch", "outfile", o.outfile, "instances", batch.Size(base))
	}
	pipeline, err := newPipeline(cfg, log)
	if err != nil {
		return err
	}
	reqs, err := batch.Expand(base, cfg.BaseDir)
	if err != nil {
		return err
	}
	results, err := pipeline.RunBatch(ctx, reqs, o.keepGoing)
	for _, res := range results {
		fmt.Fprintln(stdout, res.Request.Path())
	}
	if err != nil {
		return err
	}
	logger.Info("done", "instances", len(results))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
