package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"mobkp_instances/src/config"
	"mobkp_instances/src/mobkp"
)

type options struct {
	typ          string
	n            int
	nRange       string
	m            int
	seed         int64
	seedRange    string
	correlation  float64
	corrList     string
	timeout      float64
	weightFactor float64
	folder       string
	outfile      string

	configPath string
	rScript    string
	generator  string
	solver     string
	maxValue   int64
	baseDir    string
	statsDir   string
	logLevel   string
	logFormat  string
	keepGoing  bool

	flags *pflag.FlagSet
}

func newFlagSet(o *options, output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("mobkp-instances", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintln(output, "Instances for the Multi-Objective Binary Knapsack Problem (MOBKP)")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Usage: mobkp-instances --type=T --n=N --m=M [flags]")
		fs.PrintDefaults()
	}

	fs.StringVar(&o.typ, "type", "", "Type of instance to generate (0: random, 1: negative correlation, 2: positive correlation)")
	fs.IntVar(&o.n, "n", 0, "Number of variables")
	fs.StringVar(&o.nRange, "n-range", "", "Range of variables as start-end[:step], replaces --n")
	fs.IntVar(&o.m, "m", 0, "Number of objectives")
	fs.Int64Var(&o.seed, "seed", time.Now().Unix(), "Seed value")
	fs.StringVar(&o.seedRange, "seed-range", "", "Range of seeds as start-end[:step], replaces --seed")
	fs.Float64Var(&o.correlation, "correlation", 0, "Correlation value between objectives")
	fs.StringVar(&o.corrList, "correlation-list", "", "Comma separated correlations, replaces --correlation")
	fs.Float64Var(&o.timeout, "timeout", 0, "Timeout value in seconds (default from config, 30 days)")
	fs.Float64Var(&o.weightFactor, "weight-factor", 0, "Weight factor (default from config, 0.5)")
	fs.StringVar(&o.folder, "folder-path", "", "Folder path to save the instances (default <base-dir>/<type>/<m>D)")
	fs.StringVar(&o.outfile, "outfile", "", "Output file name, single instance only")

	fs.StringVar(&o.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&o.rScript, "r-script", "", "External generator for correlated instances")
	fs.StringVar(&o.generator, "generator", "", "Correlated generator: external or gaussian")
	fs.StringVar(&o.solver, "solver", "", "Two-objective solver: "+solverNames())
	fs.Int64Var(&o.maxValue, "max-value", 0, "Exclusive upper bound of generated weights and values")
	fs.StringVar(&o.baseDir, "base-dir", "", "Root of the default instance folders")
	fs.StringVar(&o.statsDir, "stats-folder", "", "Folder of the times<m>D.csv files (default the instance folder)")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", "", "Log format: text or json")
	fs.BoolVar(&o.keepGoing, "keep-going", false, "Continue a batch after a failed instance")

	o.flags = fs
	return fs
}

func parseOptions(args []string, output io.Writer) (*options, error) {
	o := new(options)
	fs := newFlagSet(o, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	for _, name := range []string{"type", "m"} {
		if !fs.Changed(name) {
			return nil, fmt.Errorf("--%s is required", name)
		}
	}
	if !fs.Changed("n") && o.nRange == "" {
		return nil, fmt.Errorf("--n or --n-range is required")
	}
	return o, nil
}

// loadConfig reads --config when given and lets explicit flags override it.
func (o *options) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(o.configPath); err != nil {
			return nil, err
		}
	}
	override := func(name string, apply func()) {
		if o.flags.Changed(name) {
			apply()
		}
	}
	override("r-script", func() { cfg.GeneratorPath = o.rScript })
	override("generator", func() { cfg.Generator = o.generator })
	override("solver", func() { cfg.TwoObjective = o.solver })
	override("max-value", func() { cfg.MaxValue = o.maxValue })
	override("base-dir", func() { cfg.BaseDir = o.baseDir })
	override("stats-folder", func() { cfg.StatsDir = o.statsDir })
	override("log-level", func() { cfg.LogLevel = o.logLevel })
	override("log-format", func() { cfg.LogFormat = o.logFormat })
	override("weight-factor", func() { cfg.WeightFactor = o.weightFactor })
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// params leaves range checking to the mobkp validator.
func (o *options) params(cfg *config.Config) (mobkp.Params, error) {
	typ, err := mobkp.ParseInstanceType(o.typ)
	if err != nil {
		return mobkp.Params{}, err
	}
	timeout, err := cfg.GetTimeout()
	if err != nil {
		return mobkp.Params{}, err
	}
	if o.flags.Changed("timeout") {
		if timeout, err = mobkp.TimeoutFromSeconds(o.timeout); err != nil {
			return mobkp.Params{}, err
		}
	}
	return mobkp.Params{
		Type:         typ,
		N:            o.n,
		M:            o.m,
		Seed:         o.seed,
		Correlation:  o.correlation,
		WeightFactor: cfg.WeightFactor,
		Timeout:      timeout,
		Folder:       o.folder,
		OutFile:      o.outfile,
	}, nil
}
