package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"mobkp_instances/src/logger"
	"mobkp_instances/src/mobkp"
)

type options struct {
	dir     string
	modify  bool
	verbose bool
}

func parseOptions(args []string, output io.Writer) (*options, error) {
	o := new(options)
	fs := pflag.NewFlagSet("mobkp-validate", pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVarP(&o.dir, "directory", "d", "instances", "Path to instances directory")
	fs.BoolVarP(&o.modify, "modify", "m", false, "Modify files to remove duplicate nondominated points")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Print detailed progress information")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func printSummary(w io.Writer, stats *mobkp.ValidationStats, modify bool) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(w, "\n%s\nValidation Summary\n%s\n", rule, rule)
	fmt.Fprintf(w, "Total files checked:     %d\n", stats.TotalFiles)
	fmt.Fprintf(w, "Files with duplicates:   %d\n", stats.FilesWithDuplicates)
	if modify {
		fmt.Fprintf(w, "Files fixed:             %d\n", stats.FilesFixed)
	}
	fmt.Fprintf(w, "Errors encountered:      %d\n", stats.Errors)

	switch {
	case stats.FilesWithDuplicates == 0 && stats.Errors == 0:
		fmt.Fprintln(w, "\nAll instances validated successfully!")
	case !modify && stats.FilesWithDuplicates > 0:
		fmt.Fprintln(w, "\nRun with --modify to fix duplicate issues.")
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	level := "info"
	if o.verbose {
		level = "debug"
	}
	log := logger.NewText(level, stderr)
	logger.SetDefault(log)
	defer logger.Sync()

	if info, err := os.Stat(o.dir); err != nil || !info.IsDir() {
		return fmt.Errorf("directory not found: %s", o.dir)
	}
	mode := "dry-run (report only)"
	if o.modify {
		mode = "modify"
	}
	fmt.Fprintf(stdout, "Validating instances in: %s\nMode: %s\n", o.dir, mode)

	logger.Debug("validating instances", "directory", o.dir, "modify", o.modify)
	stats, err := mobkp.ValidateTree(o.dir, o.modify, log)
	if err != nil {
		return err
	}
	printSummary(stdout, stats, o.modify)
	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
