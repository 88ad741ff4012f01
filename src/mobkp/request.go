package mobkp

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseDir = "../instances"

// Params are the raw, unvalidated fields of one generation request.
type Params struct {
	Type         InstanceType
	N            int
	M            int
	Seed         int64
	Correlation  float64
	WeightFactor float64
	Timeout      time.Duration
	Folder       string
	OutFile      string
}

// Request is a validated Params with its output location resolved.
type Request struct {
	Params
}

// MaxAbsCorrelation is the largest admissible |correlation| between m objectives.
func MaxAbsCorrelation(m int) float64 {
	return 1.0 / float64(m-1)
}

func (p *Params) validate() error {
	if p.M <= 1 {
		return invalidParameter("m", "number of objectives must be greater than 1, got %d", p.M)
	}
	if p.N <= 0 {
		return invalidParameter("n", "number of items must be positive, got %d", p.N)
	}
	if !shapeFits(int64(p.N), int64(p.M)) {
		return invalidParameter("n", "%d items with %d objectives do not fit in memory", p.N, p.M)
	}
	if p.Seed < 0 {
		return invalidParameter("seed", "must be non-negative, got %d", p.Seed)
	}
	if !(p.WeightFactor >= 0 && p.WeightFactor <= 1) {
		return invalidParameter("weight-factor", "must be between 0 and 1, got %g", p.WeightFactor)
	}
	if p.Timeout <= 0 {
		return invalidParameter("timeout", "must be positive, got %s", p.Timeout)
	}
	if p.Type < Random || p.Type > PositiveCorrelated {
		return invalidParameter("type", "must be between 0 and 2, got %d", int(p.Type))
	}
	return validateCorrelation(p.Type, p.M, p.Correlation)
}

func validateCorrelation(t InstanceType, m int, c float64) error {
	bound := MaxAbsCorrelation(m)
	switch t {
	case NegativeCorrelated:
		if !(c < 0 && c > -bound) {
			return invalidParameter("correlation", "negative correlation must be in (-%.4f, 0.0), got %g", bound, c)
		}
	case PositiveCorrelated:
		if !(c > 0 && c <= bound) {
			return invalidParameter("correlation", "positive correlation must be in (0.0, %.4f], got %g", bound, c)
		}
	}
	return nil
}

// TimeoutFromSeconds converts a command line timeout, rejecting values that
// are not positive or do not fit a time.Duration.
func TimeoutFromSeconds(seconds float64) (time.Duration, error) {
	if !(seconds > 0 && seconds < float64(math.MaxInt64)/float64(time.Second)) {
		return 0, invalidParameter("timeout", "must be a positive number of seconds, got %g", seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// DefaultFolder is <base>/<type-name>/<m>D.
func DefaultFolder(base string, t InstanceType, m int) string {
	return filepath.Join(base, t.String(), fmt.Sprintf("%dD", m))
}

// DefaultOutFile is <n>_<seed>.in, with _<correlation:.4f> before the
// extension for correlated types. Fields outside the name (weight factor,
// timeout) do not distinguish files.
func DefaultOutFile(t InstanceType, n int, seed int64, correlation float64) string {
	name := strconv.Itoa(n) + "_" + strconv.FormatInt(seed, 10)
	if t.Correlated() {
		name += fmt.Sprintf("_%.4f", correlation)
	}
	return name + ".in"
}

func (p *Params) resolve(base string) {
	if !p.Type.Correlated() {
		p.Correlation = 0
	}
	if p.Folder == "" {
		if base == "" {
			base = DefaultBaseDir
		}
		p.Folder = DefaultFolder(base, p.Type, p.M)
	}
	if p.OutFile == "" {
		p.OutFile = DefaultOutFile(p.Type, p.N, p.Seed, p.Correlation)
	}
}

func prepare(p Params, base string) (*Request, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.resolve(base)
	return &Request{Params: p}, nil
}

func (r *Request) ensureFolder() error {
	if err := os.MkdirAll(r.Folder, 0o755); err != nil {
		return ioFailure("create output folder", err)
	}
	return nil
}

// NewRequest validates p, derives the missing output folder and file name
// and creates the folder.
func NewRequest(p Params, base string) (*Request, error) {
	r, err := prepare(p, base)
	if err != nil {
		return nil, err
	}
	if err := r.ensureFolder(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Request) Path() string {
	return filepath.Join(r.Folder, r.OutFile)
}

func (r *Request) String() string {
	s := new(strings.Builder)
	s.WriteString("Instance Parameters:\n")
	fmt.Fprintf(s, "  Type: %s\n", r.Type)
	fmt.Fprintf(s, "  Size: %d items, %d objectives\n", r.N, r.M)
	fmt.Fprintf(s, "  Seed: %d\n", r.Seed)
	fmt.Fprintf(s, "  Correlation: %.4f\n", r.Correlation)
	fmt.Fprintf(s, "  Weight Factor: %.2f\n", r.WeightFactor)
	fmt.Fprintf(s, "  Timeout: %.1fs\n", r.Timeout.Seconds())
	fmt.Fprintf(s, "  Output: %s", r.Path())
	return s.String()
}
