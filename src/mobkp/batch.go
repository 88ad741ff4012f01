package mobkp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// MaxRangeValues bounds the length of a single parsed range.
const MaxRangeValues = 1 << 20

// ParseRange parses "start-end" or "start-end:step" into the inclusive
// sequence start, start+step, ..., <= end.
func ParseRange[T constraints.Integer](field, s string) ([]T, error) {
	bounds, stepText, hasStep := strings.Cut(strings.TrimSpace(s), ":")
	startText, endText, ok := strings.Cut(bounds, "-")
	if !ok {
		return nil, invalidParameter(field, "range %q must be start-end or start-end:step", s)
	}
	start, err := strconv.ParseInt(strings.TrimSpace(startText), 10, 64)
	if err != nil {
		return nil, invalidParameter(field, "range %q: bad start: %v", s, err)
	}
	end, err := strconv.ParseInt(strings.TrimSpace(endText), 10, 64)
	if err != nil {
		return nil, invalidParameter(field, "range %q: bad end: %v", s, err)
	}
	step := int64(1)
	if hasStep {
		step, err = strconv.ParseInt(strings.TrimSpace(stepText), 10, 64)
		if err != nil {
			return nil, invalidParameter(field, "range %q: bad step: %v", s, err)
		}
	}
	if step <= 0 {
		return nil, invalidParameter(field, "range %q: step must be positive", s)
	}
	if start > end {
		return nil, invalidParameter(field, "range %q: start greater than end", s)
	}
	if int64(T(start)) != start || int64(T(end)) != end {
		return nil, invalidParameter(field, "range %q: bounds out of range", s)
	}
	// start <= end, so the unsigned difference is exact
	count := (uint64(end)-uint64(start))/uint64(step) + 1
	if count == 0 || count > MaxRangeValues {
		return nil, invalidParameter(field, "range %q expands to more than %d values", s, MaxRangeValues)
	}
	out := make([]T, count)
	for i := range out {
		out[i] = T(start + int64(i)*step)
	}
	return out, nil
}

// ParseFloatList parses a comma separated list of reals.
func ParseFloatList(field, s string) ([]float64, error) {
	var out []float64
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, invalidParameter(field, "list %q: %v", s, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidParameter(field, "list %q: %s is not a finite number", s, tok)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, invalidParameter(field, "list %q is empty", s)
	}
	return out, nil
}

// Batch holds the optional axes of a sweep. A nil axis falls back to the
// corresponding scalar of the base Params.
type Batch struct {
	Items        []int
	Seeds        []int64
	Correlations []float64
}

// ParseBatch builds a Batch from the textual range and list flags;
// empty strings leave the axis unset.
func ParseBatch(itemRange, seedRange, correlationList string) (*Batch, error) {
	b := new(Batch)
	var err error
	if itemRange != "" {
		if b.Items, err = ParseRange[int]("n-range", itemRange); err != nil {
			return nil, err
		}
	}
	if seedRange != "" {
		if b.Seeds, err = ParseRange[int64]("seed-range", seedRange); err != nil {
			return nil, err
		}
	}
	if correlationList != "" {
		if b.Correlations, err = ParseFloatList("correlation-list", correlationList); err != nil {
			return nil, err
		}
		if b.Correlations, err = distinctCorrelations(b.Correlations); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// distinctCorrelations drops repeated values. Distinct values that share a
// file name suffix would overwrite each other and are rejected.
func distinctCorrelations(corrs []float64) ([]float64, error) {
	seen := make(map[string]float64, len(corrs))
	out := corrs[:0]
	for _, c := range corrs {
		key := fmt.Sprintf("%.4f", c)
		if prev, ok := seen[key]; ok {
			if prev != c {
				return nil, invalidParameter("correlation-list", "%g and %g both name files _%s", prev, c, key)
			}
			continue
		}
		seen[key] = c
		out = append(out, c)
	}
	return out, nil
}

// Size is the number of requests Expand will produce for base.
func (b *Batch) Size(base Params) int {
	items, seeds, corrs := b.axes(base)
	return len(items) * len(seeds) * len(corrs)
}

func (b *Batch) axes(base Params) ([]int, []int64, []float64) {
	items := b.Items
	if len(items) == 0 {
		items = []int{base.N}
	}
	seeds := b.Seeds
	if len(seeds) == 0 {
		seeds = []int64{base.Seed}
	}
	corrs := b.Correlations
	if !base.Type.Correlated() {
		corrs = []float64{0}
	} else if len(corrs) == 0 {
		corrs = []float64{base.Correlation}
	}
	return items, seeds, corrs
}

// Expand produces the cross product items x correlations x seeds. Every
// request is validated before any output folder is created, so an invalid
// value anywhere in the sweep yields no requests at all. An explicit
// OutFile on base is only honoured for a single-request batch.
func (b *Batch) Expand(base Params, baseDir string) ([]*Request, error) {
	items, seeds, corrs := b.axes(base)
	total := len(items) * len(seeds) * len(corrs)
	reqs := make([]*Request, 0, total)
	for _, n := range items {
		for _, c := range corrs {
			for _, seed := range seeds {
				p := base
				p.N, p.Correlation, p.Seed = n, c, seed
				if total > 1 {
					p.OutFile = ""
				}
				r, err := prepare(p, baseDir)
				if err != nil {
					return nil, fmt.Errorf("batch request n=%d seed=%d correlation=%g: %w", n, seed, c, err)
				}
				reqs = append(reqs, r)
			}
		}
	}
	for _, r := range reqs {
		if err := r.ensureFolder(); err != nil {
			return nil, err
		}
	}
	return reqs, nil
}
