package dp

import (
	"context"
	"time"

	"mobkp_instances/src/mobkp"
)

// label is a partial solution: its weight and objective vector.
type label struct {
	weight int64
	values []int64
}

func (l label) extend(it mobkp.Item) label {
	values := make([]int64, len(l.values))
	for j, v := range l.values {
		values[j] = v + it.Values[j]
	}
	return label{weight: l.weight + it.Weight, values: values}
}

// pruner removes dominated labels after every stage and extracts the final
// front. filter reports false when expired fired before it finished.
type pruner interface {
	filter(labels []label, expired func() bool) ([]label, bool)
	front(labels []label) [][]int64
}

type deadline struct {
	at    time.Time
	calls int
}

func newDeadline(timeout time.Duration) *deadline {
	if timeout <= 0 {
		return &deadline{}
	}
	return &deadline{at: time.Now().Add(timeout)}
}

// expired samples the clock only every 256 calls.
func (d *deadline) expired() bool {
	if d.at.IsZero() {
		return false
	}
	d.calls++
	if d.calls&0xff != 0 {
		return false
	}
	return time.Now().After(d.at)
}

func (d *deadline) passed() bool {
	return !d.at.IsZero() && time.Now().After(d.at)
}

func toSet(points [][]int64) *mobkp.SolutionSet {
	set := mobkp.NewSolutionSet()
	for _, p := range points {
		set.Add(p)
	}
	return set
}

// run is the Nemhauser-Ullmann recursion: stage k holds the labels of the
// first k items that are not dominated in (weight, values). When the
// deadline passes the front of the last completed stage is returned with
// mobkp.ErrTruncated.
func run(ctx context.Context, p *mobkp.Problem, timeout time.Duration, order []int, pr pruner) (*mobkp.SolutionSet, error) {
	dl := newDeadline(timeout)
	labels := []label{{values: make([]int64, p.M)}}
	for _, idx := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if dl.passed() {
			return toSet(pr.front(labels)), mobkp.ErrTruncated
		}
		it := p.Items[idx]
		next := make([]label, len(labels), 2*len(labels))
		copy(next, labels)
		for _, l := range labels {
			if l.weight+it.Weight <= p.Capacity {
				next = append(next, l.extend(it))
			}
		}
		filtered, ok := pr.filter(next, dl.expired)
		if !ok {
			return toSet(pr.front(labels)), mobkp.ErrTruncated
		}
		labels = filtered
	}
	return toSet(pr.front(labels)), nil
}

// TwoObjective solves m = 2 problems, pruning each stage with a sorted sweep
// over a two-dimensional staircase instead of pairwise comparisons.
type TwoObjective struct {
	// KeepOrder processes items in input order instead of by efficiency.
	KeepOrder bool
}

// General solves problems with any number of objectives.
type General struct {
	KeepOrder bool
}

func itemOrder(p *mobkp.Problem, keep bool) []int {
	if keep {
		return identity(p.N)
	}
	return Order(p)
}

func (s *TwoObjective) Solve(ctx context.Context, p *mobkp.Problem, timeout time.Duration) (*mobkp.SolutionSet, error) {
	if p.M != 2 {
		return nil, errTwoObjective(p.M)
	}
	return run(ctx, p, timeout, itemOrder(p, s.KeepOrder), biPruner{})
}

func (s *General) Solve(ctx context.Context, p *mobkp.Problem, timeout time.Duration) (*mobkp.SolutionSet, error) {
	return run(ctx, p, timeout, itemOrder(p, s.KeepOrder), multiPruner{})
}

var (
	_ mobkp.Solver = (*TwoObjective)(nil)
	_ mobkp.Solver = (*General)(nil)
)
