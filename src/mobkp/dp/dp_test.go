package dp

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobkp_instances/src/mobkp"
)

// bruteForce enumerates every subset of p and keeps the non-dominated
// objective vectors.
func bruteForce(p *mobkp.Problem) *mobkp.SolutionSet {
	var feasible [][]int64
	for mask := 0; mask < 1<<p.N; mask++ {
		var w int64
		v := make([]int64, p.M)
		for i, it := range p.Items {
			if mask&(1<<i) == 0 {
				continue
			}
			w += it.Weight
			for j := range v {
				v[j] += it.Values[j]
			}
		}
		if w <= p.Capacity {
			feasible = append(feasible, v)
		}
	}
	set := mobkp.NewSolutionSet()
	for _, a := range feasible {
		dominated := false
		for _, b := range feasible {
			if covers(b, a) && !cmp.Equal(a, b) {
				dominated = true
				break
			}
		}
		if !dominated {
			set.Add(a)
		}
	}
	return set
}

func randomProblem(t *testing.T, n, m int, seed int64) *mobkp.Problem {
	t.Helper()
	raw, err := mobkp.GenerateRandom(n, m, seed, 0.5, 50)
	require.NoError(t, err)
	return raw.Problem()
}

func TestSolversMatchBruteForce(t *testing.T) {
	tests := []struct {
		name   string
		m      int
		solver mobkp.Solver
	}{
		{"two objective", 2, &TwoObjective{}},
		{"two objective input order", 2, &TwoObjective{KeepOrder: true}},
		{"general m=2", 2, &General{}},
		{"general m=3", 3, &General{}},
		{"general m=4 input order", 4, &General{KeepOrder: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := int64(0); seed < 5; seed++ {
				p := randomProblem(t, 12, tt.m, seed)
				got, err := tt.solver.Solve(context.Background(), p, time.Minute)
				require.NoError(t, err)
				want := bruteForce(p)
				if diff := cmp.Diff(want.Sorted(), got.Sorted()); diff != "" {
					t.Fatalf("seed %d: front mismatch (-want +got):\n%s", seed, diff)
				}
			}
		})
	}
}

func TestSolveKnownFront(t *testing.T) {
	p := &mobkp.Problem{
		N: 3, M: 2, Capacity: 30,
		Items: []mobkp.Item{
			{Weight: 10, Values: []int64{5, 1}},
			{Weight: 20, Values: []int64{1, 6}},
			{Weight: 30, Values: []int64{8, 2}},
		},
	}
	got, err := (&TwoObjective{}).Solve(context.Background(), p, time.Second)
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{6, 7}, {8, 2}}, got.Sorted())
}

func TestTwoObjectiveRejectsOtherDimensions(t *testing.T) {
	p := randomProblem(t, 4, 3, 1)
	_, err := (&TwoObjective{}).Solve(context.Background(), p, time.Second)
	assert.Error(t, err)
}

func TestTimeoutReturnsPartialFront(t *testing.T) {
	p := randomProblem(t, 30, 3, 7)
	got, err := (&General{}).Solve(context.Background(), p, time.Nanosecond)
	require.ErrorIs(t, err, mobkp.ErrTruncated)
	require.NotNil(t, got)
	assert.GreaterOrEqual(t, got.Len(), 1)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&General{}).Solve(ctx, randomProblem(t, 5, 2, 1), time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrderByEfficiency(t *testing.T) {
	p := &mobkp.Problem{
		N: 3, M: 2,
		Items: []mobkp.Item{
			{Weight: 10, Values: []int64{1, 1}},
			{Weight: 1, Values: []int64{5, 5}},
			{Weight: 2, Values: []int64{1, 1}},
		},
	}
	assert.Equal(t, []int{1, 2, 0}, Order(p))
}

func TestStaircase(t *testing.T) {
	var s staircase
	s = s.insert(point2{5, 1})
	s = s.insert(point2{1, 5})
	s = s.insert(point2{3, 3})
	assert.Equal(t, staircase{{5, 1}, {3, 3}, {1, 5}}, s)
	assert.True(t, s.dominates(point2{2, 3}))
	assert.True(t, s.dominates(point2{3, 3}))
	assert.False(t, s.dominates(point2{4, 2}))

	s = s.insert(point2{4, 4})
	assert.Equal(t, staircase{{5, 1}, {4, 4}, {1, 5}}, s)
}
