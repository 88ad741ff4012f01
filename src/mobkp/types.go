package mobkp

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

type InstanceType int

const (
	Random InstanceType = iota
	NegativeCorrelated
	PositiveCorrelated
)

var instanceTypeNames = [...]string{"random", "neg_corr", "pos_corr"}

// String returns the folder name used for instances of this type.
func (t InstanceType) String() string {
	if t < Random || t > PositiveCorrelated {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return instanceTypeNames[t]
}

func (t InstanceType) Correlated() bool {
	return t == NegativeCorrelated || t == PositiveCorrelated
}

// ParseInstanceType accepts the numeric form (0, 1, 2) or the folder name.
func ParseInstanceType(s string) (InstanceType, error) {
	s = strings.TrimSpace(s)
	for i, name := range instanceTypeNames {
		if s == name || s == strconv.Itoa(i) {
			return InstanceType(i), nil
		}
	}
	return 0, invalidParameter("type", "unknown instance type %q (must be 0, 1, 2 or random, neg_corr, pos_corr)", s)
}

type Item struct {
	Weight int64
	Values []int64
}

// Problem is the structured view of a RawInstance: one knapsack dimension of
// capacity Capacity and N items with M objective values each.
type Problem struct {
	N        int
	M        int
	Capacity int64
	Items    []Item
}

func (p *Problem) TotalWeight() int64 {
	var total int64
	for _, it := range p.Items {
		total += it.Weight
	}
	return total
}

func (p *Problem) String() string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "N. items: %d\n", p.N)
	fmt.Fprintf(s, "N. objectives: %d\n", p.M)
	fmt.Fprintf(s, "Capacity: %d\n", p.Capacity)
	for i, it := range p.Items {
		fmt.Fprintf(s, "Item %d: weight %d, values %v\n", i, it.Weight, it.Values)
	}
	return s.String()
}

// SolutionSet holds distinct objective vectors in insertion order.
type SolutionSet struct {
	points [][]int64
	index  map[string]struct{}
}

func NewSolutionSet() *SolutionSet {
	return &SolutionSet{index: make(map[string]struct{})}
}

func pointKey(v []int64) string {
	b := make([]byte, 0, len(v)*8)
	for i, x := range v {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, x, 10)
	}
	return string(b)
}

// Add inserts a copy of v and reports whether it was not already present.
func (s *SolutionSet) Add(v []int64) bool {
	k := pointKey(v)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.points = append(s.points, slices.Clone(v))
	return true
}

func (s *SolutionSet) Contains(v []int64) bool {
	_, ok := s.index[pointKey(v)]
	return ok
}

func (s *SolutionSet) Len() int {
	return len(s.points)
}

// Points returns the vectors in insertion order. The slice must not be modified.
func (s *SolutionSet) Points() [][]int64 {
	return s.points
}

// Sorted returns the vectors in lexicographic ascending order.
func (s *SolutionSet) Sorted() [][]int64 {
	out := slices.Clone(s.points)
	slices.SortFunc(out, func(a, b []int64) int { return slices.Compare(a, b) })
	return out
}

func (s *SolutionSet) String() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "Non-dominated points: %d\n", s.Len())
	for _, p := range s.Sorted() {
		fmt.Fprintf(b, "%v\n", p)
	}
	return b.String()
}

// RunStats is one row of the per-dimension stats file.
type RunStats struct {
	M           int
	N           int
	Seed        int64
	Correlation float64
	Elapsed     time.Duration
	Solutions   int
}
