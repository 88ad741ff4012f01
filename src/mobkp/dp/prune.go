package dp

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
)

func errTwoObjective(m int) error {
	return fmt.Errorf("two-objective solver called with m=%d", m)
}

// lexDesc orders value vectors lexicographically, largest first.
func lexDesc(a, b []int64) int {
	return slices.Compare(b, a)
}

func byWeightThenValues(a, b label) int {
	if c := cmp.Compare(a.weight, b.weight); c != 0 {
		return c
	}
	return lexDesc(a.values, b.values)
}

// covers reports a >= b in every objective.
func covers(a, b []int64) bool {
	for j := range a {
		if a[j] < b[j] {
			return false
		}
	}
	return true
}

type point2 struct{ v1, v2 int64 }

// staircase holds mutually non-dominated 2-D points sorted by v1
// descending, hence v2 ascending.
type staircase []point2

// prefix is the number of points with v1 >= p.v1.
func (s staircase) prefix(p point2) int {
	return sort.Search(len(s), func(i int) bool { return s[i].v1 < p.v1 })
}

func (s staircase) dominates(p point2) bool {
	k := s.prefix(p)
	return k > 0 && s[k-1].v2 >= p.v2
}

// insert adds a point not dominated by s, dropping the points it dominates.
func (s staircase) insert(p point2) staircase {
	k := s.prefix(p)
	if k > 0 && s[k-1].v1 == p.v1 {
		k--
	}
	j := k
	for j < len(s) && s[j].v2 <= p.v2 {
		j++
	}
	return slices.Replace(s, k, j, p)
}

type biPruner struct{}

// filter visits labels by weight ascending so every potential dominator of
// a label is already on the staircase when the label is examined.
func (biPruner) filter(labels []label, expired func() bool) ([]label, bool) {
	slices.SortFunc(labels, byWeightThenValues)
	var stair staircase
	kept := labels[:0]
	for _, l := range labels {
		if expired() {
			return nil, false
		}
		p := point2{l.values[0], l.values[1]}
		if stair.dominates(p) {
			continue
		}
		stair = stair.insert(p)
		kept = append(kept, l)
	}
	return kept, true
}

func (biPruner) front(labels []label) [][]int64 {
	sorted := slices.Clone(labels)
	slices.SortFunc(sorted, func(a, b label) int { return lexDesc(a.values, b.values) })
	var out [][]int64
	best := int64(-1)
	for i, l := range sorted {
		if i == 0 || l.values[1] > best {
			out = append(out, l.values)
			best = l.values[1]
		}
	}
	return out
}

type multiPruner struct{}

func (multiPruner) filter(labels []label, expired func() bool) ([]label, bool) {
	slices.SortFunc(labels, byWeightThenValues)
	kept := labels[:0]
	for i := 0; i < len(labels); i++ {
		if expired() {
			return nil, false
		}
		l := labels[i]
		dominated := false
		for _, k := range kept {
			if covers(k.values, l.values) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, l)
		}
	}
	return kept, true
}

func (multiPruner) front(labels []label) [][]int64 {
	sorted := slices.Clone(labels)
	slices.SortFunc(sorted, func(a, b label) int { return lexDesc(a.values, b.values) })
	var out [][]int64
	for _, l := range sorted {
		dominated := false
		for _, o := range out {
			if covers(o, l.values) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, l.values)
		}
	}
	return out
}
