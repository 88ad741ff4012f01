package mobkp

import (
	"fmt"
	"math"
)

// RawInstance is the flat encoding handed to the solver boundary: the capacity
// followed by, for every item, its M objective values and then its weight.
// The buffer carries no tags, so N and M travel with it.
type RawInstance struct {
	n, m int
	data []int64
}

func RawLen(n, m int) int {
	return 1 + n*(m+1)
}

// shapeFits reports whether n items of m objectives have a representable
// RawLen.
func shapeFits(n, m int64) bool {
	if n <= 0 || m <= 1 || m >= math.MaxInt-1 {
		return false
	}
	return n <= (math.MaxInt-1)/(m+1)
}

// NewRawInstance wraps data without copying it.
func NewRawInstance(n, m int, data []int64) (*RawInstance, error) {
	if !shapeFits(int64(n), int64(m)) {
		return nil, fmt.Errorf("raw instance: invalid shape n=%d m=%d", n, m)
	}
	if len(data) != RawLen(n, m) {
		return nil, fmt.Errorf("raw instance: length %d, want %d for n=%d m=%d", len(data), RawLen(n, m), n, m)
	}
	return &RawInstance{n: n, m: m, data: data}, nil
}

// EncodeProblem flattens p into its raw encoding.
func EncodeProblem(p *Problem) (*RawInstance, error) {
	if len(p.Items) != p.N {
		return nil, fmt.Errorf("raw instance: problem has %d items, want %d", len(p.Items), p.N)
	}
	data := make([]int64, 1, RawLen(p.N, p.M))
	data[0] = p.Capacity
	for i, it := range p.Items {
		if len(it.Values) != p.M {
			return nil, fmt.Errorf("raw instance: item %d has %d values, want %d", i, len(it.Values), p.M)
		}
		data = append(data, it.Values...)
		data = append(data, it.Weight)
	}
	return NewRawInstance(p.N, p.M, data)
}

func (r *RawInstance) N() int { return r.n }
func (r *RawInstance) M() int { return r.m }

func (r *RawInstance) Capacity() int64 {
	return r.data[0]
}

func (r *RawInstance) offset(i int) int {
	return 1 + i*(r.m+1)
}

func (r *RawInstance) Value(i, j int) int64 {
	return r.data[r.offset(i)+j]
}

func (r *RawInstance) Weight(i int) int64 {
	return r.data[r.offset(i)+r.m]
}

// Data returns the underlying buffer. It must not be modified.
func (r *RawInstance) Data() []int64 {
	return r.data
}

// Problem decodes the buffer into a freshly allocated Problem.
func (r *RawInstance) Problem() *Problem {
	p := &Problem{
		N:        r.n,
		M:        r.m,
		Capacity: r.Capacity(),
		Items:    make([]Item, r.n),
	}
	for i := range r.n {
		off := r.offset(i)
		values := make([]int64, r.m)
		copy(values, r.data[off:off+r.m])
		p.Items[i] = Item{Weight: r.data[off+r.m], Values: values}
	}
	return p
}
