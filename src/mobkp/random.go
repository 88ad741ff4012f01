package mobkp

import (
	"context"
	"math"
	"math/rand/v2"
)

const (
	DefaultMaxValue = 300

	// second PCG word, fixed so that the seed alone selects the stream
	pcgStream = 0x6d6f626b70
)

// Generator produces the raw encoding of one instance for a validated request.
type Generator interface {
	Generate(ctx context.Context, r *Request) (*RawInstance, error)
}

type GeneratorFunc func(ctx context.Context, r *Request) (*RawInstance, error)

func (f GeneratorFunc) Generate(ctx context.Context, r *Request) (*RawInstance, error) {
	return f(ctx, r)
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// Capacity is round(weightFactor * sum(weights)).
func Capacity(weights []int64, weightFactor float64) int64 {
	var total int64
	for _, w := range weights {
		total += w
	}
	return int64(math.Round(float64(total) * weightFactor))
}

// RandomGenerator draws every weight and value uniformly from [1, Max-1].
type RandomGenerator struct {
	Max int64
}

func (g *RandomGenerator) max() int64 {
	if g.Max <= 2 {
		return DefaultMaxValue
	}
	return g.Max
}

func (g *RandomGenerator) Generate(_ context.Context, r *Request) (*RawInstance, error) {
	return GenerateRandom(r.N, r.M, r.Seed, r.WeightFactor, g.max())
}

// GenerateRandom is deterministic in (n, m, seed, weightFactor, maxValue). For each
// item the weight is drawn before its m values.
func GenerateRandom(n, m int, seed int64, weightFactor float64, maxValue int64) (*RawInstance, error) {
	rng := newRand(seed)
	data := make([]int64, RawLen(n, m))
	weights := make([]int64, n)
	for i := range n {
		off := 1 + i*(m+1)
		weights[i] = rng.Int64N(maxValue-1) + 1
		for j := range m {
			data[off+j] = rng.Int64N(maxValue-1) + 1
		}
		data[off+m] = weights[i]
	}
	data[0] = Capacity(weights, weightFactor)
	return NewRawInstance(n, m, data)
}
