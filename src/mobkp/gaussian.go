package mobkp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// GaussianGenerator synthesizes correlated instances in process. Objective
// values follow a multivariate normal with unit variances and every pairwise
// correlation equal to the requested one, rescaled to [1, Max-1]; weights are
// uniform as in RandomGenerator.
type GaussianGenerator struct {
	Max int64
}

// equicorrelation builds (1-c)I + cJ, which is positive definite exactly
// for -1/(m-1) < c < 1.
func equicorrelation(m int, c float64) *mat.SymDense {
	sigma := mat.NewSymDense(m, nil)
	for i := range m {
		for j := i; j < m; j++ {
			if i == j {
				sigma.SetSym(i, j, 1)
			} else {
				sigma.SetSym(i, j, c)
			}
		}
	}
	return sigma
}

func (g *GaussianGenerator) Generate(_ context.Context, r *Request) (*RawInstance, error) {
	maxValue := g.Max
	if maxValue <= 2 {
		maxValue = DefaultMaxValue
	}
	return GenerateGaussian(r.N, r.M, r.Seed, r.Correlation, r.WeightFactor, maxValue)
}

func GenerateGaussian(n, m int, seed int64, correlation, weightFactor float64, maxValue int64) (*RawInstance, error) {
	// c = 1 is admissible for m = 2 but makes the covariance singular
	correlation = math.Min(correlation, 1-1e-9)

	var chol mat.Cholesky
	if ok := chol.Factorize(equicorrelation(m, correlation)); !ok {
		return nil, invalidParameter("correlation", "covariance for correlation %g with m=%d is not positive definite", correlation, m)
	}
	var lower mat.TriDense
	chol.LTo(&lower)

	rng := newRand(seed)
	mean := float64(maxValue) / 2
	sd := float64(maxValue) / 6
	draws := mat.NewVecDense(m, nil)
	z := mat.NewVecDense(m, nil)

	data := make([]int64, RawLen(n, m))
	weights := make([]int64, n)
	for i := range n {
		off := 1 + i*(m+1)
		weights[i] = rng.Int64N(maxValue-1) + 1
		for j := range m {
			draws.SetVec(j, rng.NormFloat64())
		}
		z.MulVec(&lower, draws)
		for j := range m {
			v := int64(math.Round(mean + sd*z.AtVec(j)))
			data[off+j] = min(maxValue-1, max(1, v))
		}
		data[off+m] = weights[i]
	}
	data[0] = Capacity(weights, weightFactor)
	return NewRawInstance(n, m, data)
}

// ObservedCorrelation is the mean Pearson correlation over all pairs of
// objective columns of p.
func ObservedCorrelation(p *Problem) (float64, error) {
	if p.M < 2 || p.N < 2 {
		return 0, fmt.Errorf("observed correlation needs at least 2 items and 2 objectives")
	}
	cols := make([][]float64, p.M)
	for j := range cols {
		cols[j] = make([]float64, p.N)
		for i, it := range p.Items {
			cols[j][i] = float64(it.Values[j])
		}
	}
	var sum float64
	pairs := 0
	for a := 0; a < p.M; a++ {
		for b := a + 1; b < p.M; b++ {
			sum += stat.Correlation(cols[a], cols[b], nil)
			pairs++
		}
	}
	return sum / float64(pairs), nil
}
