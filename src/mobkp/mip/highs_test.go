//go:build highs

package mip

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobkp_instances/src/mobkp"
	"mobkp_instances/src/mobkp/dp"
)

func TestMatchesDynamicProgramming(t *testing.T) {
	for seed := int64(0); seed < 3; seed++ {
		raw, err := mobkp.GenerateRandom(15, 2, seed, 0.5, 300)
		require.NoError(t, err)
		p := raw.Problem()

		want, err := (&dp.TwoObjective{}).Solve(context.Background(), p, time.Minute)
		require.NoError(t, err)
		got, err := (&TwoObjective{}).Solve(context.Background(), p, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want.Sorted(), got.Sorted(), "seed %d", seed)
	}
}

func TestRejectsThreeObjectives(t *testing.T) {
	raw, err := mobkp.GenerateRandom(5, 3, 1, 0.5, 300)
	require.NoError(t, err)
	_, err = (&TwoObjective{}).Solve(context.Background(), raw.Problem(), time.Second)
	assert.Error(t, err)
}

func TestTinyTimeoutTruncates(t *testing.T) {
	raw, err := mobkp.GenerateRandom(40, 2, 3, 0.5, 300)
	require.NoError(t, err)
	set, err := (&TwoObjective{}).Solve(context.Background(), raw.Problem(), time.Nanosecond)
	require.ErrorIs(t, err, mobkp.ErrTruncated)
	assert.NotNil(t, set)
}

func TestSolveStaysNearTimeout(t *testing.T) {
	raw, err := mobkp.GenerateRandom(300, 2, 5, 0.5, 300)
	require.NoError(t, err)
	start := time.Now()
	_, err = (&TwoObjective{}).Solve(context.Background(), raw.Problem(), 200*time.Millisecond)
	if err != nil {
		require.ErrorIs(t, err, mobkp.ErrTruncated)
	}
	assert.Less(t, time.Since(start), 5*time.Second)
}
