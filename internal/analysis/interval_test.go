package analysis

import (
	"math"
	"testing"

	"augbench/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidenceInterval95_EmptySampleErrors(t *testing.T) {
	_, _, err := ConfidenceInterval95(nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestConfidenceInterval95_SingleSampleUndefined(t *testing.T) {
	mean, ci, err := ConfidenceInterval95([]float64{96.45})
	require.NoError(t, err)
	assert.InDelta(t, 96.45, mean, 1e-9)
	assert.False(t, ci.Defined)
	assert.False(t, math.IsNaN(ci.HalfWidth))
	assert.False(t, math.IsInf(ci.HalfWidth, 0))
}

func TestConfidenceInterval95_IdenticalValuesZeroWidth(t *testing.T) {
	mean, ci, err := ConfidenceInterval95([]float64{96.35, 96.35, 96.35, 96.35})
	require.NoError(t, err)
	assert.InDelta(t, 96.35, mean, 1e-9)
	assert.True(t, ci.Defined)
	assert.InDelta(t, 0, ci.HalfWidth, 1e-12)
}

// Two observations {1, 3}: mean 2, sample std sqrt(2), standard error 1,
// t(0.975, df=1) = 12.7062, so the half-width is the critical value itself.
func TestConfidenceInterval95_KnownTwoSampleValue(t *testing.T) {
	mean, ci, err := ConfidenceInterval95([]float64{1, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2, mean, 1e-9)
	require.True(t, ci.Defined)
	assert.InDelta(t, 12.7062, ci.HalfWidth, 1e-3)
}

func TestConfidenceInterval95_NonNegativeFinite(t *testing.T) {
	samples := [][]float64{
		{96.0, 96.4},
		{96.39, 96.42, 96.45, 96.62, 96.32},
		{0, 0, 0.1},
		{-5, 3, 8, 12, -1, 0.5},
	}
	for _, sample := range samples {
		_, ci, err := ConfidenceInterval95(sample)
		require.NoError(t, err)
		require.True(t, ci.Defined)
		assert.GreaterOrEqual(t, ci.HalfWidth, 0.0)
		assert.False(t, math.IsNaN(ci.HalfWidth))
		assert.False(t, math.IsInf(ci.HalfWidth, 0))
	}
}

// The critical value shrinks monotonically toward the normal-distribution
// 1.96 as the degrees of freedom grow.
func TestTCritical95_MonotonicallyApproachesNormal(t *testing.T) {
	previous := tCritical95(1)
	for _, df := range []int{2, 3, 5, 10, 30, 100, 1000} {
		current := tCritical95(df)
		assert.Less(t, current, previous, "df=%d", df)
		previous = current
	}
	assert.Greater(t, previous, 1.959)
	assert.InDelta(t, 1.96, previous, 0.01)
}

func TestTCritical95_KnownQuantiles(t *testing.T) {
	assert.InDelta(t, 12.7062, tCritical95(1), 1e-3)
	assert.InDelta(t, 2.7764, tCritical95(4), 1e-3)
	assert.InDelta(t, 2.2622, tCritical95(9), 1e-3)
}

func TestSummarize(t *testing.T) {
	stat, err := Summarize("FAA (RA)", []float64{96.4, 96.3})
	require.NoError(t, err)
	assert.Equal(t, "FAA (RA)", stat.Method)
	assert.Equal(t, 2, stat.N)
	assert.InDelta(t, 96.35, stat.Mean, 1e-9)
	assert.True(t, stat.CI.Defined)
	assert.Greater(t, stat.CI.HalfWidth, 0.0)
}
