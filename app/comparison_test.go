package app

import (
	"bytes"
	"testing"

	"augbench/domain/run"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildResult(model string, samples map[string][]float64) *run.AggregationResult {
	result := run.NewAggregationResult(model)
	for label, values := range samples {
		for _, v := range values {
			result.Append(label, v)
		}
	}
	return result
}

func TestCompare_MeanDifferenceWithSign(t *testing.T) {
	a := buildResult("WRN-40-2", map[string][]float64{
		"FAA (RA)": {96.0, 96.4},
		"UA (UA)":  {96.4, 96.5},
	})
	b := buildResult("WRN-28-2", map[string][]float64{
		"FAA (RA)": {95.8, 96.0},
		"UA (UA)":  {96.6, 96.7},
	})

	var out bytes.Buffer
	rows, err := NewComparisonService(run.DefaultRegistry(), &out, nil).Compare(a, b)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "FAA (RA)", rows[0].Method)
	assert.InDelta(t, 0.3, rows[0].Diff, 1e-9)
	assert.Equal(t, "UA (UA)", rows[1].Method)
	assert.InDelta(t, -0.2, rows[1].Diff, 1e-9)

	output := out.String()
	assert.Contains(t, output, "COMPARISON: WRN-40-2 vs WRN-28-2")
	// Non-negative differences carry an explicit plus sign.
	assert.Contains(t, output, "+0.30")
	assert.Contains(t, output, "-0.20")
}

// A method sampled on only one side is dropped from the table entirely, not
// rendered as N/A.
func TestCompare_OneSidedMethodOmitted(t *testing.T) {
	a := buildResult("WRN-40-2", map[string][]float64{
		"FAA (RA)": {96.0, 96.4},
	})
	b := buildResult("WRN-28-2", map[string][]float64{
		"UA (UA)": {96.1, 96.2},
	})

	var out bytes.Buffer
	rows, err := NewComparisonService(run.DefaultRegistry(), &out, nil).Compare(a, b)
	require.NoError(t, err)
	assert.Empty(t, rows)

	output := out.String()
	assert.NotContains(t, output, "FAA (RA)")
	assert.NotContains(t, output, "UA (UA)")
}

func TestCompare_SingleSampleSidesStillCompared(t *testing.T) {
	a := buildResult("WRN-40-2", map[string][]float64{"FAA (RA)": {96.4}})
	b := buildResult("WRN-28-2", map[string][]float64{"FAA (RA)": {96.1}})

	var out bytes.Buffer
	rows, err := NewComparisonService(run.DefaultRegistry(), &out, nil).Compare(a, b)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.False(t, rows[0].A.CI.Defined)
	assert.False(t, rows[0].B.CI.Defined)
	assert.InDelta(t, 0.3, rows[0].Diff, 1e-9)
	assert.Contains(t, out.String(), "96.40 ± n/a")
}

func TestCompare_NilResultRejected(t *testing.T) {
	a := buildResult("WRN-40-2", map[string][]float64{"FAA (RA)": {96.0}})

	var out bytes.Buffer
	svc := NewComparisonService(run.DefaultRegistry(), &out, nil)

	_, err := svc.Compare(a, nil)
	require.Error(t, err)
	_, err = svc.Compare(nil, a)
	require.Error(t, err)
}
