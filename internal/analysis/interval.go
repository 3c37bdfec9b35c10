// Package analysis holds the statistical estimators used when aggregating
// repeated-run results.
package analysis

import (
	"math"

	"augbench/domain/run"
	"augbench/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ConfidenceInterval95 computes the sample mean and the half-width of its
// 95% confidence interval using Student's t-distribution:
//
//	half-width = t(0.975, n-1) * s / sqrt(n)
//
// where s is the Bessel-corrected sample standard deviation. Pure function
// of the sample.
//
// n = 0 is an error. n = 1 returns the mean with an undefined interval: with
// zero degrees of freedom the variance estimator divides by zero, and an
// explicit sentinel keeps that distinct from a genuine zero-width interval.
func ConfidenceInterval95(sample []float64) (float64, run.ConfidenceInterval, error) {
	n := len(sample)
	if n == 0 {
		return 0, run.ConfidenceInterval{}, errors.InvalidInput("confidence interval requires a non-empty sample")
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return 0, run.ConfidenceInterval{}, errors.Wrap(err, "computing sample mean")
	}

	if n == 1 {
		return mean, run.ConfidenceInterval{Defined: false}, nil
	}

	std, err := stats.StandardDeviationSample(sample)
	if err != nil {
		return mean, run.ConfidenceInterval{}, errors.Wrap(err, "computing sample standard deviation")
	}

	se := std / math.Sqrt(float64(n))
	halfWidth := tCritical95(n-1) * se

	return mean, run.ConfidenceInterval{HalfWidth: halfWidth, Defined: true}, nil
}

// tCritical95 returns the two-sided 95% critical value of the t-distribution
// with the given degrees of freedom.
func tCritical95(degreesOfFreedom int) float64 {
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return tDist.Quantile(0.975)
}

// Summarize produces the per-method aggregate for a collected sample.
// Callers must not request a summary for an empty sample; zero-sample
// methods are a rendering state, not a statistic.
func Summarize(method string, sample run.MethodSample) (run.SummaryStatistic, error) {
	mean, ci, err := ConfidenceInterval95(sample)
	if err != nil {
		return run.SummaryStatistic{}, err
	}
	return run.SummaryStatistic{
		Method: method,
		N:      len(sample),
		Mean:   mean,
		CI:     ci,
	}, nil
}
