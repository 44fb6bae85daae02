// Package stats provides hypothesis tests used to compare model
// evaluation results, such as paired accuracy scores from
// cross-validation folds.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/groveml/grove/pkg/errors"
)

// TestResult is the outcome of a hypothesis test.
type TestResult struct {
	Statistic float64
	PValue    float64
	DF        float64
}

// Significant reports whether the p-value falls below alpha.
func (r TestResult) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// OneSampleTTest tests whether the mean of xs differs from mu.
// The p-value is two-sided.
func OneSampleTTest(xs []float64, mu float64) (TestResult, error) {
	n := len(xs)
	if n < 2 {
		return TestResult{}, errors.NewValueError("OneSampleTTest", "need at least two observations")
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if std == 0 {
		return TestResult{}, errors.NewValueError("OneSampleTTest", "zero variance sample")
	}
	t := (mean - mu) / (std / math.Sqrt(float64(n)))
	df := float64(n - 1)
	return TestResult{Statistic: t, PValue: twoSidedT(t, df), DF: df}, nil
}

// OneSampleZTest tests whether the mean of xs differs from mu when the
// population standard deviation sigma is known. The p-value is
// two-sided.
func OneSampleZTest(xs []float64, mu, sigma float64) (TestResult, error) {
	n := len(xs)
	if n < 1 {
		return TestResult{}, errors.NewValueError("OneSampleZTest", "need at least one observation")
	}
	if sigma <= 0 {
		return TestResult{}, errors.NewValidationError("sigma", "must be positive", sigma)
	}
	mean := stat.Mean(xs, nil)
	z := (mean - mu) / (sigma / math.Sqrt(float64(n)))
	dist := distuv.UnitNormal
	p := 2 * dist.Survival(math.Abs(z))
	if p > 1 {
		p = 1
	}
	return TestResult{Statistic: z, PValue: p}, nil
}

// TwoSampleTTest tests whether two independent samples have equal
// means using Welch's unequal-variance statistic.
func TwoSampleTTest(xs, ys []float64) (TestResult, error) {
	if len(xs) < 2 || len(ys) < 2 {
		return TestResult{}, errors.NewValueError("TwoSampleTTest", "need at least two observations per sample")
	}
	mx, sx := stat.MeanStdDev(xs, nil)
	my, sy := stat.MeanStdDev(ys, nil)
	nx, ny := float64(len(xs)), float64(len(ys))

	vx := sx * sx / nx
	vy := sy * sy / ny
	se := math.Sqrt(vx + vy)
	if se == 0 {
		return TestResult{}, errors.NewValueError("TwoSampleTTest", "zero variance samples")
	}
	t := (mx - my) / se

	// Welch-Satterthwaite degrees of freedom.
	df := (vx + vy) * (vx + vy) / (vx*vx/(nx-1) + vy*vy/(ny-1))
	return TestResult{Statistic: t, PValue: twoSidedT(t, df), DF: df}, nil
}

// PairedTTest tests whether paired observations have zero mean
// difference.
func PairedTTest(xs, ys []float64) (TestResult, error) {
	if len(xs) != len(ys) {
		return TestResult{}, errors.NewDimensionError("PairedTTest", len(xs), len(ys), 0)
	}
	diffs := make([]float64, len(xs))
	for i := range xs {
		diffs[i] = xs[i] - ys[i]
	}
	return OneSampleTTest(diffs, 0)
}

// ChiSquareGoodnessOfFit tests observed counts against expected counts.
func ChiSquareGoodnessOfFit(observed, expected []float64) (TestResult, error) {
	if len(observed) != len(expected) {
		return TestResult{}, errors.NewDimensionError("ChiSquareGoodnessOfFit", len(observed), len(expected), 0)
	}
	if len(observed) < 2 {
		return TestResult{}, errors.NewValueError("ChiSquareGoodnessOfFit", "need at least two categories")
	}
	var chi2 float64
	for i := range observed {
		if expected[i] <= 0 {
			return TestResult{}, errors.NewValueError("ChiSquareGoodnessOfFit", "expected counts must be positive")
		}
		d := observed[i] - expected[i]
		chi2 += d * d / expected[i]
	}
	df := float64(len(observed) - 1)
	dist := distuv.ChiSquared{K: df}
	return TestResult{Statistic: chi2, PValue: dist.Survival(chi2), DF: df}, nil
}

// ChiSquareIndependence tests independence of two categorical
// variables given a contingency table of counts.
func ChiSquareIndependence(table [][]float64) (TestResult, error) {
	rows := len(table)
	if rows < 2 {
		return TestResult{}, errors.NewValueError("ChiSquareIndependence", "need at least two rows")
	}
	cols := len(table[0])
	if cols < 2 {
		return TestResult{}, errors.NewValueError("ChiSquareIndependence", "need at least two columns")
	}

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	var total float64
	for i, row := range table {
		if len(row) != cols {
			return TestResult{}, errors.NewDimensionError("ChiSquareIndependence", cols, len(row), 1)
		}
		for j, v := range row {
			if v < 0 {
				return TestResult{}, errors.NewValueError("ChiSquareIndependence", "counts must be non-negative")
			}
			rowSums[i] += v
			colSums[j] += v
			total += v
		}
	}
	if total == 0 {
		return TestResult{}, errors.NewValueError("ChiSquareIndependence", "empty table")
	}

	var chi2 float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			exp := rowSums[i] * colSums[j] / total
			if exp == 0 {
				continue
			}
			d := table[i][j] - exp
			chi2 += d * d / exp
		}
	}
	df := float64((rows - 1) * (cols - 1))
	dist := distuv.ChiSquared{K: df}
	return TestResult{Statistic: chi2, PValue: dist.Survival(chi2), DF: df}, nil
}

func twoSidedT(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}
