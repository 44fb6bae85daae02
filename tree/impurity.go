package tree

import "math"

// Criterion selects the impurity measure used to score candidate splits.
type Criterion string

const (
	// CriterionGini is Gini impurity, for categorical labels.
	CriterionGini Criterion = "gini"
	// CriterionEntropy is Shannon entropy, for categorical labels.
	CriterionEntropy Criterion = "entropy"
	// CriterionVariance is population variance, for numeric labels.
	CriterionVariance Criterion = "variance"
)

// classCounts tallies label frequencies keyed by the label's string form.
func classCounts(labels []Value) map[string]int {
	counts := make(map[string]int, 4)
	for _, y := range labels {
		counts[y.String()]++
	}
	return counts
}

// Gini returns the Gini impurity 1 - sum(p_i^2) of a label vector.
// Zero iff all labels are identical. Callers must not pass an empty vector.
func Gini(labels []Value) float64 {
	n := float64(len(labels))
	imp := 1.0
	for _, c := range classCounts(labels) {
		p := float64(c) / n
		imp -= p * p
	}
	return imp
}

// Entropy returns the Shannon entropy -sum(p_i * log(p_i)) of a label
// vector. Zero iff all labels are identical.
func Entropy(labels []Value) float64 {
	n := float64(len(labels))
	var h float64
	for _, c := range classCounts(labels) {
		p := float64(c) / n
		h -= p * math.Log(p)
	}
	return h
}

// Variance returns the population variance (denominator n) of a numeric
// label vector.
func Variance(labels []Value) float64 {
	n := float64(len(labels))
	var mean float64
	for _, y := range labels {
		mean += y.Float()
	}
	mean /= n
	var ss float64
	for _, y := range labels {
		d := y.Float() - mean
		ss += d * d
	}
	return ss / n
}

// impurityFunc maps a criterion to its measure. Unknown criteria fall back
// to gini; constructors validate criteria before building, so this is only
// a safety net for direct engine use.
func impurityFunc(c Criterion) func([]Value) float64 {
	switch c {
	case CriterionEntropy:
		return Entropy
	case CriterionVariance:
		return Variance
	default:
		return Gini
	}
}

// infoGain returns the reduction in impurity achieved by splitting a node
// with the given impurity into the two label subsets.
func infoGain(current float64, trueY, falseY []Value, impurity func([]Value) float64) float64 {
	p := float64(len(trueY)) / float64(len(trueY)+len(falseY))
	return current - p*impurity(trueY) - (1-p)*impurity(falseY)
}
