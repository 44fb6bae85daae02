package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/errors"
)

// ConfusionCounts holds the four cells of a binary confusion matrix.
type ConfusionCounts struct {
	TruePositive  int
	TrueNegative  int
	FalsePositive int
	FalseNegative int
}

// ConfusionMatrix counts prediction outcomes for binary labels. Both
// vectors must contain only 0s and 1s.
func ConfusionMatrix(yTrue, yPred *mat.VecDense) (ConfusionCounts, error) {
	var c ConfusionCounts
	n, err := checkVectors("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return c, err
	}
	if err := checkBinaryLabels("ConfusionMatrix", yTrue); err != nil {
		return c, err
	}
	if err := checkBinaryLabels("ConfusionMatrix", yPred); err != nil {
		return c, err
	}
	for i := 0; i < n; i++ {
		switch {
		case yTrue.AtVec(i) == 1 && yPred.AtVec(i) == 1:
			c.TruePositive++
		case yTrue.AtVec(i) == 0 && yPred.AtVec(i) == 0:
			c.TrueNegative++
		case yTrue.AtVec(i) == 0 && yPred.AtVec(i) == 1:
			c.FalsePositive++
		default:
			c.FalseNegative++
		}
	}
	return c, nil
}

// Precision returns TP / (TP + FP). When no positive predictions exist
// the metric is undefined and 0 is returned after emitting an
// UndefinedMetricWarning.
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	c, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	denom := c.TruePositive + c.FalsePositive
	if denom == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(
			"Precision", "no positive predictions", 0))
		return 0, nil
	}
	return float64(c.TruePositive) / float64(denom), nil
}

// Recall returns TP / (TP + FN). When no positive labels exist the
// metric is undefined and 0 is returned after emitting an
// UndefinedMetricWarning.
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	c, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	denom := c.TruePositive + c.FalseNegative
	if denom == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(
			"Recall", "no positive labels", 0))
		return 0, nil
	}
	return float64(c.TruePositive) / float64(denom), nil
}

// F1Score returns the harmonic mean of precision and recall, or 0 when
// both are 0.
func F1Score(yTrue, yPred *mat.VecDense) (float64, error) {
	p, err := Precision(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	r, err := Recall(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if p+r == 0 {
		return 0, nil
	}
	return 2 * p * r / (p + r), nil
}
