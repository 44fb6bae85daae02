package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/errors"
)

// logLossEpsilon clips predicted probabilities away from 0 and 1 so the
// log loss stays finite.
const logLossEpsilon = 1e-15

// AUC computes the area under the ROC curve for binary labels. Labels
// must be exactly 0 or 1. When only one class is present the metric is
// undefined and 0.5 is returned after emitting an UndefinedMetricWarning.
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinaryLabels("AUC", yTrue); err != nil {
		return 0, err
	}

	var nPos, nNeg int
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(
			"AUC", "only one class present", 0.5))
		return 0.5, nil
	}

	// Mann-Whitney U statistic with ties counted as half.
	var u float64
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != 1 {
			continue
		}
		for j := 0; j < n; j++ {
			if yTrue.AtVec(j) == 1 {
				continue
			}
			switch {
			case yPred.AtVec(i) > yPred.AtVec(j):
				u += 1
			case yPred.AtVec(i) == yPred.AtVec(j):
				u += 0.5
			}
		}
	}
	return u / float64(nPos*nNeg), nil
}

// AUCMatrix computes AUC over the first column of matrix inputs.
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tv, err := firstColumn("AUCMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := firstColumn("AUCMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return AUC(tv, pv)
}

// BinaryLogLoss computes the negative log likelihood of binary labels
// under predicted probabilities. Predictions are clipped to
// [epsilon, 1-epsilon] before taking logarithms.
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinaryLabels("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		p := yPred.AtVec(i)
		if p < logLossEpsilon {
			p = logLossEpsilon
		} else if p > 1-logLossEpsilon {
			p = 1 - logLossEpsilon
		}
		if yTrue.AtVec(i) == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	return sum / float64(n), nil
}

// ClassificationError returns the fraction of predictions that differ
// from the true labels.
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("ClassificationError", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	var wrong int
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != yPred.AtVec(i) {
			wrong++
		}
	}
	return float64(wrong) / float64(n), nil
}

// Accuracy returns the fraction of correct predictions.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	errRate, err := ClassificationError(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - errRate, nil
}

func checkBinaryLabels(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return nil
}
