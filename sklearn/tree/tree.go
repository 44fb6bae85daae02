// Package tree provides scikit-learn style decision-tree estimators on
// gonum matrices, backed by grove's core tree engine.
package tree

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/core/model"
	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/tree"
)

// DecisionTreeClassifier is a CART-style classifier with the familiar
// Fit/Predict/PredictProba surface.
type DecisionTreeClassifier struct {
	model.BaseEstimator
	treeParams

	tree      *tree.Tree
	classes_  []float64
	nClasses_ int
	nFeatures int
}

// NewDecisionTreeClassifier creates a classifier with criterion "gini",
// unlimited depth, min_samples_split 2 and min_samples_leaf 1 unless
// overridden.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	dt := &DecisionTreeClassifier{
		treeParams: treeParams{
			criterion:       "gini",
			minSamplesSplit: 2,
			minSamplesLeaf:  1,
		},
	}
	for _, opt := range opts {
		opt(&dt.treeParams)
	}
	return dt
}

// Fit grows the tree on X (rows = samples) and integer-coded labels y.
func (dt *DecisionTreeClassifier) Fit(X, y mat.Matrix) error {
	if dt.criterion != "gini" && dt.criterion != "entropy" {
		return errors.NewValidationError("criterion", "must be gini or entropy", dt.criterion)
	}
	samples, labels, err := matrixToSamples("DecisionTreeClassifier.Fit", X, y)
	if err != nil {
		return err
	}

	dt.classes_ = distinctSorted(labels)
	dt.nClasses_ = len(dt.classes_)
	dt.nFeatures = len(samples[0])

	catLabels := make([]tree.Value, len(labels))
	for i, v := range labels {
		catLabels[i] = tree.Cat(formatClass(v))
	}

	t, err := tree.Build(samples, catLabels, dt.engineOptions(tree.Criterion(dt.criterion))...)
	if err != nil {
		return err
	}
	dt.tree = t
	dt.SetFitted()
	return nil
}

// Predict returns the most probable class for every row of X.
func (dt *DecisionTreeClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	probas, err := dt.PredictProba(X)
	if err != nil {
		return nil, err
	}
	rows, _ := probas.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		bestJ, bestP := 0, probas.At(i, 0)
		for j := 1; j < dt.nClasses_; j++ {
			if p := probas.At(i, j); p > bestP {
				bestJ, bestP = j, p
			}
		}
		out.Set(i, 0, dt.classes_[bestJ])
	}
	return out, nil
}

// PredictProba returns the class-probability matrix (rows x nClasses),
// columns ordered by ascending class value.
func (dt *DecisionTreeClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !dt.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTreeClassifier", "PredictProba")
	}
	samples, err := matrixToFeatureRows("DecisionTreeClassifier.PredictProba", X, dt.nFeatures)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(samples), dt.nClasses_, nil)
	for i, pred := range dt.tree.PredictBatch(samples) {
		for j, cls := range dt.classes_ {
			out.Set(i, j, pred.Dist[formatClass(cls)])
		}
	}
	return out, nil
}

// Score returns the mean accuracy on X against the true labels y.
func (dt *DecisionTreeClassifier) Score(X, y mat.Matrix) float64 {
	preds, err := dt.Predict(X)
	if err != nil {
		return 0
	}
	rows, _ := preds.Dims()
	if rows == 0 {
		return 0
	}
	correct := 0
	for i := 0; i < rows; i++ {
		if preds.At(i, 0) == y.At(i, 0) {
			correct++
		}
	}
	return float64(correct) / float64(rows)
}

// GetFeatureImportances returns normalized gain-weighted importances.
func (dt *DecisionTreeClassifier) GetFeatureImportances() []float64 {
	if dt.tree == nil {
		return nil
	}
	return dt.tree.FeatureImportances()
}

// GetDepth returns the number of split levels in the fitted tree.
func (dt *DecisionTreeClassifier) GetDepth() int {
	if dt.tree == nil {
		return 0
	}
	return dt.tree.Depth() - 1
}

// GetNLeaves returns the number of leaves in the fitted tree.
func (dt *DecisionTreeClassifier) GetNLeaves() int {
	if dt.tree == nil {
		return 0
	}
	return dt.tree.NLeaves()
}

// GetParams returns the hyperparameters in scikit-learn naming.
func (dt *DecisionTreeClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"criterion":         dt.criterion,
		"max_depth":         dt.maxDepth,
		"min_samples_split": dt.minSamplesSplit,
		"min_samples_leaf":  dt.minSamplesLeaf,
	}
}

// SetParams updates hyperparameters from a scikit-learn style map.
func (dt *DecisionTreeClassifier) SetParams(params map[string]interface{}) error {
	for name, value := range params {
		switch name {
		case "criterion":
			s, ok := value.(string)
			if !ok {
				return errors.NewValidationError(name, "must be a string", value)
			}
			dt.criterion = s
		case "max_depth":
			n, err := asInt(name, value)
			if err != nil {
				return err
			}
			dt.maxDepth = n
		case "min_samples_split":
			n, err := asInt(name, value)
			if err != nil {
				return err
			}
			dt.minSamplesSplit = n
		case "min_samples_leaf":
			n, err := asInt(name, value)
			if err != nil {
				return err
			}
			dt.minSamplesLeaf = n
		default:
			return errors.NewValidationError(name, "unknown parameter", value)
		}
	}
	return nil
}

// DecisionTreeRegressor is a CART-style regressor using variance
// reduction.
type DecisionTreeRegressor struct {
	model.BaseEstimator
	treeParams

	tree      *tree.Tree
	nFeatures int
}

// NewDecisionTreeRegressor creates a regressor with unlimited depth,
// min_samples_split 2 and min_samples_leaf 1 unless overridden.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	dt := &DecisionTreeRegressor{
		treeParams: treeParams{
			criterion:       "variance",
			minSamplesSplit: 2,
			minSamplesLeaf:  1,
		},
	}
	for _, opt := range opts {
		opt(&dt.treeParams)
	}
	return dt
}

// Fit grows the tree on X and numeric targets y.
func (dt *DecisionTreeRegressor) Fit(X, y mat.Matrix) error {
	if dt.criterion != "variance" {
		return errors.NewValidationError("criterion", "must be variance", dt.criterion)
	}
	samples, labels, err := matrixToSamples("DecisionTreeRegressor.Fit", X, y)
	if err != nil {
		return err
	}
	dt.nFeatures = len(samples[0])

	numLabels := make([]tree.Value, len(labels))
	for i, v := range labels {
		numLabels[i] = tree.Num(v)
	}

	t, err := tree.Build(samples, numLabels, dt.engineOptions(tree.CriterionVariance)...)
	if err != nil {
		return err
	}
	dt.tree = t
	dt.SetFitted()
	return nil
}

// Predict returns the leaf-mean prediction for every row of X.
func (dt *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !dt.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTreeRegressor", "Predict")
	}
	samples, err := matrixToFeatureRows("DecisionTreeRegressor.Predict", X, dt.nFeatures)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(samples), 1, nil)
	for i, pred := range dt.tree.PredictBatch(samples) {
		out.Set(i, 0, pred.Value)
	}
	return out, nil
}

// Score returns the coefficient of determination R^2 on X, y.
func (dt *DecisionTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
	preds, err := dt.Predict(X)
	if err != nil {
		return 0, err
	}
	rows, _ := preds.Dims()
	var mean float64
	for i := 0; i < rows; i++ {
		mean += y.At(i, 0)
	}
	mean /= float64(rows)
	var ssRes, ssTot float64
	for i := 0; i < rows; i++ {
		r := y.At(i, 0) - preds.At(i, 0)
		d := y.At(i, 0) - mean
		ssRes += r * r
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0, errors.NewValueError("DecisionTreeRegressor.Score", "constant target has no defined R^2")
	}
	return 1 - ssRes/ssTot, nil
}

// matrixToSamples converts a gonum feature matrix and label column into
// the engine's representation. NaN cells become missing values.
func matrixToSamples(op string, X, y mat.Matrix) ([]tree.Sample, []float64, error) {
	if X == nil || y == nil {
		return nil, nil, errors.NewModelError(op, "nil input", errors.ErrEmptyData)
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	yRows, _ := y.Dims()
	if yRows != rows {
		return nil, nil, errors.NewDimensionError(op, rows, yRows, 0)
	}
	samples, err := matrixToFeatureRows(op, X, cols)
	if err != nil {
		return nil, nil, err
	}
	labels := make([]float64, rows)
	for i := range labels {
		labels[i] = y.At(i, 0)
	}
	return samples, labels, nil
}

func matrixToFeatureRows(op string, X mat.Matrix, wantCols int) ([]tree.Sample, error) {
	rows, cols := X.Dims()
	if wantCols > 0 && cols != wantCols {
		return nil, errors.NewDimensionError(op, wantCols, cols, 1)
	}
	samples := make([]tree.Sample, rows)
	for i := 0; i < rows; i++ {
		s := make(tree.Sample, cols)
		for j := 0; j < cols; j++ {
			v := X.At(i, j)
			if v != v { // NaN marks a missing cell
				s[j] = tree.NA
			} else {
				s[j] = tree.Num(v)
			}
		}
		samples[i] = s
	}
	return samples, nil
}

func distinctSorted(labels []float64) []float64 {
	seen := make(map[float64]bool, len(labels))
	var out []float64
	for _, v := range labels {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

func formatClass(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func asInt(name string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	}
	return 0, errors.NewValidationError(name, "must be an integer", value)
}
