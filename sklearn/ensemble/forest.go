// Package ensemble provides scikit-learn style bagged ensembles on gonum
// matrices, backed by grove's core forest builder.
package ensemble

import (
	"math/rand"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/core/model"
	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/tree"
)

// RandomForestClassifier trains an ensemble of decision trees on
// bootstrap resamples and predicts by averaging class distributions.
type RandomForestClassifier struct {
	model.BaseEstimator

	nEstimators int
	criterion   string
	maxDepth    int
	maxFeatures int
	seed        int64
	hasSeed     bool

	forest    *tree.Forest
	classes_  []float64
	nClasses_ int
	nFeatures int
}

// ForestOption configures a RandomForestClassifier.
type ForestOption func(*RandomForestClassifier)

// WithNEstimators sets the number of trees (default 30).
func WithNEstimators(n int) ForestOption {
	return func(rf *RandomForestClassifier) { rf.nEstimators = n }
}

// WithForestCriterion sets the split criterion ("gini" or "entropy").
func WithForestCriterion(criterion string) ForestOption {
	return func(rf *RandomForestClassifier) { rf.criterion = criterion }
}

// WithForestMaxDepth limits the number of split levels per tree.
func WithForestMaxDepth(depth int) ForestOption {
	return func(rf *RandomForestClassifier) { rf.maxDepth = depth }
}

// WithForestMaxFeatures sets the feature subsample size per split
// (default round(sqrt(D))).
func WithForestMaxFeatures(n int) ForestOption {
	return func(rf *RandomForestClassifier) { rf.maxFeatures = n }
}

// WithSeed fixes the random source so a fit is reproducible.
func WithSeed(seed int64) ForestOption {
	return func(rf *RandomForestClassifier) { rf.seed, rf.hasSeed = seed, true }
}

// NewRandomForestClassifier creates a forest classifier with gini
// criterion and the default ensemble size unless overridden.
func NewRandomForestClassifier(opts ...ForestOption) *RandomForestClassifier {
	rf := &RandomForestClassifier{
		nEstimators: tree.DefaultTrees,
		criterion:   "gini",
	}
	for _, opt := range opts {
		opt(rf)
	}
	return rf
}

// Fit trains the ensemble on X (rows = samples) and integer-coded labels.
func (rf *RandomForestClassifier) Fit(X, y mat.Matrix) error {
	if rf.criterion != "gini" && rf.criterion != "entropy" {
		return errors.NewValidationError("criterion", "must be gini or entropy", rf.criterion)
	}
	if X == nil || y == nil {
		return errors.NewModelError("RandomForestClassifier.Fit", "nil input", errors.ErrEmptyData)
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError("RandomForestClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	yRows, _ := y.Dims()
	if yRows != rows {
		return errors.NewDimensionError("RandomForestClassifier.Fit", rows, yRows, 0)
	}

	samples := make([]tree.Sample, rows)
	labels := make([]tree.Value, rows)
	seen := make(map[float64]bool)
	for i := 0; i < rows; i++ {
		s := make(tree.Sample, cols)
		for j := 0; j < cols; j++ {
			s[j] = tree.Num(X.At(i, j))
		}
		samples[i] = s
		v := y.At(i, 0)
		labels[i] = tree.Cat(strconv.FormatFloat(v, 'g', -1, 64))
		seen[v] = true
	}
	rf.classes_ = rf.classes_[:0]
	for v := range seen {
		rf.classes_ = append(rf.classes_, v)
	}
	sort.Float64s(rf.classes_)
	rf.nClasses_ = len(rf.classes_)
	rf.nFeatures = cols

	opts := []tree.Option{
		tree.WithCriterion(tree.Criterion(rf.criterion)),
		tree.WithMinRecords(1),
	}
	if rf.maxDepth > 0 {
		opts = append(opts, tree.WithMaxDepth(rf.maxDepth+1))
	}
	if rf.maxFeatures > 0 {
		opts = append(opts, tree.WithMaxFeatures(rf.maxFeatures))
	}
	if rf.hasSeed {
		opts = append(opts, tree.WithRand(rand.New(rand.NewSource(rf.seed))))
	} else {
		opts = append(opts, tree.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))))
	}

	forest, err := tree.BuildForest(samples, labels, rf.nEstimators, opts...)
	if err != nil {
		return err
	}
	rf.forest = forest
	rf.SetFitted()
	return nil
}

// Predict returns the ensemble's most probable class for every row.
func (rf *RandomForestClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	probas, err := rf.PredictProba(X)
	if err != nil {
		return nil, err
	}
	rows, _ := probas.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		bestJ, bestP := 0, probas.At(i, 0)
		for j := 1; j < rf.nClasses_; j++ {
			if p := probas.At(i, j); p > bestP {
				bestJ, bestP = j, p
			}
		}
		out.Set(i, 0, rf.classes_[bestJ])
	}
	return out, nil
}

// PredictProba returns averaged class probabilities (rows x nClasses).
func (rf *RandomForestClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestClassifier", "PredictProba")
	}
	rows, cols := X.Dims()
	if cols != rf.nFeatures {
		return nil, errors.NewDimensionError("RandomForestClassifier.PredictProba", rf.nFeatures, cols, 1)
	}
	samples := make([]tree.Sample, rows)
	for i := 0; i < rows; i++ {
		s := make(tree.Sample, cols)
		for j := 0; j < cols; j++ {
			s[j] = tree.Num(X.At(i, j))
		}
		samples[i] = s
	}
	out := mat.NewDense(rows, rf.nClasses_, nil)
	for i, pred := range rf.forest.PredictBatch(samples) {
		for j, cls := range rf.classes_ {
			out.Set(i, j, pred.Dist[strconv.FormatFloat(cls, 'g', -1, 64)])
		}
	}
	return out, nil
}

// Score returns the mean accuracy on X against the true labels y.
func (rf *RandomForestClassifier) Score(X, y mat.Matrix) float64 {
	preds, err := rf.Predict(X)
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

// NTrees returns the number of fitted trees.
func (rf *RandomForestClassifier) NTrees() int {
	if rf.forest == nil {
		return 0
	}
	return len(rf.forest.Trees)
}
