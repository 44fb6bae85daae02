package ensemble

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func clusterData() (X, y *mat.Dense) {
	n := 40
	X = mat.NewDense(n, 2, nil)
	y = mat.NewDense(n, 1, nil)
	for i := 0; i < n/2; i++ {
		X.Set(i, 0, float64(i)*0.1)
		X.Set(i, 1, float64(i)*0.1)
		y.Set(i, 0, 0)
	}
	for i := n / 2; i < n; i++ {
		X.Set(i, 0, 10+float64(i)*0.1)
		X.Set(i, 1, 10+float64(i)*0.1)
		y.Set(i, 0, 1)
	}
	return X, y
}

func TestRandomForestClassifierFitPredict(t *testing.T) {
	X, y := clusterData()

	rf := NewRandomForestClassifier(WithNEstimators(10), WithSeed(42))
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if got := rf.NTrees(); got != 10 {
		t.Errorf("NTrees() = %d, want 10", got)
	}

	score := rf.Score(X, y)
	if score < 0.95 {
		t.Errorf("Score() = %v, want at least 0.95", score)
	}
}

func TestRandomForestClassifierDefaultSize(t *testing.T) {
	X, y := clusterData()

	rf := NewRandomForestClassifier(WithSeed(1))
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got := rf.NTrees(); got != 30 {
		t.Errorf("NTrees() = %d, want default 30", got)
	}
}

func TestRandomForestClassifierPredictProba(t *testing.T) {
	X, y := clusterData()

	rf := NewRandomForestClassifier(WithNEstimators(15), WithSeed(7))
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	probas, err := rf.PredictProba(X)
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	rows, cols := probas.Dims()
	if cols != 2 {
		t.Fatalf("PredictProba() cols = %d, want 2", cols)
	}
	for i := 0; i < rows; i++ {
		sum := probas.At(i, 0) + probas.At(i, 1)
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("row %d probabilities sum to %v, want 1", i, sum)
		}
	}
}

func TestRandomForestClassifierReproducible(t *testing.T) {
	X, y := clusterData()

	fit := func() mat.Matrix {
		rf := NewRandomForestClassifier(WithNEstimators(8), WithSeed(99))
		if err := rf.Fit(X, y); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		p, err := rf.PredictProba(X)
		if err != nil {
			t.Fatalf("PredictProba() error = %v", err)
		}
		return p
	}

	a, b := fit(), fit()
	if !mat.Equal(a, b) {
		t.Error("same seed produced different probabilities")
	}
}

func TestRandomForestClassifierValidation(t *testing.T) {
	rf := NewRandomForestClassifier(WithForestCriterion("bogus"))
	if err := rf.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(2, 1, []float64{0, 1})); err == nil {
		t.Error("Fit() with unknown criterion should error")
	}

	rf = NewRandomForestClassifier()
	if err := rf.Fit(nil, nil); err == nil {
		t.Error("Fit() with nil input should error")
	}

	if _, err := rf.PredictProba(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("PredictProba() before Fit should error")
	}

	X, y := clusterData()
	rf = NewRandomForestClassifier(WithNEstimators(3), WithSeed(1))
	if err := rf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := rf.PredictProba(mat.NewDense(1, 3, nil)); err == nil {
		t.Error("PredictProba() with wrong width should error")
	}
}
