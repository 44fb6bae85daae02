package preprocessing

import (
	"testing"

	"github.com/groveml/grove/tree"
)

func TestOneHotEncoder(t *testing.T) {
	samples := []tree.Sample{
		{tree.Num(1.5), tree.Cat("red")},
		{tree.Num(2.5), tree.Cat("green")},
		{tree.Num(3.5), tree.Cat("red")},
	}

	enc := NewOneHotEncoder()
	X, err := enc.FitTransform(samples)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// One numeric pass-through column plus green and red indicators.
	if got := enc.NumOutputs(); got != 3 {
		t.Fatalf("NumOutputs() = %d, want 3", got)
	}

	want := [][]float64{
		{1.5, 0, 1},
		{2.5, 1, 0},
		{3.5, 0, 1},
	}
	for i, row := range want {
		for j, w := range row {
			if X.At(i, j) != w {
				t.Errorf("X[%d,%d] = %v, want %v", i, j, X.At(i, j), w)
			}
		}
	}
}

func TestOneHotEncoderMissing(t *testing.T) {
	samples := []tree.Sample{
		{tree.Cat("a")},
		{tree.NA},
		{tree.Cat("b")},
	}

	enc := NewOneHotEncoder()
	X, err := enc.FitTransform(samples)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	if X.At(1, 0) != 0 || X.At(1, 1) != 0 {
		t.Errorf("missing cell row = [%v %v], want all zeros", X.At(1, 0), X.At(1, 1))
	}
}

func TestOneHotEncoderUnknownCategory(t *testing.T) {
	train := []tree.Sample{{tree.Cat("a")}, {tree.Cat("b")}}
	test := []tree.Sample{{tree.Cat("c")}}

	enc := NewOneHotEncoder()
	if err := enc.Fit(train); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	X, err := enc.Transform(test)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if X.At(0, 0) != 0 || X.At(0, 1) != 0 {
		t.Errorf("unknown category row = [%v %v], want all zeros", X.At(0, 0), X.At(0, 1))
	}

	enc.HandleUnknown = "error"
	if _, err := enc.Transform(test); err == nil {
		t.Error("Transform() with HandleUnknown=error should fail on unseen category")
	}
}

func TestOneHotEncoderNotFitted(t *testing.T) {
	enc := NewOneHotEncoder()
	if _, err := enc.Transform([]tree.Sample{{tree.Cat("a")}}); err == nil {
		t.Error("Transform() before Fit should error")
	}
}
