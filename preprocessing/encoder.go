package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/core/model"
	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/tree"
)

// OneHotEncoder expands categorical features of mixed-type samples into
// indicator columns. Numeric features pass through unchanged and keep
// their position before the encoded block.
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories holds, per input feature, the sorted category names
	// observed during Fit. Numeric features have a nil entry.
	Categories [][]string

	// HandleUnknown controls what Transform does with a category not
	// seen during Fit: "ignore" emits an all-zero row for that feature,
	// "error" fails.
	HandleUnknown string

	nFeatures int
	nOutputs  int
}

// NewOneHotEncoder creates an encoder that ignores unknown categories.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{HandleUnknown: "ignore"}
}

// Fit scans the samples and records the category vocabulary of every
// categorical feature. Missing cells contribute no category.
func (e *OneHotEncoder) Fit(samples []tree.Sample) error {
	if len(samples) == 0 || len(samples[0]) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	e.nFeatures = len(samples[0])
	e.Categories = make([][]string, e.nFeatures)

	seen := make([]map[string]bool, e.nFeatures)
	for j := range seen {
		seen[j] = make(map[string]bool)
	}
	for _, s := range samples {
		if len(s) != e.nFeatures {
			return errors.NewDimensionError("OneHotEncoder.Fit", e.nFeatures, len(s), 1)
		}
		for j, cell := range s {
			if cell.IsCategorical() {
				seen[j][cell.Category()] = true
			}
		}
	}

	e.nOutputs = 0
	for j := range seen {
		if len(seen[j]) == 0 {
			e.nOutputs++ // numeric pass-through column
			continue
		}
		cats := make([]string, 0, len(seen[j]))
		for c := range seen[j] {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		e.Categories[j] = cats
		e.nOutputs += len(cats)
	}

	e.SetFitted()
	return nil
}

// Transform encodes the samples as a dense numeric matrix. Numeric
// cells copy through, categorical cells become indicator columns, and
// missing cells become zero in every column of their feature.
func (e *OneHotEncoder) Transform(samples []tree.Sample) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if len(samples) == 0 {
		return nil, errors.NewModelError("OneHotEncoder.Transform", "empty data", errors.ErrEmptyData)
	}

	out := mat.NewDense(len(samples), e.nOutputs, nil)
	for i, s := range samples {
		if len(s) != e.nFeatures {
			return nil, errors.NewDimensionError("OneHotEncoder.Transform", e.nFeatures, len(s), 1)
		}
		col := 0
		for j, cell := range s {
			cats := e.Categories[j]
			if cats == nil {
				if cell.IsNumeric() {
					out.Set(i, col, cell.Float())
				}
				col++
				continue
			}
			if cell.IsCategorical() {
				idx := sort.SearchStrings(cats, cell.Category())
				if idx < len(cats) && cats[idx] == cell.Category() {
					out.Set(i, col+idx, 1)
				} else if e.HandleUnknown == "error" {
					return nil, errors.NewValueError("OneHotEncoder.Transform",
						"unknown category "+cell.Category())
				}
			}
			col += len(cats)
		}
	}
	return out, nil
}

// FitTransform fits the encoder and transforms the same samples.
func (e *OneHotEncoder) FitTransform(samples []tree.Sample) (*mat.Dense, error) {
	if err := e.Fit(samples); err != nil {
		return nil, err
	}
	return e.Transform(samples)
}

// NumOutputs reports the width of the encoded matrix.
func (e *OneHotEncoder) NumOutputs() int {
	return e.nOutputs
}
