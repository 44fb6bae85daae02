// Package tree implements decision-tree and random-forest learning over
// mixed numeric/categorical data with missing values.
//
// Feature matrices are [][]Value (rows = records, columns = features) and
// label vectors are []Value. Cells may be numeric, categorical, or missing.
// Missing values never block a split: the partitioner routes them
// probabilistically in proportion to the sizes of the two branches, so every
// record always ends up on exactly one side of a split.
//
// All randomness (bootstrap resampling, feature subsampling, missing-value
// routing) is drawn from an explicit *rand.Rand supplied via WithRand, which
// makes builds reproducible and lets forest construction run one goroutine
// per tree without shared state.
package tree

import (
	"strconv"
)

type valueKind uint8

const (
	kindMissing valueKind = iota
	kindNumber
	kindCategory
)

// Value is a single feature or label cell: numeric, categorical, or missing.
// The zero Value is missing.
type Value struct {
	kind valueKind
	num  float64
	cat  string
}

// NA is the missing value.
var NA = Value{}

// Num returns a numeric Value.
func Num(v float64) Value {
	return Value{kind: kindNumber, num: v}
}

// Cat returns a categorical Value.
func Cat(s string) Value {
	return Value{kind: kindCategory, cat: s}
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return v.kind == kindMissing }

// IsNumeric reports whether the value holds a number.
func (v Value) IsNumeric() bool { return v.kind == kindNumber }

// IsCategorical reports whether the value holds a category.
func (v Value) IsCategorical() bool { return v.kind == kindCategory }

// Float returns the numeric content, or 0 for non-numeric values.
func (v Value) Float() float64 { return v.num }

// Category returns the categorical content, or "" for non-categorical values.
func (v Value) Category() string { return v.cat }

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case kindNumber:
		return v.num == o.num
	case kindCategory:
		return v.cat == o.cat
	}
	return true
}

// String renders the value for display and for use as a class key.
// Numbers use the shortest representation that round-trips.
func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case kindCategory:
		return v.cat
	}
	return "?"
}

// Sample is one record: a row of the feature matrix.
type Sample []Value

// NumRow converts a slice of float64 features into a Sample.
func NumRow(vs ...float64) Sample {
	s := make(Sample, len(vs))
	for i, v := range vs {
		s[i] = Num(v)
	}
	return s
}

// NumLabels converts a slice of float64 labels into a label vector.
func NumLabels(vs ...float64) []Value {
	ys := make([]Value, len(vs))
	for i, v := range vs {
		ys[i] = Num(v)
	}
	return ys
}

// numericLabels reports whether every non-missing label is a number.
func numericLabels(labels []Value) bool {
	for _, y := range labels {
		if y.IsCategorical() {
			return false
		}
	}
	return true
}
