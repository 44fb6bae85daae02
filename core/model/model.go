// Package model provides the base estimator type and the interfaces shared
// by grove's supervised models and transformers.
package model

import "gonum.org/v1/gonum/mat"

// EstimatorState tracks whether a model has been fitted.
type EstimatorState int

const (
	// NotFitted marks a model that has not been trained yet.
	NotFitted EstimatorState = iota
	// Fitted marks a trained model.
	Fitted
)

// BaseEstimator is embedded by every model to carry fitted state.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to its untrained state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}

// Fitter is a model that can be trained on matrix data.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor is a model that predicts labels for matrix data.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Transformer learns a data transformation and applies it.
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
