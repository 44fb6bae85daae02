package neural

import "math"

// Activation is an elementwise activation function and its derivative with
// respect to the pre-activation input.
type Activation interface {
	Name() string
	Apply(z float64) float64
	Derivative(z float64) float64
}

// Sigmoid is the logistic activation 1/(1+exp(-z)).
type Sigmoid struct{}

func (Sigmoid) Name() string { return "sigmoid" }

func (Sigmoid) Apply(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func (s Sigmoid) Derivative(z float64) float64 {
	a := s.Apply(z)
	return a * (1 - a)
}

// Tanh is the hyperbolic-tangent activation.
type Tanh struct{}

func (Tanh) Name() string { return "tanh" }

func (Tanh) Apply(z float64) float64 { return math.Tanh(z) }

func (Tanh) Derivative(z float64) float64 {
	a := math.Tanh(z)
	return 1 - a*a
}

// ReLU is the rectified linear activation max(0, z).
type ReLU struct{}

func (ReLU) Name() string { return "relu" }

func (ReLU) Apply(z float64) float64 {
	if z > 0 {
		return z
	}
	return 0
}

func (ReLU) Derivative(z float64) float64 {
	if z > 0 {
		return 1
	}
	return 0
}

// Identity passes the pre-activation through, for linear output layers.
type Identity struct{}

func (Identity) Name() string { return "identity" }

func (Identity) Apply(z float64) float64 { return z }

func (Identity) Derivative(z float64) float64 { return 1 }
