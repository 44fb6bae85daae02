package optimizer

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SGD is plain stochastic gradient descent:
//
//	w <- w - grad * (lr(epoch) * scale)
//
// It carries no state beyond its configuration.
type SGD struct {
	learningRate Schedule
	scale        float64
}

// SGDOption configures an SGD optimizer.
type SGDOption func(*SGD)

// WithSGDLearningRate sets the learning-rate schedule.
func WithSGDLearningRate(s Schedule) SGDOption {
	return func(o *SGD) { o.learningRate = s }
}

// WithSGDScale sets the factor applied on top of the schedule.
func WithSGDScale(scale float64) SGDOption {
	return func(o *SGD) { o.scale = scale }
}

// NewSGD creates an SGD optimizer with schedule 1/(1+epoch) and scale 2
// unless overridden.
func NewSGD(opts ...SGDOption) *SGD {
	o := &SGD{learningRate: DefaultSchedule, scale: DefaultScale}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Initialize is a no-op: SGD keeps no per-parameter state.
func (o *SGD) Initialize(params []*mat.Dense, batchSize int, X, y mat.Matrix, rng *rand.Rand) error {
	return nil
}

// Update applies the descent step in place and never requests a stop.
func (o *SGD) Update(params, grads []*mat.Dense, ctx Context) ([]*mat.Dense, bool, error) {
	step := o.learningRate(ctx.Epoch) * o.scale
	for i, p := range params {
		r, c := p.Dims()
		g := grads[i]
		for row := 0; row < r; row++ {
			for col := 0; col < c; col++ {
				p.Set(row, col, p.At(row, col)-g.At(row, col)*step)
			}
		}
	}
	return params, false, nil
}
