package optimizer

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/errors"
)

// Adam default hyperparameters.
const (
	DefaultBeta1   = 0.9
	DefaultBeta2   = 0.999
	DefaultEpsilon = 1e-8
)

// Adam maintains exponential moving averages of the gradient (first
// moment) and of its elementwise square (second moment), corrects their
// zero-initialization bias by the global step, and scales the update by
// the corrected ratio:
//
//	m <- b1*m + (1-b1)*g
//	v <- b2*v + (1-b2)*g^2
//	w <- w - lr * mHat / (sqrt(vHat) + eps)
type Adam struct {
	learningRate Schedule
	scale        float64
	beta1        float64
	beta2        float64
	epsilon      float64

	m []*mat.Dense
	v []*mat.Dense
}

// AdamOption configures an Adam optimizer.
type AdamOption func(*Adam)

// WithAdamLearningRate sets the learning-rate schedule.
func WithAdamLearningRate(s Schedule) AdamOption {
	return func(o *Adam) { o.learningRate = s }
}

// WithAdamScale sets the factor applied on top of the schedule.
func WithAdamScale(scale float64) AdamOption {
	return func(o *Adam) { o.scale = scale }
}

// WithBetas sets the moment decay rates.
func WithBetas(beta1, beta2 float64) AdamOption {
	return func(o *Adam) { o.beta1, o.beta2 = beta1, beta2 }
}

// WithEpsilon sets the divisor guard.
func WithEpsilon(eps float64) AdamOption {
	return func(o *Adam) { o.epsilon = eps }
}

// NewAdam creates an Adam optimizer. The decay rates must lie in the open
// interval (0, 1); anything else is a configuration error.
func NewAdam(opts ...AdamOption) (*Adam, error) {
	o := &Adam{
		learningRate: DefaultSchedule,
		scale:        DefaultScale,
		beta1:        DefaultBeta1,
		beta2:        DefaultBeta2,
		epsilon:      DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.beta1 <= 0 || o.beta1 >= 1 {
		return nil, errors.NewValidationError("beta1", "must be in the open interval (0, 1)", o.beta1)
	}
	if o.beta2 <= 0 || o.beta2 >= 1 {
		return nil, errors.NewValidationError("beta2", "must be in the open interval (0, 1)", o.beta2)
	}
	return o, nil
}

// Initialize zeroes the moment accumulators to the parameter shapes.
func (o *Adam) Initialize(params []*mat.Dense, batchSize int, X, y mat.Matrix, rng *rand.Rand) error {
	o.m = make([]*mat.Dense, len(params))
	o.v = make([]*mat.Dense, len(params))
	for i, p := range params {
		r, c := p.Dims()
		o.m[i] = mat.NewDense(r, c, nil)
		o.v[i] = mat.NewDense(r, c, nil)
	}
	return nil
}

// Update applies one Adam step in place and never requests a stop.
func (o *Adam) Update(params, grads []*mat.Dense, ctx Context) ([]*mat.Dense, bool, error) {
	if o.m == nil {
		return nil, false, errors.NewNotFittedError("Adam", "Update")
	}
	t := float64(ctx.Step())
	lr := o.learningRate(ctx.Epoch) * o.scale
	mCorr := 1 - math.Pow(o.beta1, t)
	vCorr := 1 - math.Pow(o.beta2, t)

	for i, p := range params {
		r, c := p.Dims()
		g, m, v := grads[i], o.m[i], o.v[i]
		for row := 0; row < r; row++ {
			for col := 0; col < c; col++ {
				gv := g.At(row, col)
				mv := o.beta1*m.At(row, col) + (1-o.beta1)*gv
				vv := o.beta2*v.At(row, col) + (1-o.beta2)*gv*gv
				m.Set(row, col, mv)
				v.Set(row, col, vv)
				mHat := mv / mCorr
				vHat := vv / vCorr
				p.Set(row, col, p.At(row, col)-lr*mHat/(math.Sqrt(vHat)+o.epsilon))
			}
		}
	}
	return params, false, nil
}

// FirstMoment returns the accumulator for the i-th parameter tensor.
// Exposed for inspection in tests and diagnostics.
func (o *Adam) FirstMoment(i int) *mat.Dense { return o.m[i] }

// SecondMoment returns the accumulator for the i-th parameter tensor.
func (o *Adam) SecondMoment(i int) *mat.Dense { return o.v[i] }
