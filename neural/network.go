// Package neural implements a small feed-forward network trained by
// mini-batch gradient descent with a pluggable update rule from the
// optimizer package. The epoch/batch loop initializes the optimizer once,
// calls Update after every batch, and halts early when the optimizer or a
// callback asks it to.
package neural

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/core/model"
	"github.com/groveml/grove/optimizer"
	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/pkg/log"
)

// layer is one dense layer: weights (out x in), bias (out x 1), and the
// caches filled during the forward pass for use by backprop.
type layer struct {
	w   *mat.Dense
	b   *mat.Dense
	act Activation

	in  []float64 // input activations
	z   []float64 // pre-activations
	out []float64 // output activations
}

// Network is a sequential feed-forward model with mean-squared-error loss.
type Network struct {
	model.BaseEstimator
	layers []*layer
	opt    optimizer.Optimizer
	logger log.Logger
	rng    *rand.Rand
}

// Option configures a Network.
type Option func(*Network)

// WithLayer appends a dense layer of the given fan-in and fan-out.
func WithLayer(in, out int, act Activation) Option {
	return func(n *Network) {
		n.layers = append(n.layers, &layer{
			w:   mat.NewDense(out, in, nil),
			b:   mat.NewDense(out, 1, nil),
			act: act,
		})
	}
}

// WithOptimizer sets the update rule. Defaults to plain SGD.
func WithOptimizer(opt optimizer.Optimizer) Option {
	return func(n *Network) { n.opt = opt }
}

// WithRand sets the random source used for weight initialization and
// batch shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(n *Network) { n.rng = rng }
}

// WithLogger sets the training logger.
func WithLogger(logger log.Logger) Option {
	return func(n *Network) { n.logger = logger }
}

// NewNetwork builds a network from the given options and initializes the
// weights with small random values.
func NewNetwork(opts ...Option) *Network {
	n := &Network{}
	for _, opt := range opts {
		opt(n)
	}
	if n.opt == nil {
		n.opt = optimizer.NewSGD()
	}
	if n.logger == nil {
		n.logger = log.Default()
	}
	if n.rng == nil {
		n.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for _, l := range n.layers {
		r, c := l.w.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				l.w.Set(i, j, n.rng.NormFloat64()*0.1)
			}
		}
	}
	return n
}

// History records the per-epoch mean training loss.
type History struct {
	Losses []float64
}

// Fit trains the network for at most epochs passes over X/y in mini
// batches of batchSize rows. Training ends earlier when the optimizer's
// stop flag or a callback requests it.
func (n *Network) Fit(X, y mat.Matrix, epochs, batchSize int, callbacks ...Callback) (*History, error) {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError("Network.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != rows {
		return nil, errors.NewDimensionError("Network.Fit", rows, yRows, 0)
	}
	if len(n.layers) == 0 {
		return nil, errors.NewValidationError("layers", "network has no layers", 0)
	}
	if in := inputSize(n.layers[0]); in != cols {
		return nil, errors.NewDimensionError("Network.Fit", in, cols, 1)
	}
	if out := outputSize(n.layers[len(n.layers)-1]); out != yCols {
		return nil, errors.NewDimensionError("Network.Fit", out, yCols, 1)
	}
	if batchSize <= 0 || batchSize > rows {
		batchSize = rows
	}

	params, grads := n.parameters()
	if err := n.opt.Initialize(params, batchSize, X, y, n.rng); err != nil {
		return nil, err
	}

	n.logger.Info("training started",
		log.ModelNameKey, "Network",
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
	)

	history := &History{}
	batches := (rows + batchSize - 1) / batchSize
	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}

	for epoch := 1; epoch <= epochs; epoch++ {
		n.rng.Shuffle(rows, func(i, j int) { order[i], order[j] = order[j], order[i] })

		var epochLoss float64
		stopped := false
		for b := 0; b < batches; b++ {
			lo, hi := b*batchSize, (b+1)*batchSize
			if hi > rows {
				hi = rows
			}
			batch := order[lo:hi]

			zeroAll(grads)
			for _, i := range batch {
				epochLoss += n.backprop(X, y, i, grads)
			}
			scaleAll(grads, 1/float64(len(batch)))

			xb, yb := gatherRows(X, y, batch, cols, yCols)
			var stop bool
			var err error
			params, stop, err = n.opt.Update(params, grads, optimizer.Context{
				Epoch:           epoch,
				Batch:           b + 1,
				BatchesPerEpoch: batches,
				XBatch:          xb,
				YBatch:          yb,
			})
			if err != nil {
				return nil, err
			}
			if stop {
				n.logger.Info("optimizer requested stop", log.EpochKey, epoch, log.BatchKey, b+1)
				stopped = true
				break
			}
		}

		epochLoss /= float64(rows)
		if err := errors.CheckScalar("loss", epochLoss, epoch); err != nil {
			return nil, err
		}
		history.Losses = append(history.Losses, epochLoss)
		n.logger.Debug("epoch finished", log.EpochKey, epoch, log.LossKey, epochLoss)

		env := &CallbackEnv{Epoch: epoch, Loss: epochLoss}
		for _, cb := range callbacks {
			if err := cb(env); err != nil {
				return nil, err
			}
		}
		if stopped || env.StopTraining {
			break
		}
	}

	n.SetFitted()
	return history, nil
}

// Predict runs the forward pass over every row of X.
func (n *Network) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !n.IsFitted() {
		return nil, errors.NewNotFittedError("Network", "Predict")
	}
	rows, cols := X.Dims()
	if in := inputSize(n.layers[0]); in != cols {
		return nil, errors.NewDimensionError("Network.Predict", in, cols, 1)
	}
	outDim := outputSize(n.layers[len(n.layers)-1])
	out := mat.NewDense(rows, outDim, nil)
	for i := 0; i < rows; i++ {
		pred := n.forward(rowOf(X, i))
		for j, v := range pred {
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// forward pushes one input vector through every layer, caching the
// intermediate values for backprop.
func (n *Network) forward(x []float64) []float64 {
	a := x
	for _, l := range n.layers {
		outDim, inDim := l.w.Dims()
		l.in = a
		l.z = make([]float64, outDim)
		l.out = make([]float64, outDim)
		for i := 0; i < outDim; i++ {
			z := l.b.At(i, 0)
			for j := 0; j < inDim; j++ {
				z += l.w.At(i, j) * a[j]
			}
			l.z[i] = z
			l.out[i] = l.act.Apply(z)
		}
		a = l.out
	}
	return a
}

// backprop runs one forward/backward pass for row i and accumulates the
// gradient. Returns the sample's squared-error loss.
func (n *Network) backprop(X, y mat.Matrix, i int, grads []*mat.Dense) float64 {
	pred := n.forward(rowOf(X, i))

	last := n.layers[len(n.layers)-1]
	delta := make([]float64, len(pred))
	var loss float64
	for j := range pred {
		diff := pred[j] - y.At(i, j)
		loss += 0.5 * diff * diff
		delta[j] = diff * last.act.Derivative(last.z[j])
	}

	for li := len(n.layers) - 1; li >= 0; li-- {
		l := n.layers[li]
		outDim, inDim := l.w.Dims()
		gw, gb := grads[2*li], grads[2*li+1]
		for r := 0; r < outDim; r++ {
			gb.Set(r, 0, gb.At(r, 0)+delta[r])
			for c := 0; c < inDim; c++ {
				gw.Set(r, c, gw.At(r, c)+delta[r]*l.in[c])
			}
		}
		if li == 0 {
			break
		}
		prev := n.layers[li-1]
		next := make([]float64, inDim)
		for c := 0; c < inDim; c++ {
			var s float64
			for r := 0; r < outDim; r++ {
				s += l.w.At(r, c) * delta[r]
			}
			next[c] = s * prev.act.Derivative(prev.z[c])
		}
		delta = next
	}
	return loss
}

// parameters flattens every layer into [w0, b0, w1, b1, ...] plus
// same-shaped gradient accumulators.
func (n *Network) parameters() (params, grads []*mat.Dense) {
	for _, l := range n.layers {
		r, c := l.w.Dims()
		params = append(params, l.w, l.b)
		grads = append(grads, mat.NewDense(r, c, nil), mat.NewDense(r, 1, nil))
	}
	return params, grads
}

func zeroAll(ms []*mat.Dense) {
	for _, m := range ms {
		m.Zero()
	}
}

func scaleAll(ms []*mat.Dense, f float64) {
	for _, m := range ms {
		m.Scale(f, m)
	}
}

// gatherRows copies the shuffled batch rows into dense matrices so the
// optimizer sees the exact data behind the gradient it is given.
func gatherRows(X, y mat.Matrix, batch []int, cols, yCols int) (*mat.Dense, *mat.Dense) {
	xb := mat.NewDense(len(batch), cols, nil)
	yb := mat.NewDense(len(batch), yCols, nil)
	for bi, i := range batch {
		for j := 0; j < cols; j++ {
			xb.Set(bi, j, X.At(i, j))
		}
		for j := 0; j < yCols; j++ {
			yb.Set(bi, j, y.At(i, j))
		}
	}
	return xb, yb
}

func rowOf(X mat.Matrix, i int) []float64 {
	_, cols := X.Dims()
	row := make([]float64, cols)
	for j := 0; j < cols; j++ {
		row[j] = X.At(i, j)
	}
	return row
}

func inputSize(l *layer) int {
	_, c := l.w.Dims()
	return c
}

func outputSize(l *layer) int {
	r, _ := l.w.Dims()
	return r
}
