package optimizer

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/log"
)

// Debug is a no-op update rule for instrumenting a training loop: it
// ignores the gradient and leaves parameters untouched, logging each call
// as its only effect.
type Debug struct {
	logger log.Logger
}

// NewDebug creates a Debug optimizer logging to the given logger, or the
// process default when nil.
func NewDebug(logger log.Logger) *Debug {
	if logger == nil {
		logger = log.Default()
	}
	return &Debug{logger: logger}
}

// Initialize logs the shapes it was handed.
func (o *Debug) Initialize(params []*mat.Dense, batchSize int, X, y mat.Matrix, rng *rand.Rand) error {
	o.logger.Debug("debug optimizer initialized",
		"tensors", len(params),
		"batch_size", batchSize,
	)
	return nil
}

// Update logs the call position and returns the parameters unchanged.
func (o *Debug) Update(params, grads []*mat.Dense, ctx Context) ([]*mat.Dense, bool, error) {
	o.logger.Debug("debug optimizer update",
		log.EpochKey, ctx.Epoch,
		log.BatchKey, ctx.Batch,
	)
	return params, false, nil
}
