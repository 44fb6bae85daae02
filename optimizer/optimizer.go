// Package optimizer implements the pluggable gradient-based update rules
// consumed by grove's neural-network trainer: plain stochastic gradient
// descent, Adam, and a no-op debug variant.
//
// The protocol is deliberately small. Initialize is called exactly once
// before the first batch and sizes any internal accumulators to the shape
// of the trainable parameters. Update is then called once per batch with
// the current parameters and gradient; it returns the updated parameters
// and a stop flag the training loop must honor. Calls to Update against
// the same optimizer instance must be serialized: accumulators are owned
// and mutated by the optimizer alone.
package optimizer

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Context describes the position of an Update call inside training.
// Epoch and Batch are 1-based; the global step used by Adam's bias
// correction is (Epoch-1)*BatchesPerEpoch + Batch.
type Context struct {
	Epoch           int
	Batch           int
	BatchesPerEpoch int
	XBatch          mat.Matrix
	YBatch          mat.Matrix
}

// Step returns the 1-based global step of this update.
func (c Context) Step() int {
	return (c.Epoch-1)*c.BatchesPerEpoch + c.Batch
}

// Optimizer is a stateful parameter-update rule. Parameters and gradients
// travel as slices of dense matrices with matching shapes, one per
// trainable tensor.
type Optimizer interface {
	// Initialize prepares internal state sized to params' shapes. Called
	// exactly once before the first training batch.
	Initialize(params []*mat.Dense, batchSize int, X, y mat.Matrix, rng *rand.Rand) error

	// Update transforms params given grads. Implementations may update in
	// place and return the same slices. A true stop flag tells the
	// training loop to halt early.
	Update(params, grads []*mat.Dense, ctx Context) ([]*mat.Dense, bool, error)
}

// Schedule maps an epoch number to a learning rate.
type Schedule func(epoch int) float64

// DefaultSchedule is the 1/(1+epoch) decay used when no schedule is given.
func DefaultSchedule(epoch int) float64 {
	return 1.0 / (1.0 + float64(epoch))
}

// DefaultScale is the factor applied on top of the schedule.
const DefaultScale = 2.0
