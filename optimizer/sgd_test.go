package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestSGDUpdate(t *testing.T) {
	opt := NewSGD()
	params := []*mat.Dense{mat.NewDense(1, 1, []float64{10})}
	grads := []*mat.Dense{mat.NewDense(1, 1, []float64{1})}

	assert.NoError(t, opt.Initialize(params, 1, nil, nil, nil))

	// Epoch 1: lr = 1/(1+1) = 0.5, scale 2, so the step is exactly 1.
	updated, stop, err := opt.Update(params, grads, Context{Epoch: 1, Batch: 1, BatchesPerEpoch: 1})
	assert.NoError(t, err)
	assert.False(t, stop)
	assert.InDelta(t, 9.0, updated[0].At(0, 0), 1e-12)
}

func TestSGDDecay(t *testing.T) {
	opt := NewSGD()
	params := []*mat.Dense{mat.NewDense(1, 1, []float64{0})}
	grads := []*mat.Dense{mat.NewDense(1, 1, []float64{1})}

	// Later epochs take smaller steps: 2/(1+epoch).
	_, _, err := opt.Update(params, grads, Context{Epoch: 9, Batch: 1, BatchesPerEpoch: 1})
	assert.NoError(t, err)
	assert.InDelta(t, -0.2, params[0].At(0, 0), 1e-12)
}

func TestSGDCustomSchedule(t *testing.T) {
	opt := NewSGD(
		WithSGDLearningRate(func(epoch int) float64 { return 0.1 }),
		WithSGDScale(1),
	)
	params := []*mat.Dense{mat.NewDense(2, 2, []float64{1, 2, 3, 4})}
	grads := []*mat.Dense{mat.NewDense(2, 2, []float64{1, 1, 1, 1})}

	_, _, err := opt.Update(params, grads, Context{Epoch: 5, Batch: 1, BatchesPerEpoch: 1})
	assert.NoError(t, err)
	assert.InDelta(t, 0.9, params[0].At(0, 0), 1e-12)
	assert.InDelta(t, 3.9, params[0].At(1, 1), 1e-12)
}

func TestContextStep(t *testing.T) {
	assert.Equal(t, 1, Context{Epoch: 1, Batch: 1, BatchesPerEpoch: 4}.Step())
	assert.Equal(t, 4, Context{Epoch: 1, Batch: 4, BatchesPerEpoch: 4}.Step())
	assert.Equal(t, 5, Context{Epoch: 2, Batch: 1, BatchesPerEpoch: 4}.Step())
}
