package optimizer

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/log"
)

func TestDebugLeavesParamsUntouched(t *testing.T) {
	logger, _ := log.NewTestLogger(slog.LevelDebug)
	opt := NewDebug(logger)

	params := []*mat.Dense{mat.NewDense(1, 2, []float64{3, -4})}
	grads := []*mat.Dense{mat.NewDense(1, 2, []float64{100, 100})}

	assert.NoError(t, opt.Initialize(params, 8, nil, nil, nil))

	updated, stop, err := opt.Update(params, grads, Context{Epoch: 2, Batch: 3, BatchesPerEpoch: 5})
	assert.NoError(t, err)
	assert.False(t, stop)
	assert.Equal(t, 3.0, updated[0].At(0, 0))
	assert.Equal(t, -4.0, updated[0].At(0, 1))
}

func TestDebugLogsCalls(t *testing.T) {
	logger, _ := log.NewTestLogger(slog.LevelDebug)
	opt := NewDebug(logger)

	params := []*mat.Dense{mat.NewDense(1, 1, []float64{0})}
	grads := []*mat.Dense{mat.NewDense(1, 1, []float64{1})}

	assert.NoError(t, opt.Initialize(params, 2, nil, nil, nil))
	assert.True(t, logger.ContainsMessage("debug optimizer initialized"))

	_, _, err := opt.Update(params, grads, Context{Epoch: 1, Batch: 1, BatchesPerEpoch: 1})
	assert.NoError(t, err)
	assert.True(t, logger.ContainsMessage("debug optimizer update"))
}

func TestDebugDefaultLogger(t *testing.T) {
	opt := NewDebug(nil)
	params := []*mat.Dense{mat.NewDense(1, 1, []float64{1})}
	grads := []*mat.Dense{mat.NewDense(1, 1, []float64{1})}

	_, stop, err := opt.Update(params, grads, Context{Epoch: 1, Batch: 1, BatchesPerEpoch: 1})
	assert.NoError(t, err)
	assert.False(t, stop)
}
