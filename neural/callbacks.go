package neural

import (
	"fmt"
	"math"
)

// CallbackEnv is handed to every callback after each epoch. Setting
// StopTraining ends training after the current epoch.
type CallbackEnv struct {
	Epoch        int
	Loss         float64
	StopTraining bool
}

// Callback observes training progress and may stop it.
type Callback func(env *CallbackEnv) error

// PrintEvaluation prints the loss every period epochs.
func PrintEvaluation(period int) Callback {
	return func(env *CallbackEnv) error {
		if env.Epoch%period == 0 {
			fmt.Printf("[%d] loss: %.6f\n", env.Epoch, env.Loss)
		}
		return nil
	}
}

// RecordEvaluation appends each epoch's loss to history.
func RecordEvaluation(history *[]float64) Callback {
	return func(env *CallbackEnv) error {
		*history = append(*history, env.Loss)
		return nil
	}
}

// EarlyStoppingCallback stops training after rounds epochs without loss
// improvement.
func EarlyStoppingCallback(rounds int) Callback {
	bestLoss := math.Inf(1)
	bestEpoch := 0
	roundsNoImprove := 0

	return func(env *CallbackEnv) error {
		if env.Loss < bestLoss {
			bestLoss = env.Loss
			bestEpoch = env.Epoch
			roundsNoImprove = 0
			return nil
		}
		roundsNoImprove++
		if roundsNoImprove >= rounds {
			fmt.Printf("Early stopping at epoch %d, best epoch was %d with loss = %.6f\n",
				env.Epoch, bestEpoch, bestLoss)
			env.StopTraining = true
		}
		return nil
	}
}
