package tree

import "github.com/groveml/grove/core/parallel"

// parallelPredictThreshold is the batch size above which batch prediction
// fans out across CPU cores.
const parallelPredictThreshold = 512

// Predict traverses the tree for a single record. At each internal node the
// question is evaluated and traversal follows the matching branch; a
// missing cell fails the comparison and follows the false branch.
func (t *Tree) Predict(s Sample) Prediction {
	n := t.Root
	for {
		d, ok := n.(*DecisionNode)
		if !ok {
			return n.(*Leaf).Pred
		}
		if d.Question.Match(s) {
			n = d.True
		} else {
			n = d.False
		}
	}
}

// PredictBatch predicts every record independently, preserving input order.
func (t *Tree) PredictBatch(samples []Sample) []Prediction {
	out := make([]Prediction, len(samples))
	parallel.ParallelizeWithThreshold(len(samples), parallelPredictThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = t.Predict(samples[i])
		}
	})
	return out
}
