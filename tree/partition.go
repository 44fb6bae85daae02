package tree

import "math/rand"

// splitIndices divides a node's record indices into the true and false
// branches of a question. Records whose questioned feature is missing are
// assigned to the true branch with probability |true|/(|true|+|false|),
// mirroring the distribution of the records that could be compared. The
// two returned sets are disjoint and together cover every input index.
func splitIndices(samples []Sample, idx []int, q Question, rng *rand.Rand) (trueIdx, falseIdx []int) {
	var missing []int
	for _, i := range idx {
		if samples[i][q.Feature].IsMissing() {
			missing = append(missing, i)
			continue
		}
		if q.Match(samples[i]) {
			trueIdx = append(trueIdx, i)
		} else {
			falseIdx = append(falseIdx, i)
		}
	}
	if len(missing) == 0 {
		return trueIdx, falseIdx
	}
	// Callers only partition on observed feature values, so at least one
	// branch is nonempty and the ratio is well defined.
	p := float64(len(trueIdx)) / float64(len(trueIdx)+len(falseIdx))
	for _, i := range missing {
		if rng.Float64() < p {
			trueIdx = append(trueIdx, i)
		} else {
			falseIdx = append(falseIdx, i)
		}
	}
	return trueIdx, falseIdx
}

// gather selects the labels at the given indices.
func gather(labels []Value, idx []int) []Value {
	out := make([]Value, len(idx))
	for k, i := range idx {
		out[k] = labels[i]
	}
	return out
}
