package tree

import "math/rand"

// bestSplit is the outcome of a split search. question is nil when no
// candidate achieved positive gain.
type bestSplit struct {
	gain     float64
	question *Question
	trueIdx  []int
	falseIdx []int
}

// findBestSplit scans a random subsample of maxFeatures features and every
// distinct observed value of each, partitions the node's records on the
// resulting question, and keeps the candidate with the highest information
// gain. Ties keep the first candidate found: only strictly greater gain
// replaces the incumbent. Candidates that leave one branch empty, or with
// fewer than minLeaf records, carry no usable information and are skipped.
func findBestSplit(samples []Sample, labels []Value, idx []int, maxFeatures, minLeaf int, c Criterion, rng *rand.Rand) bestSplit {
	best := bestSplit{}
	if len(idx) == 0 {
		return best
	}
	nFeatures := len(samples[idx[0]])
	if maxFeatures <= 0 || maxFeatures > nFeatures {
		maxFeatures = nFeatures
	}
	if minLeaf < 1 {
		minLeaf = 1
	}

	impurity := impurityFunc(c)
	y := gather(labels, idx)
	current := impurity(y)

	features := rng.Perm(nFeatures)[:maxFeatures]
	for _, f := range features {
		for _, v := range distinctValues(samples, idx, f) {
			q := Question{Feature: f, Value: v}
			trueIdx, falseIdx := splitIndices(samples, idx, q, rng)
			if len(trueIdx) < minLeaf || len(falseIdx) < minLeaf {
				continue
			}
			gain := infoGain(current, gather(labels, trueIdx), gather(labels, falseIdx), impurity)
			if gain > best.gain {
				best = bestSplit{gain: gain, question: &q, trueIdx: trueIdx, falseIdx: falseIdx}
			}
		}
	}
	return best
}

// distinctValues lists the distinct non-missing values of a feature over
// the given records, in first-seen order so the search is deterministic
// for a fixed random source.
func distinctValues(samples []Sample, idx []int, feature int) []Value {
	var out []Value
	seen := make(map[string]bool, len(idx))
	for _, i := range idx {
		v := samples[i][feature]
		if v.IsMissing() {
			continue
		}
		key := v.String()
		if v.IsCategorical() {
			key = "c:" + key
		}
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}
