package tree

import (
	"math/rand"

	"github.com/groveml/grove/tree"
)

// treeParams holds the hyperparameters shared by the decision-tree
// estimators.
type treeParams struct {
	criterion       string
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	seed            int64
	hasSeed         bool
}

// Option configures a decision-tree estimator.
type Option func(*treeParams)

// WithCriterion sets the split quality measure ("gini" or "entropy" for
// classification, "variance" for regression).
func WithCriterion(criterion string) Option {
	return func(p *treeParams) { p.criterion = criterion }
}

// WithMaxDepth limits the number of split levels. Zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(p *treeParams) { p.maxDepth = depth }
}

// WithMinSamplesSplit sets the minimum number of samples a node needs to
// be considered for splitting.
func WithMinSamplesSplit(n int) Option {
	return func(p *treeParams) { p.minSamplesSplit = n }
}

// WithMinSamplesLeaf sets the minimum number of samples every leaf must
// hold. Split candidates that would leave a smaller branch are skipped.
func WithMinSamplesLeaf(n int) Option {
	return func(p *treeParams) { p.minSamplesLeaf = n }
}

// WithSeed fixes the random source so equal-gain tie-breaks and fits
// are reproducible.
func WithSeed(seed int64) Option {
	return func(p *treeParams) { p.seed, p.hasSeed = seed, true }
}

// engineMinRecords translates min_samples_split into the engine's leaf
// threshold: a node becomes a leaf when it holds at most this many
// records.
func (p *treeParams) engineMinRecords() int {
	minSplit := p.minSamplesSplit
	if minSplit < 2 {
		minSplit = 2
	}
	return minSplit - 1
}

// engineMinLeaf is the smallest branch size a split may produce.
func (p *treeParams) engineMinLeaf() int {
	if p.minSamplesLeaf < 1 {
		return 1
	}
	return p.minSamplesLeaf
}

// engineOptions translates the hyperparameters into core engine options.
func (p *treeParams) engineOptions(criterion tree.Criterion) []tree.Option {
	opts := []tree.Option{
		tree.WithCriterion(criterion),
		tree.WithMaxDepth(p.engineMaxDepth()),
		tree.WithMinRecords(p.engineMinRecords()),
		tree.WithMinLeafRecords(p.engineMinLeaf()),
	}
	if p.hasSeed {
		opts = append(opts, tree.WithRand(rand.New(rand.NewSource(p.seed))))
	}
	return opts
}

// engineMaxDepth translates split levels into the engine's node-depth
// limit, where the root sits at depth 1.
func (p *treeParams) engineMaxDepth() int {
	if p.maxDepth <= 0 {
		return 0
	}
	return p.maxDepth + 1
}
