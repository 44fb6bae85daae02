package tree

import "math/rand"

// Config collects the hyperparameters shared by tree and forest building.
type Config struct {
	// MaxDepth stops splitting once a node reaches this depth (root = 1).
	// Zero means the record count, which is effectively unbounded.
	MaxDepth int
	// MinRecords stops splitting nodes with at most this many records.
	MinRecords int
	// MinLeafRecords is the smallest branch a split may produce. Split
	// candidates leaving either branch below it are skipped. Zero means 1.
	MinLeafRecords int
	// MinGain stops splitting when the best split's gain is not above it.
	MinGain float64
	// MaxFeatures is the size of the random feature subsample examined per
	// split. Zero means all features for a single tree and round(sqrt(D))
	// for a forest.
	MaxFeatures int
	// Criterion selects the impurity measure. Empty means variance for
	// numeric labels and gini otherwise.
	Criterion Criterion
	// ForceClassification converts numeric labels to their string form
	// before building, so the tree classifies instead of regressing.
	ForceClassification bool
	// Rand is the source for every random draw. Nil means a freshly
	// seeded source, which makes builds non-reproducible.
	Rand *rand.Rand
}

// Option configures tree or forest building.
type Option func(*Config)

// WithMaxDepth sets the depth at which nodes become leaves.
func WithMaxDepth(d int) Option {
	return func(c *Config) { c.MaxDepth = d }
}

// WithMinRecords sets the record count at or below which a node becomes a
// leaf.
func WithMinRecords(n int) Option {
	return func(c *Config) { c.MinRecords = n }
}

// WithMinLeafRecords sets the smallest branch size a split may produce.
func WithMinLeafRecords(n int) Option {
	return func(c *Config) { c.MinLeafRecords = n }
}

// WithMinGain sets the information gain a split must exceed.
func WithMinGain(g float64) Option {
	return func(c *Config) { c.MinGain = g }
}

// WithMaxFeatures sets the number of features sampled per split search.
func WithMaxFeatures(n int) Option {
	return func(c *Config) { c.MaxFeatures = n }
}

// WithCriterion sets the impurity measure.
func WithCriterion(crit Criterion) Option {
	return func(c *Config) { c.Criterion = crit }
}

// WithForceClassification treats numeric labels as categories.
func WithForceClassification(force bool) Option {
	return func(c *Config) { c.ForceClassification = force }
}

// WithRand sets the random source used for bootstrap resampling, feature
// subsampling, and missing-value routing.
func WithRand(rng *rand.Rand) Option {
	return func(c *Config) { c.Rand = rng }
}
