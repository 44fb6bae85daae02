package tree

import (
	"math"
	"math/rand"
	"time"

	"github.com/groveml/grove/core/parallel"
)

// DefaultTrees is the ensemble size used when none is given.
const DefaultTrees = 30

// Forest is an ordered ensemble of trees, each trained on an independent
// bootstrap resample of the same dataset with identical hyperparameters.
type Forest struct {
	Trees []*Tree
}

// BuildForest trains nTrees decision trees by bagging: each tree sees a
// size-N sample drawn with replacement from the N original records. Trees
// are built concurrently; every tree gets its own random source seeded from
// the configured one, so a fixed seed reproduces the exact forest
// regardless of scheduling.
//
// MaxFeatures defaults to round(sqrt(D)) here, unlike single-tree building
// where it defaults to all features.
func BuildForest(samples []Sample, labels []Value, nTrees int, opts ...Option) (*Forest, error) {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate(samples, labels, &cfg); err != nil {
		return nil, err
	}
	if nTrees <= 0 {
		nTrees = DefaultTrees
	}
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = int(math.Round(math.Sqrt(float64(len(samples[0])))))
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Seeds are drawn up front on the caller's goroutine; the shared source
	// is never touched by the workers.
	seeds := make([]int64, nTrees)
	for i := range seeds {
		seeds[i] = cfg.Rand.Int63()
	}

	trees := make([]*Tree, nTrees)
	errs := make([]error, nTrees)
	parallel.Parallelize(nTrees, func(start, end int) {
		for i := start; i < end; i++ {
			rng := rand.New(rand.NewSource(seeds[i]))
			bx, by := bootstrap(samples, labels, rng)
			treeOpts := append(optionsFromConfig(cfg), WithRand(rng))
			trees[i], errs[i] = Build(bx, by, treeOpts...)
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &Forest{Trees: trees}, nil
}

// bootstrap draws N record indices uniformly with replacement.
func bootstrap(samples []Sample, labels []Value, rng *rand.Rand) ([]Sample, []Value) {
	n := len(samples)
	bx := make([]Sample, n)
	by := make([]Value, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		bx[i] = samples[j]
		by[i] = labels[j]
	}
	return bx, by
}

func optionsFromConfig(cfg Config) []Option {
	return []Option{
		WithMaxDepth(cfg.MaxDepth),
		WithMinRecords(cfg.MinRecords),
		WithMinGain(cfg.MinGain),
		WithMaxFeatures(cfg.MaxFeatures),
		WithCriterion(cfg.Criterion),
		WithForceClassification(cfg.ForceClassification),
	}
}

// Predict aggregates the member trees' predictions for one record:
// distributions are averaged key-wise (absent classes count as zero) and
// numeric predictions are averaged arithmetically.
func (f *Forest) Predict(s Sample) Prediction {
	if len(f.Trees) == 0 {
		return Prediction{}
	}
	n := float64(len(f.Trees))
	if f.Trees[0].Numeric {
		var sum float64
		for _, t := range f.Trees {
			sum += t.Predict(s).Value
		}
		return Prediction{Numeric: true, Value: sum / n}
	}
	dist := make(map[string]float64)
	for _, t := range f.Trees {
		for c, p := range t.Predict(s).Dist {
			dist[c] += p / n
		}
	}
	return Prediction{Dist: dist}
}

// PredictBatch predicts every record independently, preserving input order.
func (f *Forest) PredictBatch(samples []Sample) []Prediction {
	out := make([]Prediction, len(samples))
	parallel.ParallelizeWithThreshold(len(samples), parallelPredictThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f.Predict(samples[i])
		}
	})
	return out
}
