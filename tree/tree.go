package tree

import (
	"math"
	"math/rand"
	"time"

	"github.com/groveml/grove/pkg/errors"
)

// Prediction is the output of a leaf or an ensemble: a class-probability
// distribution for classification or a scalar mean for regression.
type Prediction struct {
	Numeric bool
	Value   float64
	Dist    map[string]float64
}

// Class returns the most probable class of a classification prediction.
// Ties resolve to the lexicographically smallest class so the result does
// not depend on map iteration order.
func (p Prediction) Class() string {
	best, bestP := "", math.Inf(-1)
	for c, pr := range p.Dist {
		if pr > bestP || (pr == bestP && c < best) {
			best, bestP = c, pr
		}
	}
	return best
}

// Node is either a *Leaf or a *DecisionNode. Traversals type-switch on the
// concrete type.
type Node interface {
	nodeDepth() int
}

// Leaf is a terminal node. It keeps the raw labels routed to it at build
// time and the prediction derived from them; both are fixed once built.
type Leaf struct {
	Depth  int
	Labels []Value
	Pred   Prediction
}

func (l *Leaf) nodeDepth() int { return l.Depth }

// DecisionNode is an internal node: a question and the two subtrees holding
// the records that matched and did not match it.
type DecisionNode struct {
	Depth    int
	Question Question
	Gain     float64
	Records  int
	True     Node
	False    Node
}

func (d *DecisionNode) nodeDepth() int { return d.Depth }

// Tree is a trained decision tree.
type Tree struct {
	Root      Node
	NFeatures int
	// Numeric reports whether the tree regresses (true) or classifies.
	Numeric bool
}

func newLeaf(labels []Value, depth int) *Leaf {
	l := &Leaf{Depth: depth, Labels: labels}
	if numericLabels(labels) {
		var sum float64
		for _, y := range labels {
			sum += y.Float()
		}
		l.Pred = Prediction{Numeric: true, Value: sum / float64(len(labels))}
		return l
	}
	dist := make(map[string]float64, 4)
	for c, n := range classCounts(labels) {
		dist[c] = float64(n) / float64(len(labels))
	}
	l.Pred = Prediction{Dist: dist}
	return l
}

// Build grows a decision tree over the entire dataset.
//
// Defaults: MaxDepth = record count, MinGain = 0, MinRecords = 2,
// MaxFeatures = all features, Criterion = variance for numeric labels and
// gini otherwise.
func Build(samples []Sample, labels []Value, opts ...Option) (*Tree, error) {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate(samples, labels, &cfg); err != nil {
		return nil, err
	}
	applyTreeDefaults(samples, labels, &cfg)

	if cfg.ForceClassification && numericLabels(labels) {
		converted := make([]Value, len(labels))
		for i, y := range labels {
			converted[i] = Cat(y.String())
		}
		labels = converted
	}

	idx := make([]int, len(samples))
	for i := range idx {
		idx[i] = i
	}
	root := buildNode(samples, labels, idx, 1, &cfg)
	return &Tree{Root: root, NFeatures: len(samples[0]), Numeric: numericLabels(labels)}, nil
}

// buildNode recursively grows the subtree for the records in idx. All
// state travels in the arguments, so concurrent builds of different trees
// never share anything but the immutable dataset.
func buildNode(samples []Sample, labels []Value, idx []int, depth int, cfg *Config) Node {
	if len(idx) <= cfg.MinRecords || depth >= cfg.MaxDepth {
		return newLeaf(gather(labels, idx), depth)
	}
	best := findBestSplit(samples, labels, idx, cfg.MaxFeatures, cfg.MinLeafRecords, cfg.Criterion, cfg.Rand)
	if best.question == nil || best.gain <= cfg.MinGain {
		return newLeaf(gather(labels, idx), depth)
	}
	return &DecisionNode{
		Depth:    depth,
		Question: *best.question,
		Gain:     best.gain,
		Records:  len(idx),
		True:     buildNode(samples, labels, best.trueIdx, depth+1, cfg),
		False:    buildNode(samples, labels, best.falseIdx, depth+1, cfg),
	}
}

func validate(samples []Sample, labels []Value, cfg *Config) error {
	if len(samples) == 0 {
		return errors.NewModelError("tree.Build", "empty data", errors.ErrEmptyData)
	}
	if len(labels) != len(samples) {
		return errors.NewDimensionError("tree.Build", len(samples), len(labels), 0)
	}
	width := len(samples[0])
	for _, s := range samples {
		if len(s) != width {
			return errors.NewDimensionError("tree.Build", width, len(s), 1)
		}
	}
	switch cfg.Criterion {
	case "", CriterionGini, CriterionEntropy, CriterionVariance:
	default:
		return errors.NewValidationError("criterion", "must be gini, entropy or variance", string(cfg.Criterion))
	}
	return nil
}

func applyTreeDefaults(samples []Sample, labels []Value, cfg *Config) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = len(samples)
	}
	if cfg.MinRecords <= 0 {
		cfg.MinRecords = 2
	}
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = len(samples[0])
	}
	if cfg.Criterion == "" {
		if numericLabels(labels) && !cfg.ForceClassification {
			cfg.Criterion = CriterionVariance
		} else {
			cfg.Criterion = CriterionGini
		}
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// Depth returns the maximum leaf depth, counting the root as 1.
func (t *Tree) Depth() int {
	var walk func(Node) int
	walk = func(n Node) int {
		if d, ok := n.(*DecisionNode); ok {
			return max(walk(d.True), walk(d.False))
		}
		return n.nodeDepth()
	}
	return walk(t.Root)
}

// NLeaves returns the number of terminal nodes.
func (t *Tree) NLeaves() int {
	var walk func(Node) int
	walk = func(n Node) int {
		if d, ok := n.(*DecisionNode); ok {
			return walk(d.True) + walk(d.False)
		}
		return 1
	}
	return walk(t.Root)
}

// FeatureImportances returns per-feature importance scores: each split's
// gain weighted by the fraction of records it saw, summed per feature and
// normalized to 1. All zeros when the tree is a single leaf.
func (t *Tree) FeatureImportances() []float64 {
	imp := make([]float64, t.NFeatures)
	total := rootRecords(t.Root)
	var walk func(Node)
	walk = func(n Node) {
		d, ok := n.(*DecisionNode)
		if !ok {
			return
		}
		imp[d.Question.Feature] += d.Gain * float64(d.Records) / float64(total)
		walk(d.True)
		walk(d.False)
	}
	walk(t.Root)
	var sum float64
	for _, v := range imp {
		sum += v
	}
	if sum > 0 {
		for i := range imp {
			imp[i] /= sum
		}
	}
	return imp
}

func rootRecords(n Node) int {
	switch v := n.(type) {
	case *DecisionNode:
		return v.Records
	case *Leaf:
		return len(v.Labels)
	}
	return 1
}
