package tree

import (
	"math/rand"
	"testing"
)

func TestQuestionMatch(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		sample   Sample
		want     bool
	}{
		{
			name:     "Numeric above threshold",
			question: Question{Feature: 0, Value: Num(2.5)},
			sample:   Sample{Num(3.0)},
			want:     true,
		},
		{
			name:     "Numeric at threshold",
			question: Question{Feature: 0, Value: Num(2.5)},
			sample:   Sample{Num(2.5)},
			want:     true,
		},
		{
			name:     "Numeric below threshold",
			question: Question{Feature: 0, Value: Num(2.5)},
			sample:   Sample{Num(2.0)},
			want:     false,
		},
		{
			name:     "Category equal",
			question: Question{Feature: 1, Value: Cat("red")},
			sample:   Sample{Num(0), Cat("red")},
			want:     true,
		},
		{
			name:     "Category different",
			question: Question{Feature: 1, Value: Cat("red")},
			sample:   Sample{Num(0), Cat("green")},
			want:     false,
		},
		{
			name:     "Missing cell never matches",
			question: Question{Feature: 0, Value: Num(2.5)},
			sample:   Sample{NA},
			want:     false,
		},
		{
			name:     "Category against numeric reference",
			question: Question{Feature: 0, Value: Num(1)},
			sample:   Sample{Cat("1")},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.question.Match(tt.sample); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitIndicesCoversAll(t *testing.T) {
	samples := []Sample{
		{Num(1)}, {Num(2)}, {Num(3)}, {NA}, {NA},
	}
	idx := []int{0, 1, 2, 3, 4}
	q := Question{Feature: 0, Value: Num(2)}
	rng := rand.New(rand.NewSource(7))

	trueIdx, falseIdx := splitIndices(samples, idx, q, rng)

	if len(trueIdx)+len(falseIdx) != len(idx) {
		t.Fatalf("split sizes %d+%d != %d", len(trueIdx), len(falseIdx), len(idx))
	}
	seen := make(map[int]int)
	for _, i := range trueIdx {
		seen[i]++
	}
	for _, i := range falseIdx {
		seen[i]++
	}
	for _, i := range idx {
		if seen[i] != 1 {
			t.Errorf("index %d appears %d times, want exactly once", i, seen[i])
		}
	}

	// Observed values route deterministically.
	for _, i := range trueIdx {
		if !samples[i][0].IsMissing() && samples[i][0].Float() < 2 {
			t.Errorf("index %d with value %v routed to true branch", i, samples[i][0])
		}
	}
}

func TestSplitIndicesMissingRatio(t *testing.T) {
	// Two observed records go true, one goes false, so each missing record
	// should land in the true branch with probability 2/3.
	samples := []Sample{
		{Num(5)}, {Num(6)}, {Num(1)}, {NA},
	}
	q := Question{Feature: 0, Value: Num(5)}
	rng := rand.New(rand.NewSource(42))

	const trials = 10000
	trueHits := 0
	for trial := 0; trial < trials; trial++ {
		trueIdx, _ := splitIndices(samples, []int{0, 1, 2, 3}, q, rng)
		for _, i := range trueIdx {
			if i == 3 {
				trueHits++
			}
		}
	}

	ratio := float64(trueHits) / trials
	if ratio < 0.63 || ratio > 0.70 {
		t.Errorf("missing record routed true with frequency %v, want about 2/3", ratio)
	}
}
