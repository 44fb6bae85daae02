package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/groveml/grove/pkg/errors"
)

// scorePair couples a ranking score with the graded relevance of the
// item it was assigned to.
type scorePair = struct {
	score     float64
	relevance float64
}

// dcg computes the discounted cumulative gain of the first k pairs in
// the order given, using the exponential gain (2^rel - 1).
func dcg(pairs []scorePair, k int) float64 {
	if k > len(pairs) {
		k = len(pairs)
	}
	var sum float64
	for i := 0; i < k; i++ {
		gain := math.Pow(2, pairs[i].relevance) - 1
		sum += gain / math.Log2(float64(i)+2)
	}
	return sum
}

// NDCG computes the normalized discounted cumulative gain at rank k.
// Relevance grades must be non-negative. k = -1 evaluates the full
// ranking. When every item has zero relevance the result is 0.
func NDCG(yTrue, yPred *mat.VecDense, k int) (float64, error) {
	n, err := checkVectors("NDCG", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if k == 0 || k < -1 {
		return 0, errors.NewValueError("NDCG", "k must be positive or -1 for all items")
	}
	if k == -1 {
		k = n
	}

	pairs := make([]scorePair, n)
	for i := 0; i < n; i++ {
		rel := yTrue.AtVec(i)
		if rel < 0 {
			return 0, errors.NewValueError("NDCG", "relevance grades must be non-negative")
		}
		pairs[i] = scorePair{score: yPred.AtVec(i), relevance: rel}
	}

	ranked := make([]scorePair, n)
	copy(ranked, pairs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	ideal := make([]scorePair, n)
	copy(ideal, pairs)
	sort.SliceStable(ideal, func(i, j int) bool {
		return ideal[i].relevance > ideal[j].relevance
	})

	idcg := dcg(ideal, k)
	if idcg == 0 {
		return 0, nil
	}
	return dcg(ranked, k) / idcg, nil
}

// NDCGMatrix computes NDCG over the first column of matrix inputs.
func NDCGMatrix(yTrue, yPred mat.Matrix, k int) (float64, error) {
	tv, err := firstColumn("NDCGMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := firstColumn("NDCGMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return NDCG(tv, pv, k)
}

// AveragePrecision computes the average precision of a binary
// relevance ranking. Items are ranked by descending score and the
// precision at each relevant item's rank is averaged. With no relevant
// items the result is 0.
func AveragePrecision(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("AveragePrecision", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinaryLabels("AveragePrecision", yTrue); err != nil {
		return 0, err
	}

	pairs := make([]scorePair, n)
	for i := 0; i < n; i++ {
		pairs[i] = scorePair{score: yPred.AtVec(i), relevance: yTrue.AtVec(i)}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	var hits int
	var sum float64
	for i, p := range pairs {
		if p.relevance == 1 {
			hits++
			sum += float64(hits) / float64(i+1)
		}
	}
	if hits == 0 {
		return 0, nil
	}
	return sum / float64(hits), nil
}

// MeanAveragePrecision averages AveragePrecision over a list of
// queries.
func MeanAveragePrecision(yTrueList, yPredList []*mat.VecDense) (float64, error) {
	if len(yTrueList) == 0 {
		return 0, errors.NewValueError("MeanAveragePrecision", "no queries given")
	}
	if len(yTrueList) != len(yPredList) {
		return 0, errors.NewDimensionError("MeanAveragePrecision",
			len(yTrueList), len(yPredList), 0)
	}
	var sum float64
	for i := range yTrueList {
		ap, err := AveragePrecision(yTrueList[i], yPredList[i])
		if err != nil {
			return 0, err
		}
		sum += ap
	}
	return sum / float64(len(yTrueList)), nil
}
