// Package grove is a machine learning toolkit for Go built around
// decision trees and random forests over mixed numeric, categorical,
// and missing data, with a pluggable optimizer protocol for gradient
// trained models.
//
// # Quick Start
//
// Train a decision tree on mixed features:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "math/rand"
//
//	    "github.com/groveml/grove/tree"
//	)
//
//	func main() {
//	    samples := []tree.Sample{
//	        {tree.Num(3.0), tree.Cat("green")},
//	        {tree.Num(1.1), tree.Cat("red")},
//	        {tree.Num(3.2), tree.Cat("yellow")},
//	    }
//	    labels := []tree.Value{tree.Cat("apple"), tree.Cat("grape"), tree.Cat("lemon")}
//
//	    t, err := tree.Build(samples, labels,
//	        tree.WithMinRecords(1),
//	        tree.WithRand(rand.New(rand.NewSource(42))))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred := t.Predict(tree.Sample{tree.Num(3.1), tree.Cat("yellow")})
//	    fmt.Println(pred.Class())
//	}
//
// # Packages
//
//   - tree: decision trees and random forests over mixed-typed data
//   - sklearn/tree, sklearn/ensemble: scikit-learn style wrappers on
//     gonum matrices
//   - optimizer: SGD, Adam, and debug update rules behind one protocol
//   - neural: a small feed-forward network driven by the optimizers
//   - metrics: regression, classification, and ranking metrics
//   - preprocessing: scalers and a one-hot encoder
//   - stats: hypothesis tests for comparing evaluation results
//   - dataset: CSV and NumPy .npy loading
//   - visualize: tree diagrams and training curves
//   - pkg/errors, pkg/log: the error taxonomy and structured logging
//     used throughout
//
// Every random draw in training flows from an explicitly injected
// *rand.Rand, so fits are reproducible and forests build one tree per
// goroutine without shared state.
package grove
