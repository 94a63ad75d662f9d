// Copyright 2026 Symgraph Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package function provides the public API for evaluable functions over
// expression graphs.
//
// A Function captures declared input and output expressions, linearizes
// the reachable graph into an ordered tape at Init, and executes forward
// (primal + tangent) and adjoint (reverse sensitivity) sweeps over that
// tape. It can also differentiate itself symbolically, producing new
// expression graphs for directional derivatives.
//
// Example:
//
//	a := expr.SymScalar("a")
//	b := expr.SymScalar("b")
//	y := expr.Mul(a, b)
//
//	f, err := function.New([]*expr.Node{a, b}, []*expr.Node{y})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f.Init()
//	f.Input(0).Fill(3)
//	f.Input(1).Fill(4)
//	f.Evaluate(0, 0)
//	// f.Output(0) now holds 12
package function

import "github.com/symgraph/symgraph/internal/function"

// Function evaluates declared output expressions from declared input
// expressions over a linearized tape.
type Function = function.Function

// LiftingFunc is the forward-sweep side-channel callback.
type LiftingFunc = function.LiftingFunc

// ConstructionError reports an invalid root expression at build time.
type ConstructionError = function.ConstructionError

// ConsistencyError reports a seed shape mismatch in symbolic
// differentiation.
type ConsistencyError = function.ConsistencyError

// New validates the root expressions and creates a function instance.
var New = function.New
