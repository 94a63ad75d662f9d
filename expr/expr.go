// Copyright 2026 Symgraph Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package expr provides the public API for building symbolic expression
// graphs.
//
// Expressions form a shared DAG: the same node may feed many parents, and
// that sharing is deliberate common-subexpression reuse. Nodes are
// immutable after construction, so graphs can be shared across any number
// of function instances.
//
// Example:
//
//	a := expr.SymScalar("a")
//	b := expr.SymScalar("b")
//	y := expr.Add(expr.Mul(a, b), expr.Sin(a))
package expr

import "github.com/symgraph/symgraph/internal/expr"

// Node is one vertex of a shared expression DAG.
type Node = expr.Node

// OpKind tags the operation a node performs.
type OpKind = expr.OpKind

// Operation tags.
const (
	OpSym       = expr.OpSym
	OpConst     = expr.OpConst
	OpNeg       = expr.OpNeg
	OpSin       = expr.OpSin
	OpCos       = expr.OpCos
	OpExp       = expr.OpExp
	OpLog       = expr.OpLog
	OpSqrt      = expr.OpSqrt
	OpTanh      = expr.OpTanh
	OpAdd       = expr.OpAdd
	OpSub       = expr.OpSub
	OpMul       = expr.OpMul
	OpDiv       = expr.OpDiv
	OpScaleRows = expr.OpScaleRows
	OpVertcat   = expr.OpVertcat
	OpCall      = expr.OpCall
)

// Callee is an evaluable subfunction embedded in a call node.
type Callee = expr.Callee

// Leaf constructors.
var (
	Sym       = expr.Sym
	SymScalar = expr.SymScalar
	Const     = expr.Const
	Scalar    = expr.Scalar
	Eye       = expr.Eye
	Zeros     = expr.Zeros
	Ones      = expr.Ones
	Fill      = expr.Fill
)

// Operation constructors. Element-wise binaries require identical
// sparsity on both operands; there is no implicit broadcasting.
var (
	Neg       = expr.Neg
	Sin       = expr.Sin
	Cos       = expr.Cos
	Exp       = expr.Exp
	Log       = expr.Log
	Sqrt      = expr.Sqrt
	Tanh      = expr.Tanh
	Add       = expr.Add
	Sub       = expr.Sub
	Mul       = expr.Mul
	Div       = expr.Div
	ScaleRows = expr.ScaleRows
	Vertcat   = expr.Vertcat
	NewCall   = expr.NewCall
)

// SortDepthFirst returns every node reachable from the two seed sets in
// dependency order.
var SortDepthFirst = expr.SortDepthFirst
