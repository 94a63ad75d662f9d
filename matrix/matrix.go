// Copyright 2026 Symgraph Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense numeric container and the sparsity
// pattern used for function I/O: values are read and written against a
// declared sparsity, never resized implicitly.
package matrix

import "github.com/symgraph/symgraph/internal/matrix"

// Sparsity describes the shape and nonzero structure of a matrix.
type Sparsity = matrix.Sparsity

// Matrix is a dense numeric container addressed against a declared
// sparsity.
type Matrix = matrix.Matrix

// Constructors.
var (
	Dense     = matrix.Dense
	Scalar    = matrix.Scalar
	New       = matrix.New
	FromSlice = matrix.FromSlice
	Identity  = matrix.Identity
	Zeros     = matrix.Zeros
	Ones      = matrix.Ones
	Filled    = matrix.Filled
)
