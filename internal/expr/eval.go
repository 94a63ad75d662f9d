package expr

import (
	"fmt"
	"math"
)

// EvalOp applies n's operation rule over pre-resolved buffer views.
//
// Buffer contract (all views owned by the calling tape):
//
//	in[i]         dependency i primal          (nil when absent)
//	out           own primal
//	fwdSeed[i][d] dependency i tangent, direction d
//	fwdSens[d]    own tangent, direction d
//	adjSeed[d]    own sensitivity, direction d
//	adjSens[i][d] dependency i sensitivity, direction d
//
// A forward sweep calls with (nfdir, 0): the rule writes out and
// fwdSens[0..nfdir). An adjoint sweep calls with (0, nadir): the rule
// reads adjSeed and accumulates into adjSens — never overwrites, because
// a shared dependency collects contributions from every parent.
func EvalOp(n *Node, callee Callee,
	in [][]float64, out []float64,
	fwdSeed [][][]float64, fwdSens [][]float64,
	adjSeed [][]float64, adjSens [][][]float64,
	nfdir, nadir int) {

	switch n.op {
	case OpSym:
		// Values and tangent seeds are copied in by the evaluation engine;
		// nothing flows backward out of a leaf.

	case OpConst:
		if nadir == 0 {
			copy(out, n.value.Data())
			for d := 0; d < nfdir; d++ {
				zero(fwdSens[d])
			}
		}

	case OpNeg, OpSin, OpCos, OpExp, OpLog, OpSqrt, OpTanh:
		evalUnary(n.op, in[0], out, fwdSeed, fwdSens, adjSeed, adjSens, nfdir, nadir)

	case OpAdd, OpSub, OpMul, OpDiv:
		evalBinary(n.op, in[0], in[1], out, fwdSeed, fwdSens, adjSeed, adjSens, nfdir, nadir)

	case OpScaleRows:
		evalScaleRows(n.sp.NCol(), in[0], in[1], out, fwdSeed, fwdSens, adjSeed, adjSens, nfdir, nadir)

	case OpVertcat:
		evalVertcat(in, out, fwdSeed, fwdSens, adjSeed, adjSens, nfdir, nadir)

	case OpCall:
		callee.EvalCall(in, out, fwdSeed, fwdSens, adjSeed, adjSens, nfdir, nadir)

	default:
		panic(fmt.Sprintf("expr: EvalOp: unknown operation %s", n.op))
	}
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}

func unaryVal(op OpKind, x float64) float64 {
	switch op {
	case OpNeg:
		return -x
	case OpSin:
		return math.Sin(x)
	case OpCos:
		return math.Cos(x)
	case OpExp:
		return math.Exp(x)
	case OpLog:
		return math.Log(x)
	case OpSqrt:
		return math.Sqrt(x)
	case OpTanh:
		return math.Tanh(x)
	}
	panic(fmt.Sprintf("expr: unaryVal: %s is not unary", op))
}

// unaryDer returns f'(x) given the input and the already-computed output,
// reusing the primal where the derivative admits it.
func unaryDer(op OpKind, x, y float64) float64 {
	switch op {
	case OpNeg:
		return -1
	case OpSin:
		return math.Cos(x)
	case OpCos:
		return -math.Sin(x)
	case OpExp:
		return y
	case OpLog:
		return 1 / x
	case OpSqrt:
		return 0.5 / y
	case OpTanh:
		return 1 - y*y
	}
	panic(fmt.Sprintf("expr: unaryDer: %s is not unary", op))
}

func evalUnary(op OpKind, x, out []float64,
	fwdSeed [][][]float64, fwdSens [][]float64,
	adjSeed [][]float64, adjSens [][][]float64,
	nfdir, nadir int) {

	if nadir == 0 {
		for k := range out {
			out[k] = unaryVal(op, x[k])
		}
		for d := 0; d < nfdir; d++ {
			sx, fs := fwdSeed[0][d], fwdSens[d]
			for k := range out {
				fs[k] = unaryDer(op, x[k], out[k]) * sx[k]
			}
		}
		return
	}
	for d := 0; d < nadir; d++ {
		s, ax := adjSeed[d], adjSens[0][d]
		for k := range out {
			ax[k] += unaryDer(op, x[k], out[k]) * s[k]
		}
	}
}

func binaryVal(op OpKind, x, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	}
	panic(fmt.Sprintf("expr: binaryVal: %s is not binary", op))
}

// binaryPartials returns (d out/d x, d out/d y) at one element.
func binaryPartials(op OpKind, x, y, out float64) (float64, float64) {
	switch op {
	case OpAdd:
		return 1, 1
	case OpSub:
		return 1, -1
	case OpMul:
		return y, x
	case OpDiv:
		return 1 / y, -out / y
	}
	panic(fmt.Sprintf("expr: binaryPartials: %s is not binary", op))
}

func evalBinary(op OpKind, x, y, out []float64,
	fwdSeed [][][]float64, fwdSens [][]float64,
	adjSeed [][]float64, adjSens [][][]float64,
	nfdir, nadir int) {

	if nadir == 0 {
		for k := range out {
			out[k] = binaryVal(op, x[k], y[k])
		}
		for d := 0; d < nfdir; d++ {
			sx, sy, fs := fwdSeed[0][d], fwdSeed[1][d], fwdSens[d]
			for k := range out {
				px, py := binaryPartials(op, x[k], y[k], out[k])
				fs[k] = px*sx[k] + py*sy[k]
			}
		}
		return
	}
	for d := 0; d < nadir; d++ {
		s, ax, ay := adjSeed[d], adjSens[0][d], adjSens[1][d]
		for k := range out {
			px, py := binaryPartials(op, x[k], y[k], out[k])
			ax[k] += px * s[k]
			ay[k] += py * s[k]
		}
	}
}

// evalScaleRows: out[r,c] = x[r,c] * w[r], where ncol is x's column count
// and w is addressed in row-major vec order.
func evalScaleRows(ncol int, x, w, out []float64,
	fwdSeed [][][]float64, fwdSens [][]float64,
	adjSeed [][]float64, adjSens [][][]float64,
	nfdir, nadir int) {

	if nadir == 0 {
		for k := range out {
			out[k] = x[k] * w[k/ncol]
		}
		for d := 0; d < nfdir; d++ {
			sx, sw, fs := fwdSeed[0][d], fwdSeed[1][d], fwdSens[d]
			for k := range out {
				r := k / ncol
				fs[k] = sx[k]*w[r] + x[k]*sw[r]
			}
		}
		return
	}
	for d := 0; d < nadir; d++ {
		s, ax, aw := adjSeed[d], adjSens[0][d], adjSens[1][d]
		for k := range out {
			r := k / ncol
			ax[k] += w[r] * s[k]
			aw[r] += x[k] * s[k]
		}
	}
}

func evalVertcat(in [][]float64, out []float64,
	fwdSeed [][][]float64, fwdSens [][]float64,
	adjSeed [][]float64, adjSens [][][]float64,
	nfdir, nadir int) {

	if nadir == 0 {
		off := 0
		for _, part := range in {
			copy(out[off:off+len(part)], part)
			off += len(part)
		}
		for d := 0; d < nfdir; d++ {
			off = 0
			for i := range in {
				seg := fwdSeed[i][d]
				copy(fwdSens[d][off:off+len(seg)], seg)
				off += len(seg)
			}
		}
		return
	}
	for d := 0; d < nadir; d++ {
		s := adjSeed[d]
		off := 0
		for i := range in {
			a := adjSens[i][d]
			for k := range a {
				a[k] += s[off+k]
			}
			off += len(a)
		}
	}
}
