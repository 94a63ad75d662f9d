package function

import "github.com/symgraph/symgraph/internal/expr"

// Function implements expr.Callee, so an initialized instance can be
// embedded in a call node of another graph.
var _ expr.Callee = (*Function)(nil)

// Instantiate returns a private initialized copy carrying at least the
// requested direction counts. Tape builders call this so the embedding
// tape never shares buffers with the prototype instance.
func (f *Function) Instantiate(nfdir, nadir int) expr.Callee {
	g := f.Clone()
	g.SetNumDirections(max(g.nfdir, nfdir), max(g.nadir, nadir))
	g.Init()
	return g
}

// EvalCall runs the callee for one tape entry. Arguments and seeds are
// copied into the callee's ports, a full sweep runs on the callee's own
// tape, and the results are copied (forward) or accumulated (adjoint) back
// into the caller's buffer views.
func (f *Function) EvalCall(in [][]float64, out []float64,
	fwdSeed [][][]float64, fwdSens [][]float64,
	adjSeed [][]float64, adjSens [][][]float64,
	nfdir, nadir int) {

	for i := range f.in {
		_ = f.in[i].Set(in[i])
	}
	for d := 0; d < nfdir; d++ {
		for i := range f.in {
			_ = f.fwdSeed[i][d].Set(fwdSeed[i][d])
		}
	}
	for d := 0; d < nadir; d++ {
		_ = f.adjSeed[0][d].Set(adjSeed[d])
	}

	f.Evaluate(nfdir, nadir)

	if nadir == 0 {
		_ = f.out[0].Get(out)
		for d := 0; d < nfdir; d++ {
			_ = f.fwdSens[0][d].Get(fwdSens[d])
		}
		return
	}
	for i := range f.in {
		for d := 0; d < nadir; d++ {
			src := f.adjSens[i][d].Data()
			dst := adjSens[i][d]
			for k := range dst {
				dst[k] += src[k]
			}
		}
	}
}
