package function

import (
	"fmt"
	"io"
)

// Print renders the tape, one line per entry: slot index, operation and
// dependency slots, with "[]" marking an absent dependency. Diagnostic
// only; the format carries no compatibility guarantee.
func (f *Function) Print(w io.Writer) {
	f.assertInit("Print")
	for i := range f.tape {
		e := &f.tape[i]
		args := make([]string, len(e.deps))
		for j, ci := range e.deps {
			if ci == absentDep {
				args[j] = "[]"
			} else {
				args[j] = fmt.Sprintf("i_%d", ci)
			}
		}
		fmt.Fprintf(w, "i_%d = %s\n", i, e.node.Format(args))
	}
}
