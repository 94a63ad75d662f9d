package function

import "fmt"

// ConstructionError reports an invalid root expression at build time.
type ConstructionError struct {
	Port   string // "input" or "output"
	Index  int
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("function: %s #%d %s", e.Port, e.Index, e.Reason)
}

// ConsistencyError reports a seed shape mismatch in symbolic
// differentiation: the offending seed index plus the expected and actual
// dimension.
type ConsistencyError struct {
	What  string // dimension kind, e.g. "columns", "rows", "seed count"
	Index int    // offending seed index, or -1 when not per-seed
	Want  int
	Got   int
}

func (e *ConsistencyError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("function: inconsistent %s: want %d, got %d", e.What, e.Want, e.Got)
	}
	return fmt.Sprintf("function: seed #%d: inconsistent %s: want %d, got %d", e.Index, e.What, e.Want, e.Got)
}
