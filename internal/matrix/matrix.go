package matrix

import "fmt"

// Sparsity describes the shape and nonzero structure of a matrix.
//
// The representation is dense: every entry within the declared shape is
// structurally nonzero, so the element count is simply NRow*NCol. The rest
// of the system treats Sparsity as opaque and only asks for shape, element
// count and equality.
type Sparsity struct {
	nrow, ncol int
}

// Dense returns a dense nrow-by-ncol sparsity pattern.
func Dense(nrow, ncol int) Sparsity {
	if nrow < 0 || ncol < 0 {
		panic(fmt.Sprintf("matrix: invalid sparsity %dx%d (dimensions must be non-negative)", nrow, ncol))
	}
	return Sparsity{nrow: nrow, ncol: ncol}
}

// Scalar returns the 1x1 sparsity pattern.
func Scalar() Sparsity {
	return Sparsity{nrow: 1, ncol: 1}
}

// NRow returns the number of rows.
func (s Sparsity) NRow() int { return s.nrow }

// NCol returns the number of columns.
func (s Sparsity) NCol() int { return s.ncol }

// Numel returns the number of structural nonzeros.
func (s Sparsity) Numel() int { return s.nrow * s.ncol }

// Equal reports whether two patterns have the same shape.
func (s Sparsity) Equal(other Sparsity) bool {
	return s.nrow == other.nrow && s.ncol == other.ncol
}

// String returns a human-readable "RxC" form.
func (s Sparsity) String() string {
	return fmt.Sprintf("%dx%d", s.nrow, s.ncol)
}

// Matrix is a dense numeric container addressed against a declared sparsity.
// Storage is row-major float64.
type Matrix struct {
	sp   Sparsity
	data []float64
}

// New creates a zero-initialized matrix with the given sparsity.
func New(sp Sparsity) *Matrix {
	return &Matrix{
		sp:   sp,
		data: make([]float64, sp.Numel()),
	}
}

// FromSlice creates a matrix with the given sparsity, copying data.
// The slice length must match the pattern's element count.
func FromSlice(data []float64, sp Sparsity) (*Matrix, error) {
	if len(data) != sp.Numel() {
		return nil, fmt.Errorf("matrix: data length %d does not match sparsity %s (%d elements)",
			len(data), sp, sp.Numel())
	}
	m := New(sp)
	copy(m.data, data)
	return m, nil
}

// Identity returns the n-by-n identity matrix.
func Identity(n int) *Matrix {
	m := New(Dense(n, n))
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Zeros returns an nrow-by-ncol matrix of zeros.
func Zeros(nrow, ncol int) *Matrix {
	return New(Dense(nrow, ncol))
}

// Ones returns an nrow-by-ncol matrix of ones.
func Ones(nrow, ncol int) *Matrix {
	m := New(Dense(nrow, ncol))
	m.Fill(1)
	return m
}

// Filled returns an nrow-by-ncol matrix with every element set to v.
func Filled(v float64, nrow, ncol int) *Matrix {
	m := New(Dense(nrow, ncol))
	m.Fill(v)
	return m
}

// Sparsity returns the declared pattern.
func (m *Matrix) Sparsity() Sparsity { return m.sp }

// Numel returns the number of stored elements.
func (m *Matrix) Numel() int { return len(m.data) }

// Data returns the underlying element slice.
// The slice aliases the matrix; callers that need an independent copy
// should use Get or Clone.
func (m *Matrix) Data() []float64 { return m.data }

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) float64 {
	return m.data[r*m.sp.ncol+c]
}

// SetAt assigns the element at row r, column c.
func (m *Matrix) SetAt(r, c int, v float64) {
	m.data[r*m.sp.ncol+c] = v
}

// Get copies the elements into dst, which must have the declared
// element count.
func (m *Matrix) Get(dst []float64) error {
	if len(dst) != len(m.data) {
		return fmt.Errorf("matrix: destination length %d does not match element count %d", len(dst), len(m.data))
	}
	copy(dst, m.data)
	return nil
}

// Set copies the elements from src, which must have the declared
// element count.
func (m *Matrix) Set(src []float64) error {
	if len(src) != len(m.data) {
		return fmt.Errorf("matrix: source length %d does not match element count %d", len(src), len(m.data))
	}
	copy(m.data, src)
	return nil
}

// Fill assigns v to every element.
func (m *Matrix) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Zero clears every element.
func (m *Matrix) Zero() {
	m.Fill(0)
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := New(m.sp)
	copy(c.data, m.data)
	return c
}

// String renders small matrices fully; a scalar prints as its value.
func (m *Matrix) String() string {
	if m.sp.Numel() == 1 {
		return fmt.Sprintf("%g", m.data[0])
	}
	return fmt.Sprintf("%s%v", m.sp, m.data)
}
