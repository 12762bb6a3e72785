package matrix

import (
	"fmt"
	"slices"
	"strings"
)

// Matrix is a dense rows x cols matrix stored row-major: element (i, j) lives at
// data[i*cols+j]. A Matrix is never modified after construction.
type Matrix[T Number] struct {
	rows, cols int
	data       []T
}

// New builds a rows x cols matrix from a copy of data, which must be row-major
// and hold exactly rows*cols elements.
func New[T Number](data []T, rows, cols int) (*Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShapeMismatch, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d elements for %dx%d", ErrShapeMismatch, len(data), rows, cols)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: slices.Clone(data)}, nil
}

// MustNew is like New but panics on error.
func MustNew[T Number](data []T, rows, cols int) *Matrix[T] {
	m, err := New(data, rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// Zeros returns a rows x cols matrix of zero values. Negative dimensions count as 0.
func Zeros[T Number](rows, cols int) *Matrix[T] {
	rows, cols = max(rows, 0), max(cols, 0)
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

func (m *Matrix[T]) Rows() int { return m.rows }
func (m *Matrix[T]) Cols() int { return m.cols }
func (m *Matrix[T]) Len() int  { return len(m.data) }

// At returns element (i, j).
func (m *Matrix[T]) At(i, j int) (T, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		var zero T
		return zero, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrIndexOutOfRange, i, j, m.rows, m.cols)
	}
	return m.data[i*m.cols+j], nil
}

// Row returns row i. The vector shares the matrix storage; neither can change it.
func (m *Matrix[T]) Row(i int) (Vector[T], error) {
	if i < 0 || i >= m.rows {
		return Vector[T]{}, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, m.rows)
	}
	start, end := i*m.cols, (i+1)*m.cols
	return Vector[T]{data: m.data[start:end:end]}, nil
}

// Col gathers column j (stride cols) into a new vector.
func (m *Matrix[T]) Col(j int) (Vector[T], error) {
	if j < 0 || j >= m.cols {
		return Vector[T]{}, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, j, m.cols)
	}
	col := make([]T, m.rows)
	for i := range col {
		col[i] = m.data[i*m.cols+j]
	}
	return Vector[T]{data: col}, nil
}

// Data returns a copy of the row-major elements.
func (m *Matrix[T]) Data() []T {
	return slices.Clone(m.data)
}

// Equal reports whether m and other have the same shape and elements.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.rows == other.rows && m.cols == other.cols && slices.Equal(m.data, other.data)
}

// String prints each element followed by a space, one row per line:
//
//	9 12 15 \n19 26 33 \n
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	for i := range m.rows {
		for _, v := range m.data[i*m.cols : (i+1)*m.cols] {
			fmt.Fprintf(&sb, "%v ", v)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
