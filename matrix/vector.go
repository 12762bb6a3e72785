package matrix

// Number is any element type with a zero value, + and *.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Vector is a read-only, fixed-length sequence of numbers.
type Vector[T Number] struct {
	data []T
}

// NewVector copies data into a new Vector.
func NewVector[T Number](data []T) Vector[T] {
	return Vector[T]{data: append([]T(nil), data...)}
}

func (v Vector[T]) Len() int { return len(v.data) }

// At returns element i. It panics if i is out of range, like a slice index.
func (v Vector[T]) At(i int) T { return v.data[i] }

// Data returns a copy of the elements.
func (v Vector[T]) Data() []T { return append([]T(nil), v.data...) }

// DotProduct returns sum(a[i]*b[i]), accumulated left to right from zero.
// Overflow wraps for integers as usual in Go.
func DotProduct[T Number](a, b Vector[T]) (T, error) {
	var sum T
	if len(a.data) != len(b.data) {
		return sum, ErrDimensionMismatch
	}
	for i, x := range a.data {
		sum += x * b.data[i]
	}
	return sum, nil
}
