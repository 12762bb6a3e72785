package matrix

import "errors"

// All errors carry the "matrix: " prefix and are matched with errors.Is.
// Multiply wraps ErrTaskDelivery and ErrReplyLost together with the underlying
// cause, so both the sentinel and the cause (context.Canceled, a kernel error,
// pool.ErrSchedulerClosed) match.
var (
	// ErrShapeMismatch: the buffer passed to New does not hold rows*cols elements,
	// or a dimension is negative.
	ErrShapeMismatch = errors.New("matrix: data length does not match shape")

	// ErrIncompatibleShapes: a.Cols() != b.Rows(), an operand is nil, or a dimension is zero.
	ErrIncompatibleShapes = errors.New("matrix: incompatible shapes")

	// ErrDimensionMismatch: DotProduct operands differ in length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrIndexOutOfRange: At, Row or Col received an index outside the matrix.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrTaskDelivery: the pool refused a cell task. The whole product is discarded.
	ErrTaskDelivery = errors.New("matrix: task delivery failed")

	// ErrReplyLost: a cell's reply never carried a value, because the kernel failed,
	// the task was abandoned, or the caller's context ended.
	ErrReplyLost = errors.New("matrix: reply lost")

	// ErrDuplicateReply: two replies came back for the same output cell.
	ErrDuplicateReply = errors.New("matrix: duplicate reply")
)
