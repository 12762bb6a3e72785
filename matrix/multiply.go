package matrix

import "context"

// Multiply computes a x b on a pool started for this call and stopped before it
// returns. ctx bounds both the pool and the wait for results.
//
// See Engine.Multiply for the error contract.
func Multiply[T Number](ctx context.Context, a, b *Matrix[T], opts ...Option) (*Matrix[T], error) {
	if err := checkShapes(a, b); err != nil {
		return nil, err
	}

	e, err := NewEngine[T](ctx, opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	return e.Multiply(ctx, a, b)
}
