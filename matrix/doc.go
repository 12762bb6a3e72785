// Package matrix multiplies dense row-major matrices on a fixed pool of workers.
//
// Every output cell (i, j) becomes one task carrying row i of the left operand and
// column j of the right one. Tasks are routed to worker index mod P (P = 16 unless
// WithWorkers says otherwise), each worker owns one FIFO queue, and each task is
// answered through its own single-use future. The caller collects the futures in
// creation order and writes each value at the index it came back with.
//
// Multiply starts a pool for the call and stops it before returning:
//
//	a := matrix.MustNew([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
//	b := matrix.MustNew([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
//	c, err := matrix.Multiply(ctx, a, b)
//	fmt.Print(c) // 9 12 15 \n19 26 33 \n29 40 51 \n
//
// An Engine keeps its pool between calls:
//
//	e, err := matrix.NewEngine[float64](ctx, matrix.WithWorkers(8))
//	defer e.Close()
//	c, err := e.Multiply(ctx, a, b)
package matrix
