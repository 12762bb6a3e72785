package matrix_test

import (
	"context"
	"fmt"

	"github.com/utkarsh5026/matpool/matrix"
	"github.com/utkarsh5026/matpool/metrics"
)

func ExampleMultiply() {
	a := matrix.MustNew([]int{1, 2, 3, 4, 5, 6}, 3, 2)
	b := matrix.MustNew([]int{1, 2, 3, 4, 5, 6}, 2, 3)

	c, err := matrix.Multiply(context.Background(), a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(c.Rows(), c.Cols(), c.Data())
	// Output: 3 3 [9 12 15 19 26 33 29 40 51]
}

func ExampleEngine() {
	m := metrics.New()
	e, err := matrix.NewEngine[float64](context.Background(), matrix.WithWorkers(4), matrix.WithCounter(m))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer e.Close()

	id := matrix.MustNew([]float64{1, 0, 0, 1}, 2, 2)
	x := matrix.MustNew([]float64{2, 3, 4, 5}, 2, 2)

	c, _ := e.Multiply(context.Background(), x, id)
	fmt.Println(c.Data())
	fmt.Println(m.Get(matrix.MetricCells))
	// Output:
	// [2 3 4 5]
	// 4
}
