// SPDX-License-Identifier: MIT

package filter2d_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvfilter/filter2d"
	"github.com/katalvlaran/lvfilter/matrix"
)

func ExampleConvolve() {
	ones := func(r, c int) *matrix.Dense {
		rows := make([][]float64, r)
		for i := range rows {
			rows[i] = []float64{}
			for j := 0; j < c; j++ {
				rows[i] = append(rows[i], 1)
			}
		}
		m, _ := matrix.NewFromRows(rows)
		return m
	}

	fmt.Print(filter2d.Convolve(ones(5, 5), ones(3, 3)))
	// Output:
	// [0, 0, 0, 0, 0]
	// [0, 9, 9, 9, 0]
	// [0, 9, 9, 9, 0]
	// [0, 9, 9, 9, 0]
	// [0, 0, 0, 0, 0]
}

func ExampleRun() {
	img, _ := matrix.NewFromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	k, _ := matrix.NewFromRows([][]float64{
		{0, 0, 0},
		{0, 2, 0},
		{0, 0, 0},
	})
	mode, _ := filter2d.ParseMode("collective")
	out, err := filter2d.Run(context.Background(), mode, img, k, filter2d.WithWorkers(2))
	fmt.Println(err)
	fmt.Print(out)
	// Output:
	// <nil>
	// [0, 0, 0]
	// [0, 10, 0]
	// [0, 0, 0]
}
