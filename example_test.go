// SPDX-License-Identifier: MIT
package modelmatrix_test

import (
	"fmt"

	"github.com/katalvlaran/modelmatrix"
	"github.com/katalvlaran/modelmatrix/frame"
)

func ExampleCanonical() {
	s, err := modelmatrix.Canonical("y ~ a*b + (x|g)")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s)
	// Output: y ~ a + b + a:b + (1|g) + (0 + x|g)
}

func ExampleModelMatrix() {
	data := frame.MustNew(
		frame.FloatColumn("y", []float64{1, 2, 3, 4}),
		frame.FloatColumn("x", []float64{10, 20, 30, 40}),
		frame.StringColumn("g", []string{"a", "b", "a", "c"}),
	)
	y, X, err := modelmatrix.ModelMatrix("y ~ x + g", data)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(y.Names(), X.Names())
	fmt.Print(X.Dense())
	// Output:
	// [y] [intercept x g_b g_c]
	// [1, 10, 0, 0]
	// [1, 20, 1, 0]
	// [1, 30, 0, 0]
	// [1, 40, 0, 1]
}

func ExampleVariables() {
	vars, _ := modelmatrix.Variables("log(y) ~ poly(x, 2) + s(z) + (1|site/plot)")
	fmt.Println(vars)
	// Output: [plot site x y z]
}
