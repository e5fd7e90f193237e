// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/modelmatrix/design"
)

// writeTable prints a titled, column-aligned table with its shape.
func writeTable(w io.Writer, title string, t *design.Table) error {
	fmt.Fprintf(w, "%s (%d x %d)\n", title, t.Height(), t.Width())
	if t.Width() == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(t.Names(), "\t")+"\t")

	cols := make([][]float64, t.Width())
	for j := range cols {
		cols[j] = t.ColumnAt(j)
	}
	cells := make([]string, len(cols))
	for i := 0; i < t.Height(); i++ {
		for j, c := range cols {
			cells[j] = strconv.FormatFloat(c[i], 'g', 6, 64)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}
