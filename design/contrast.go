// SPDX-License-Identifier: MIT

package design

import "strconv"

// contrastColumns codes a categorical vector. levels must be sorted and
// distinct; fewer than two levels yield no columns.
//
// Treatment: level k (k ≥ 1) → indicator, named {var}_{level}.
// Sum:       level k (k < K-1) → 1 on k, -1 on the last level, named {var}_S{level}.
// Helmert:   column k (1..K-1) → -1 below k, k on k, 0 above, named {var}_H{k}.
func contrastColumns(kind ContrastKind, name string, values, levels []string) []column {
	if len(levels) < 2 {
		return nil
	}
	pos := make(map[string]int, len(levels))
	for k, l := range levels {
		pos[l] = k
	}
	idx := make([]int, len(values))
	for i, v := range values {
		idx[i] = pos[v]
	}

	last := len(levels) - 1
	cols := make([]column, 0, last)
	for k := 0; k < last; k++ {
		var c column
		switch kind {
		case Sum:
			c.name = name + "_S" + levels[k]
		case Helmert:
			c.name = name + "_H" + strconv.Itoa(k+1)
		default:
			c.name = name + "_" + levels[k+1]
		}
		c.values = make([]float64, len(values))
		for i, at := range idx {
			c.values[i] = contrastCell(kind, k, at, last)
		}
		cols = append(cols, c)
	}
	return cols
}

// contrastCell is entry (level at, column k) of the contrast matrix.
func contrastCell(kind ContrastKind, k, at, last int) float64 {
	switch kind {
	case Sum:
		switch at {
		case k:
			return 1
		case last:
			return -1
		}
		return 0
	case Helmert:
		switch {
		case at <= k:
			return -1
		case at == k+1:
			return float64(k + 1)
		}
		return 0
	}
	if at == k+1 {
		return 1
	}
	return 0
}
