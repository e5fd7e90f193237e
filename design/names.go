// SPDX-License-Identifier: MIT

package design

import (
	"strconv"
	"strings"
	"unicode"
)

// CleanName lower-cases name, turns every run of characters other than
// letters, digits and '_' into a single '_', and trims '_' from both ends.
// A name left empty becomes "column".
//
//	CleanName("poly(x, 2)")  == "poly_x_2"
//	CleanName("I(x^2)")      == "i_x_2"
//	CleanName("ri(g=A)")     == "ri_g_a"
func CleanName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	run := false
	for _, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			run = false
		case !run:
			b.WriteByte('_')
			run = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "column"
	}
	return out
}

// uniqueNames suffixes repeated names with _1, _2, ... in order of
// appearance, then cleans them when clean is set.
func uniqueNames(names []string, clean bool) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for k, n := range names {
		c := seen[n]
		seen[n] = c + 1
		if c > 0 {
			n += "_" + strconv.Itoa(c)
		}
		if clean {
			n = CleanName(n)
		}
		out[k] = n
	}
	return out
}
