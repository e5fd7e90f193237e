// SPDX-License-Identifier: MIT

// Package frame is a small in-memory column store used as the data source for
// design materialization, plus CSV and YAML loaders.
//
// A Frame is an ordered set of equally long, typed columns. Columns are
// immutable once built; every accessor returns a copy.
package frame

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Kind is the storage type of a column.
type Kind int

const (
	Float Kind = iota
	Int
	Bool
	String
)

var kindNames = [...]string{Float: "float", Int: "int", Bool: "bool", String: "string"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Sentinel errors.
var (
	// ErrNotNumeric is returned when a string column is read as numbers.
	ErrNotNumeric = errors.New("frame: column is not numeric")
	// ErrDuplicateColumn is returned by New when two columns share a name.
	ErrDuplicateColumn = errors.New("frame: duplicate column")
	// ErrLengthMismatch is returned by New when columns differ in length.
	ErrLengthMismatch = errors.New("frame: column length mismatch")
	// ErrFormat is returned by the loaders on malformed input.
	ErrFormat = errors.New("frame: malformed input")
)

// Column is a named, typed vector. Exactly one of the backing slices is used,
// selected by kind.
type Column struct {
	name string
	kind Kind
	f    []float64
	i    []int64
	b    []bool
	s    []string
}

// FloatColumn builds a float column; values are copied.
func FloatColumn(name string, values []float64) *Column {
	return &Column{name: name, kind: Float, f: append([]float64(nil), values...)}
}

// IntColumn builds an integer column; values are copied.
func IntColumn(name string, values []int64) *Column {
	return &Column{name: name, kind: Int, i: append([]int64(nil), values...)}
}

// BoolColumn builds a boolean column; values are copied.
func BoolColumn(name string, values []bool) *Column {
	return &Column{name: name, kind: Bool, b: append([]bool(nil), values...)}
}

// StringColumn builds a categorical column; values are copied.
func StringColumn(name string, values []string) *Column {
	return &Column{name: name, kind: String, s: append([]string(nil), values...)}
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }

// IsNumeric reports whether Floats succeeds.
func (c *Column) IsNumeric() bool { return c.kind != String }

// Len returns the number of values.
func (c *Column) Len() int {
	switch c.kind {
	case Int:
		return len(c.i)
	case Bool:
		return len(c.b)
	case String:
		return len(c.s)
	}
	return len(c.f)
}

// Floats returns the values as float64. Booleans map to 0 and 1; strings fail
// with ErrNotNumeric.
func (c *Column) Floats() ([]float64, error) {
	out := make([]float64, c.Len())
	switch c.kind {
	case Float:
		copy(out, c.f)
	case Int:
		for k, v := range c.i {
			out[k] = float64(v)
		}
	case Bool:
		for k, v := range c.b {
			if v {
				out[k] = 1
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q has kind %s", ErrNotNumeric, c.name, c.kind)
	}
	return out, nil
}

// Strings returns the values in their shortest decimal or literal form.
func (c *Column) Strings() []string {
	out := make([]string, c.Len())
	for k := range out {
		out[k] = c.format(k)
	}
	return out
}

func (c *Column) format(k int) string {
	switch c.kind {
	case Float:
		return FormatFloat(c.f[k])
	case Int:
		return strconv.FormatInt(c.i[k], 10)
	case Bool:
		return strconv.FormatBool(c.b[k])
	}
	return c.s[k]
}

// FormatFloat renders v in the shortest form that round-trips, without an
// exponent, so 1.0 prints as "1". Negative zero prints as "0".
func FormatFloat(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Distinct returns the sorted distinct values in string form. Numeric kinds
// sort numerically (NaN is skipped), booleans false before true, strings
// lexicographically.
func (c *Column) Distinct() []string {
	switch c.kind {
	case String:
		seen := make(map[string]bool, len(c.s))
		var out []string
		for _, v := range c.s {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
		sort.Strings(out)
		return out
	case Bool:
		var hasF, hasT bool
		for _, v := range c.b {
			if v {
				hasT = true
			} else {
				hasF = true
			}
		}
		var out []string
		if hasF {
			out = append(out, "false")
		}
		if hasT {
			out = append(out, "true")
		}
		return out
	}

	if c.kind == Int {
		seen := make(map[int64]bool, len(c.i))
		uniq := make([]int64, 0, len(c.i))
		for _, v := range c.i {
			if !seen[v] {
				seen[v] = true
				uniq = append(uniq, v)
			}
		}
		sort.Slice(uniq, func(a, b int) bool { return uniq[a] < uniq[b] })
		out := make([]string, len(uniq))
		for k, v := range uniq {
			out[k] = strconv.FormatInt(v, 10)
		}
		return out
	}

	// -0 and 0 share a map key and both format as "0".
	seen := make(map[float64]bool, len(c.f))
	uniq := make([]float64, 0, len(c.f))
	for _, v := range c.f {
		if math.IsNaN(v) || seen[v] {
			continue
		}
		seen[v] = true
		uniq = append(uniq, v)
	}
	sort.Float64s(uniq)
	out := make([]string, len(uniq))
	for k, v := range uniq {
		out[k] = FormatFloat(v)
	}
	return out
}
