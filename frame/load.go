// SPDX-License-Identifier: MIT

package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadCSV reads a header row followed by data rows. Each column's kind is
// inferred from its cells, trying int, then float, then bool, then string.
// Empty and "NA" cells are missing values: they turn an int column into a
// float column holding NaN, and are kept verbatim in string columns.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrFormat)
	}

	header := records[0]
	cells := make([][]string, len(header))
	for _, rec := range records[1:] {
		for k := range header {
			cells[k] = append(cells[k], rec[k])
		}
	}
	cols := make([]*Column, len(header))
	for k, name := range header {
		cols[k] = inferColumn(strings.TrimSpace(name), cells[k], false)
	}
	return New(cols...)
}

// ReadYAML reads a mapping from column name to a sequence of scalars, keeping
// the mapping's key order. Scalars tagged as strings (quoted values) force a
// string column; null is a missing value.
func ReadYAML(r io.Reader) (*Frame, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of columns", ErrFormat)
	}

	m := doc.Content[0]
	cols := make([]*Column, 0, len(m.Content)/2)
	for k := 0; k+1 < len(m.Content); k += 2 {
		key, seq := m.Content[k], m.Content[k+1]
		if seq.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%w: column %q at line %d is not a sequence", ErrFormat, key.Value, seq.Line)
		}
		cells := make([]string, len(seq.Content))
		forceString := false
		for j, item := range seq.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: column %q at line %d holds a non-scalar", ErrFormat, key.Value, item.Line)
			}
			switch item.ShortTag() {
			case "!!null":
				cells[j] = ""
			case "!!str":
				forceString = true
				cells[j] = item.Value
			default:
				cells[j] = item.Value
			}
		}
		cols = append(cols, inferColumn(key.Value, cells, forceString))
	}
	return New(cols...)
}

// Load reads a .csv, .yaml or .yml file.
func Load(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".yaml", ".yml":
		return ReadYAML(f)
	}
	return nil, fmt.Errorf("%w: unknown data file extension %q", ErrFormat, filepath.Ext(path))
}

func isMissing(s string) bool {
	return s == "" || s == "NA"
}

func inferColumn(name string, cells []string, forceString bool) *Column {
	if forceString {
		return StringColumn(name, cells)
	}

	present := 0
	ints, floats, bools := true, true, true
	for _, s := range cells {
		if isMissing(s) {
			continue
		}
		present++
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			ints = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			floats = false
		}
		if _, ok := parseBool(s); !ok {
			bools = false
		}
	}
	missing := present < len(cells)

	switch {
	case present == 0:
		return StringColumn(name, cells)
	case ints && !missing:
		v := make([]int64, len(cells))
		for k, s := range cells {
			v[k], _ = strconv.ParseInt(s, 10, 64)
		}
		return IntColumn(name, v)
	case floats:
		v := make([]float64, len(cells))
		for k, s := range cells {
			if isMissing(s) {
				v[k] = math.NaN()
				continue
			}
			v[k], _ = strconv.ParseFloat(s, 64)
		}
		return FloatColumn(name, v)
	case bools && !missing:
		v := make([]bool, len(cells))
		for k, s := range cells {
			v[k], _ = parseBool(s)
		}
		return BoolColumn(name, v)
	}
	return StringColumn(name, cells)
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "TRUE", "True":
		return true, true
	case "false", "FALSE", "False":
		return false, true
	}
	return false, false
}
