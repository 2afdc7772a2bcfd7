// -*- tab-width:2 -*-

package prob

// This file has the closed set of value shapes that flow through a
// calculation: a scalar, a named vector, or a named-column table.

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

// Value is the closed sum of shapes a calculation can produce:
// Scalar, *Series or *Table. Nothing else implements it.
type Value interface {
	valueShape() string
}

// Scalar is a plain constant value.
type Scalar float64

// Series is a named 1-D vector, usually of samples. Entries are
// positional: entry i of two series in one calculation refers to the
// same sample index i.
type Series struct {
	Name string
	Vals []float64
}

// Table is an ordered set of named, equal-length columns, usually one
// column per category of a multivariate sample.
type Table struct {
	Cols []string
	Vals [][]float64 // column major, Vals[i] goes with Cols[i]
}

func (Scalar) valueShape() string  { return "scalar" }
func (*Series) valueShape() string { return "series" }
func (*Table) valueShape() string  { return "table" }

// NewSeries returns a Series with the given name and values.
func NewSeries(name string, vals []float64) *Series {
	return &Series{Name: name, Vals: vals}
}

// NewTable returns a Table over the given columns. All columns must
// have the same length.
func NewTable(cols []string, vals [][]float64) (*Table, error) {
	if len(cols) != len(vals) {
		return nil, fmt.Errorf("%w: %d column names for %d columns",
			ErrShapeMismatch, len(cols), len(vals))
	}

	for i := 1; i < len(vals); i++ {
		if len(vals[i]) != len(vals[0]) {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				ErrShapeMismatch, cols[i], len(vals[i]), len(vals[0]))
		}
	}

	return &Table{Cols: cols, Vals: vals}, nil
}

// Len returns the number of entries in the Series.
func (s *Series) Len() int {
	return len(s.Vals)
}

// Rows returns the number of rows in the Table.
func (t *Table) Rows() int {
	if len(t.Vals) == 0 {
		return 0
	}

	return len(t.Vals[0])
}

// Column returns the named column as a Series.
func (t *Table) Column(name string) (*Series, error) {
	for i, col := range t.Cols {
		if col == name {
			return &Series{Name: col, Vals: t.Vals[i]}, nil
		}
	}

	return nil, fmt.Errorf("%w: column %q", ErrNameNotFound, name)
}

// formatScalar renders a constant the way calculation names expect;
// the rendering is the memoization fingerprint for value leaves.
func formatScalar(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// SeriesEquivalent reports whether two series hold the same values
// within tol, ignoring names.
func SeriesEquivalent(a, b *Series, tol float64) bool {
	if a.Len() != b.Len() {
		return false
	}

	for i := range a.Vals {
		if !scalar.EqualWithinAbs(a.Vals[i], b.Vals[i], tol) {
			return false
		}
	}

	return true
}
