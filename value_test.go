// -*- tab-width:2 -*-

package prob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSeriesEquivalent checks the tolerance comparison ignores names
// and respects lengths
func TestSeriesEquivalent(t *testing.T) {
	a := NewSeries("A", []float64{1, 2, 3})
	b := NewSeries("B", []float64{1, 2, 3 + 1e-13})

	require.True(t, SeriesEquivalent(a, b, 1e-12))
	require.False(t, SeriesEquivalent(a, b, 1e-14))

	short := NewSeries("C", []float64{1, 2})
	require.False(t, SeriesEquivalent(a, short, 1e-12))
}

// TestNewTableShapeChecks checks ragged columns are rejected
func TestNewTableShapeChecks(t *testing.T) {
	_, err := NewTable([]string{"a"}, [][]float64{{1}, {2}})
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewTable([]string{"a", "b"}, [][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrShapeMismatch)

	tab, err := NewTable([]string{"a", "b"}, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, 2, tab.Rows())

	col, err := tab.Column("b")
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, col.Vals)

	_, err = tab.Column("c")
	require.ErrorIs(t, err, ErrNameNotFound)
}
