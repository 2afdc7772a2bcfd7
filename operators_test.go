// -*- tab-width:2 -*-

package prob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOperateScalarSeries checks both orientations of scalar/series
// dispatch and the result labels
func TestOperateScalarSeries(t *testing.T) {
	s := NewSeries("X", []float64{1, 2, 3})

	v, err := opMultiply.operate(Scalar(2), s, false, false)
	require.NoError(t, err)

	out, ok := v.(*Series)
	require.True(t, ok)
	require.Equal(t, "2 * X", out.Name)
	require.Equal(t, []float64{2, 4, 6}, out.Vals)

	v, err = opSubtract.operate(s, Scalar(1), false, false)
	require.NoError(t, err)

	out, ok = v.(*Series)
	require.True(t, ok)
	require.Equal(t, "X - 1", out.Name)
	require.Equal(t, []float64{0, 1, 2}, out.Vals)
}

// TestOperateSeriesSeries checks elementwise combination and length
// mismatch
func TestOperateSeriesSeries(t *testing.T) {
	a := NewSeries("A", []float64{1, 2, 3})
	b := NewSeries("B", []float64{4, 5, 6})

	v, err := opAdd.operate(a, b, false, false)
	require.NoError(t, err)

	out, ok := v.(*Series)
	require.True(t, ok)
	require.Equal(t, "A + B", out.Name)
	require.Equal(t, []float64{5, 7, 9}, out.Vals)

	short := NewSeries("C", []float64{1})
	_, err = opAdd.operate(a, short, false, false)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

// TestOperateBracketedLabels checks composite operands keep their
// parentheses in result labels
func TestOperateBracketedLabels(t *testing.T) {
	a := NewSeries("A + B", []float64{1, 2})
	s := NewSeries("C", []float64{3, 4})

	v, err := opMultiply.operate(a, s, true, false)
	require.NoError(t, err)

	out, ok := v.(*Series)
	require.True(t, ok)
	require.Equal(t, "(A + B) * C", out.Name)
}

// TestOperateSeriesTable checks a series broadcasts down every table
// column
func TestOperateSeriesTable(t *testing.T) {
	s := NewSeries("S", []float64{1, 2})
	tab, err := NewTable(
		[]string{"a", "b"},
		[][]float64{{10, 20}, {30, 40}})
	require.NoError(t, err)

	v, err := opDivide.operate(tab, s, false, false)
	require.NoError(t, err)

	out, ok := v.(*Table)
	require.True(t, ok)
	require.Equal(t, []string{"a / S", "b / S"}, out.Cols)
	require.Equal(t, [][]float64{{10, 10}, {30, 20}}, out.Vals)

	bad := NewSeries("S", []float64{1, 2, 3})
	_, err = opDivide.operate(tab, bad, false, false)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

// TestOperateTableTable checks positional column zip and mismatches
func TestOperateTableTable(t *testing.T) {
	t1, err := NewTable([]string{"a", "b"}, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	t2, err := NewTable([]string{"c", "d"}, [][]float64{{5, 6}, {7, 8}})
	require.NoError(t, err)

	v, err := opMultiply.operate(t1, t2, false, false)
	require.NoError(t, err)

	out, ok := v.(*Table)
	require.True(t, ok)
	require.Equal(t, []string{"a * c", "b * d"}, out.Cols)
	require.Equal(t, [][]float64{{5, 12}, {21, 32}}, out.Vals)

	narrow, err := NewTable([]string{"e"}, [][]float64{{1, 2}})
	require.NoError(t, err)

	_, err = opMultiply.operate(t1, narrow, false, false)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

// TestOperateTypeMismatch checks non-Value-shaped operands are
// rejected
func TestOperateTypeMismatch(t *testing.T) {
	_, err := opAdd.operate(nil, Scalar(1), false, false)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

// TestComplementOperator checks 1 - x over each shape
func TestComplementOperator(t *testing.T) {
	v, err := opComplement.operate(Scalar(0.25))
	require.NoError(t, err)
	require.Equal(t, Scalar(0.75), v)

	s := NewSeries("S", []float64{0, 1})

	v, err = opComplement.operate(s)
	require.NoError(t, err)

	out, ok := v.(*Series)
	require.True(t, ok)
	require.Equal(t, "1 - S", out.Name)
	require.Equal(t, []float64{1, 0}, out.Vals)
}

// TestSumOperator checks row-wise table sums and the type error for
// non-tables
func TestSumOperator(t *testing.T) {
	tab, err := NewTable(
		[]string{"a", "b", "c"},
		[][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	v, err := opSum.operate(tab)
	require.NoError(t, err)

	out, ok := v.(*Series)
	require.True(t, ok)
	require.Equal(t, "sum(a, b, c)", out.Name)
	require.Equal(t, []float64{9, 12}, out.Vals)

	_, err = opSum.operate(NewSeries("S", []float64{1}))
	require.ErrorIs(t, err, ErrTypeMismatch)
}
