// -*- tab-width:2 -*-

package prob

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const (
	testSamples = 500
	testTol     = 1e-12
)

func seededBeta(seed uint64) Beta {
	return Beta{Alpha: 2, Beta: 3, Src: rand.NewSource(seed)}
}

// TestSampleOncePerContext checks the central memoization guarantee:
// one distribution appearing twice in a tree consumes one set of draws,
// so X - X is identically zero
func TestSampleOncePerContext(t *testing.T) {
	x := SampleOf(seededBeta(1))
	diff := x.Sub(x)

	v, err := diff.Output(testSamples)
	require.NoError(t, err)

	s, ok := v.(*Series)
	require.True(t, ok)
	require.Len(t, s.Vals, testSamples)

	for _, val := range s.Vals {
		require.Zero(t, val)
	}
}

// TestSharedSubExpression checks that S + S equals 2 * S on the same
// draws
func TestSharedSubExpression(t *testing.T) {
	s := SampleOf(seededBeta(2))
	sum := s.Add(s)

	v, err := sum.Output(testSamples)
	require.NoError(t, err)

	sumSeries, ok := v.(*Series)
	require.True(t, ok)

	// s shares sum's context now, so this reads the cached draws
	sv, err := s.Output(testSamples)
	require.NoError(t, err)

	base, ok := sv.(*Series)
	require.True(t, ok)

	for i := range base.Vals {
		require.InDelta(t, 2*base.Vals[i], sumSeries.Vals[i], testTol)
	}
}

// TestNameDeterminism checks names are stable across calls and
// order-sensitive
func TestNameDeterminism(t *testing.T) {
	a := Const(2)
	b := Const(3)

	sum := a.Add(b)
	require.Equal(t, "2 + 3", sum.Name())
	require.Equal(t, sum.Name(), sum.Name())

	flipped := Const(3).Add(Const(2))
	require.NotEqual(t, sum.Name(), flipped.Name())
}

// TestNameBracketing checks composite operands get parenthesized
func TestNameBracketing(t *testing.T) {
	inner := Const(2).Add(Const(3))
	outer := inner.Mul(Const(4))
	require.Equal(t, "(2 + 3) * 4", outer.Name())

	b := Beta{Alpha: 2, Beta: 3}
	e := SampleOf(b).Div(Const(2))
	require.Equal(t, "Beta(2, 3) / 2", e.Name())

	comp := SampleOf(b).Complement()
	require.Equal(t, "1 - Beta(2, 3)", comp.Name())
}

// TestComplementRoundTrip checks 1 - (1 - D) returns D's own samples
func TestComplementRoundTrip(t *testing.T) {
	u := SampleOf(Uniform{Min: 0, Max: 1, Src: rand.NewSource(3)})
	round := u.Complement().Complement()

	v, err := round.Output(testSamples)
	require.NoError(t, err)

	rs, ok := v.(*Series)
	require.True(t, ok)

	uv, err := u.Output(testSamples)
	require.NoError(t, err)

	us, ok := uv.(*Series)
	require.True(t, ok)
	require.True(t, SeriesEquivalent(rs, us, testTol))
}

// TestScalarArithmetic checks constant folding through the graph
func TestScalarArithmetic(t *testing.T) {
	v, err := Const(10).Div(Const(4)).Output(1)
	require.NoError(t, err)
	require.Equal(t, Scalar(2.5), v)

	v, err = Const(10).Sub(Const(4)).Output(1)
	require.NoError(t, err)
	require.Equal(t, Scalar(6), v)
}

// TestTableSumIsOne checks sampling a Dirichlet into a table and
// summing rows gives ones
func TestTableSumIsOne(t *testing.T) {
	d := Dirichlet{
		Alpha: []float64{1, 2, 3},
		Names: []string{"a", "b", "c"},
		Src:   rand.NewSource(4),
	}

	total := SampleOfTable(d).Sum()

	v, err := total.Output(testSamples)
	require.NoError(t, err)

	s, ok := v.(*Series)
	require.True(t, ok)
	require.Len(t, s.Vals, testSamples)

	for _, val := range s.Vals {
		require.InDelta(t, 1.0, val, 1e-9)
	}
}

// TestArrayOperations checks min/max/mean/median over mixed inputs
func TestArrayOperations(t *testing.T) {
	e, err := MinOf(3, 1.5, 2)
	require.NoError(t, err)

	v, err := e.Output(1)
	require.NoError(t, err)
	require.Equal(t, Scalar(1.5), v)

	e, err = MaxOf(3, 1.5, 2)
	require.NoError(t, err)

	v, err = e.Output(1)
	require.NoError(t, err)
	require.Equal(t, Scalar(3), v)

	e, err = MeanOf(1, 2, 3)
	require.NoError(t, err)

	v, err = e.Output(1)
	require.NoError(t, err)
	require.Equal(t, Scalar(2), v)

	e, err = MedianOf(1, 2, 3, 4)
	require.NoError(t, err)

	v, err = e.Output(1)
	require.NoError(t, err)
	require.Equal(t, Scalar(2.5), v)
}

// TestArrayBroadcast checks a scalar floor applied against samples
func TestArrayBroadcast(t *testing.T) {
	u := SampleOf(Uniform{Min: 0, Max: 1, Src: rand.NewSource(5)})

	e, err := MaxOf(u, 0.5)
	require.NoError(t, err)

	v, err := e.Output(testSamples)
	require.NoError(t, err)

	s, ok := v.(*Series)
	require.True(t, ok)

	for _, val := range s.Vals {
		require.GreaterOrEqual(t, val, 0.5)
	}
}

// TestArrayContextMismatch checks pre-built inputs from two different
// contexts are rejected
func TestArrayContextMismatch(t *testing.T) {
	x := SampleOf(seededBeta(6))
	y := SampleOf(seededBeta(7))

	_, err := MinOf(x, y)
	require.ErrorIs(t, err, ErrContextMismatch)

	// after syncing, the same inputs are fine
	_, err = SyncContext(x, y)
	require.NoError(t, err)

	_, err = MinOf(x, y)
	require.NoError(t, err)
}

// TestNewExpr checks the accepted leaf input types
func TestNewExpr(t *testing.T) {
	e, err := NewExpr(2.5)
	require.NoError(t, err)
	require.Equal(t, "2.5", e.Name())

	e, err = NewExpr(3)
	require.NoError(t, err)
	require.Equal(t, "3", e.Name())

	e, err = NewExpr(Beta{Alpha: 1, Beta: 1})
	require.NoError(t, err)
	require.Equal(t, "Beta(1, 1)", e.Name())

	_, err = NewExpr("nope")
	require.ErrorIs(t, err, ErrTypeMismatch)
}
