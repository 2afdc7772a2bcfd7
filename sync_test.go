// -*- tab-width:2 -*-

package prob

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// TestSyncContextForms checks the accepted input shapes
func TestSyncContextForms(t *testing.T) {
	x := SampleOf(seededBeta(20))
	y := SampleOf(seededBeta(21))
	z := SampleOf(seededBeta(22))

	ctx, err := SyncContext(x, []*Expr{y}, map[string]*Expr{"z": z})
	require.NoError(t, err)
	require.Same(t, ctx, x.Context())
	require.Same(t, ctx, y.Context())
	require.Same(t, ctx, z.Context())

	_, err = SyncContext(42)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

// TestSyncContextSharesDraws checks that after syncing, one
// distribution feeds both expressions
func TestSyncContextSharesDraws(t *testing.T) {
	b := Beta{Alpha: 2, Beta: 3, Src: rand.NewSource(23)}
	x := SampleOf(b)
	y := SampleOf(b)

	_, err := SyncContext(x, y)
	require.NoError(t, err)

	diff := x.Sub(y)

	v, err := diff.Output(200)
	require.NoError(t, err)

	s, ok := v.(*Series)
	require.True(t, ok)

	for _, val := range s.Vals {
		require.Zero(t, val)
	}
}

// TestMulEach checks broadcasting shares one context across results
func TestMulEach(t *testing.T) {
	e := SampleOf(seededBeta(24))
	items := []*Expr{Const(2), Const(3)}

	results := MulEach(e, items)
	require.Len(t, results, 2)
	require.Same(t, e.Context(), results[0].Context())
	require.Same(t, e.Context(), results[1].Context())

	v0, err := results[0].Output(100)
	require.NoError(t, err)

	v1, err := results[1].Output(100)
	require.NoError(t, err)

	s0, ok := v0.(*Series)
	require.True(t, ok)

	s1, ok := v1.(*Series)
	require.True(t, ok)

	// same draws scaled by 2 and 3
	for i := range s0.Vals {
		require.InDelta(t, s0.Vals[i]/2*3, s1.Vals[i], testTol)
	}
}

// TestDivEachIndependent checks the opt-out keeps contexts separate
func TestDivEachIndependent(t *testing.T) {
	e := SampleOf(seededBeta(25))
	items := []*Expr{Const(2), Const(3)}

	results := DivEachIndependent(e, items)
	require.Len(t, results, 2)
	require.NotSame(t, results[0].Context(), results[1].Context())
}
