// -*- tab-width:2 -*-

package prob

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// TestDistNames checks the name strings that act as memoization
// fingerprints
func TestDistNames(t *testing.T) {
	require.Equal(t, "Beta(2, 3)", Beta{Alpha: 2, Beta: 3}.String())
	require.Equal(t, "Gamma(1, 0.5)", Gamma{Alpha: 1, Beta: 0.5}.String())
	require.Equal(t, "Normal(0, 1)", Normal{Mu: 0, Sigma: 1}.String())
	require.Equal(t, "Uniform(0, 10)", Uniform{Min: 0, Max: 10}.String())
	require.Equal(t, "Exponential(2)", Exponential{Rate: 2}.String())
	require.Equal(t, "Poisson(4)", Poisson{Lambda: 4}.String())
	require.Equal(t, "Dirichlet(1, 2, 3)",
		Dirichlet{Alpha: []float64{1, 2, 3}}.String())
}

// TestSeededDraws checks two identically seeded distributions draw the
// same samples
func TestSeededDraws(t *testing.T) {
	a := Beta{Alpha: 2, Beta: 3, Src: rand.NewSource(42)}.Rvs(200)
	b := Beta{Alpha: 2, Beta: 3, Src: rand.NewSource(42)}.Rvs(200)

	require.Equal(t, a.Name, b.Name)
	require.Equal(t, a.Vals, b.Vals)
}

// TestDrawRanges checks draws land in each distribution's support
func TestDrawRanges(t *testing.T) {
	const n = 500

	u := Uniform{Min: 2, Max: 5, Src: rand.NewSource(1)}.Rvs(n)
	require.Len(t, u.Vals, n)

	for _, v := range u.Vals {
		require.GreaterOrEqual(t, v, 2.0)
		require.Less(t, v, 5.0)
	}

	b := Beta{Alpha: 2, Beta: 3, Src: rand.NewSource(2)}.Rvs(n)
	for _, v := range b.Vals {
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}

	e := Exponential{Rate: 1, Src: rand.NewSource(3)}.Rvs(n)
	for _, v := range e.Vals {
		require.GreaterOrEqual(t, v, 0.0)
	}
}

// TestDirichletTable checks column naming and that every sampled row
// sums to one
func TestDirichletTable(t *testing.T) {
	const n = 200

	d := Dirichlet{
		Alpha: []float64{2, 3, 4},
		Names: []string{"a", "b", "c"},
		Src:   rand.NewSource(9),
	}

	tab := d.RvsTable(n)
	require.Equal(t, []string{
		"Dirichlet(2, 3, 4)[a]",
		"Dirichlet(2, 3, 4)[b]",
		"Dirichlet(2, 3, 4)[c]",
	}, tab.Cols)
	require.Equal(t, n, tab.Rows())

	for i := 0; i < n; i++ {
		total := 0.0
		for c := range tab.Cols {
			total += tab.Vals[c][i]
		}

		require.InDelta(t, 1.0, total, 1e-9)
	}

	// default column names without Names
	anon := Dirichlet{Alpha: []float64{1, 1}, Src: rand.NewSource(10)}
	atab := anon.RvsTable(1)
	require.Equal(t,
		[]string{"Dirichlet(1, 1)[x1]", "Dirichlet(1, 1)[x2]"}, atab.Cols)
}
