// -*- tab-width:2 -*-

package prob

// This file has the distributions and the interfaces the calculation
// graph uses to sample them

import (
	"fmt"
	"strings"

	count "github.com/jayalane/go-counter"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// Dist is a univariate distribution the calculation graph can sample.
// String() must be stable across calls and depend only on construction
// parameters: it is the memoization fingerprint, so a drifting name
// would break the sample-once guarantee.
type Dist interface {
	fmt.Stringer
	Rvs(n int) *Series
}

// TableDist is a multivariate distribution sampled into a Table with
// one column per dimension.
type TableDist interface {
	fmt.Stringer
	RvsTable(n int) *Table
}

// Beta is a Beta(alpha, beta) distribution.
type Beta struct {
	Alpha float64
	Beta  float64
	Src   rand.Source
}

// String returns the stable name of the distribution.
func (b Beta) String() string {
	return fmt.Sprintf("Beta(%s, %s)",
		formatScalar(b.Alpha), formatScalar(b.Beta))
}

// Rvs draws n samples.
func (b Beta) Rvs(n int) *Series {
	d := distuv.Beta{Alpha: b.Alpha, Beta: b.Beta, Src: b.Src}

	return drawSeries(b.String(), n, d.Rand)
}

// Gamma is a Gamma(alpha, beta) distribution with rate parameter beta.
type Gamma struct {
	Alpha float64
	Beta  float64
	Src   rand.Source
}

// String returns the stable name of the distribution.
func (g Gamma) String() string {
	return fmt.Sprintf("Gamma(%s, %s)",
		formatScalar(g.Alpha), formatScalar(g.Beta))
}

// Rvs draws n samples.
func (g Gamma) Rvs(n int) *Series {
	d := distuv.Gamma{Alpha: g.Alpha, Beta: g.Beta, Src: g.Src}

	return drawSeries(g.String(), n, d.Rand)
}

// Normal is a Normal(mu, sigma) distribution.
type Normal struct {
	Mu    float64
	Sigma float64
	Src   rand.Source
}

// String returns the stable name of the distribution.
func (nd Normal) String() string {
	return fmt.Sprintf("Normal(%s, %s)",
		formatScalar(nd.Mu), formatScalar(nd.Sigma))
}

// Rvs draws n samples.
func (nd Normal) Rvs(n int) *Series {
	d := distuv.Normal{Mu: nd.Mu, Sigma: nd.Sigma, Src: nd.Src}

	return drawSeries(nd.String(), n, d.Rand)
}

// Uniform is a Uniform(min, max) distribution.
type Uniform struct {
	Min float64
	Max float64
	Src rand.Source
}

// String returns the stable name of the distribution.
func (u Uniform) String() string {
	return fmt.Sprintf("Uniform(%s, %s)",
		formatScalar(u.Min), formatScalar(u.Max))
}

// Rvs draws n samples.
func (u Uniform) Rvs(n int) *Series {
	d := distuv.Uniform{Min: u.Min, Max: u.Max, Src: u.Src}

	return drawSeries(u.String(), n, d.Rand)
}

// Exponential is an Exponential(rate) distribution.
type Exponential struct {
	Rate float64
	Src  rand.Source
}

// String returns the stable name of the distribution.
func (e Exponential) String() string {
	return fmt.Sprintf("Exponential(%s)", formatScalar(e.Rate))
}

// Rvs draws n samples.
func (e Exponential) Rvs(n int) *Series {
	d := distuv.Exponential{Rate: e.Rate, Src: e.Src}

	return drawSeries(e.String(), n, d.Rand)
}

// Poisson is a Poisson(lambda) distribution.
type Poisson struct {
	Lambda float64
	Src    rand.Source
}

// String returns the stable name of the distribution.
func (p Poisson) String() string {
	return fmt.Sprintf("Poisson(%s)", formatScalar(p.Lambda))
}

// Rvs draws n samples.
func (p Poisson) Rvs(n int) *Series {
	d := distuv.Poisson{Lambda: p.Lambda, Src: p.Src}

	return drawSeries(p.String(), n, d.Rand)
}

// Dirichlet is a Dirichlet(alpha...) distribution over the named
// categories. If Names is nil the categories are x1..xk.
type Dirichlet struct {
	Alpha []float64
	Names []string
	Src   rand.Source
}

// String returns the stable name of the distribution.
func (d Dirichlet) String() string {
	parts := make([]string, len(d.Alpha))
	for i, a := range d.Alpha {
		parts[i] = formatScalar(a)
	}

	return fmt.Sprintf("Dirichlet(%s)", strings.Join(parts, ", "))
}

// RvsTable draws n samples, one column per category.
func (d Dirichlet) RvsTable(n int) *Table {
	dd := distmv.NewDirichlet(d.Alpha, d.Src)

	k := len(d.Alpha)
	cols := make([]string, k)
	vals := make([][]float64, k)
	name := d.String()

	for i := 0; i < k; i++ {
		if d.Names != nil {
			cols[i] = fmt.Sprintf("%s[%s]", name, d.Names[i])
		} else {
			cols[i] = fmt.Sprintf("%s[x%d]", name, i+1)
		}

		vals[i] = make([]float64, n)
	}

	x := make([]float64, k)

	for j := 0; j < n; j++ {
		dd.Rand(x)

		for i := 0; i < k; i++ {
			vals[i][j] = x[i]
		}
	}

	count.Incr("dist_rvs_table")

	return &Table{Cols: cols, Vals: vals}
}

// drawSeries samples n values from draw into a Series carrying the
// distribution name.
func drawSeries(name string, n int, draw func() float64) *Series {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = draw()
	}

	count.Incr("dist_rvs")

	return &Series{Name: name, Vals: vals}
}
