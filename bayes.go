// -*- tab-width:2 -*-

package prob

// BayesRule composes prior and likelihood through the calculation
// graph. The posterior is product / sum(product): the product node
// appears on both sides of the division, and the shared context
// guarantees both sides consume the same draws.

import (
	"fmt"
)

// Likelihood pairs one observed category with its likelihood
// distribution over the prior's categories.
type Likelihood struct {
	Name string
	Dist TableDist
}

// BayesRule holds a prior over categories and a likelihood per
// observable state.
type BayesRule struct {
	prior       TableDist
	likelihoods []Likelihood
}

// NewBayesRule creates a BayesRule from a prior P(A) and the
// likelihoods P(B=b|A) for each state b of the evidence.
func NewBayesRule(prior TableDist, likelihoods ...Likelihood) *BayesRule {
	return &BayesRule{prior: prior, likelihoods: likelihoods}
}

// BayesRuleFromCounts builds a BayesRule from a table of counts where
// each row is one evidence state and each column one prior category.
// Dirichlets are fit with +1 smoothing.
func BayesRuleFromCounts(
	priorNames []string,
	counts map[string][]float64,
) (*BayesRule, error) {
	k := len(priorNames)
	colSums := make([]float64, k)
	likelihoods := make([]Likelihood, 0, len(counts))

	for name, row := range counts {
		if len(row) != k {
			return nil, fmt.Errorf(
				"%w: row %q has %d counts for %d categories",
				ErrShapeMismatch, name, len(row), k)
		}

		alpha := make([]float64, k)
		for i, c := range row {
			colSums[i] += c
			alpha[i] = 1 + c
		}

		likelihoods = append(likelihoods, Likelihood{
			Name: name,
			Dist: Dirichlet{Alpha: alpha, Names: priorNames},
		})
	}

	priorAlpha := make([]float64, k)
	for i, c := range colSums {
		priorAlpha[i] = 1 + c
	}

	return NewBayesRule(
		Dirichlet{Alpha: priorAlpha, Names: priorNames},
		likelihoods...,
	), nil
}

// Prior returns the prior distribution.
func (b *BayesRule) Prior() TableDist {
	return b.prior
}

// Likelihoods returns the likelihoods in construction order.
func (b *BayesRule) Likelihoods() []Likelihood {
	return b.likelihoods
}

// PosteriorExpr builds the posterior expression P(A|B=b) for one
// evidence state: (prior * likelihood) / sum(prior * likelihood),
// all on one context.
func (b *BayesRule) PosteriorExpr(name string) (*Expr, error) {
	for _, like := range b.likelihoods {
		if like.Name != name {
			continue
		}

		product := SampleOfTable(b.prior).Mul(SampleOfTable(like.Dist))

		return product.Div(product.Sum()), nil
	}

	return nil, fmt.Errorf("%w: no likelihood named %q", ErrNameNotFound, name)
}

// PosteriorSamples draws numSamples posterior samples for every
// evidence state. Each state gets its own context, so states sample
// independently of one another.
func (b *BayesRule) PosteriorSamples(
	numSamples int,
) (map[string]*Table, error) {
	out := make(map[string]*Table, len(b.likelihoods))

	for _, like := range b.likelihoods {
		posterior, err := b.PosteriorExpr(like.Name)
		if err != nil {
			return nil, err
		}

		value, err := posterior.Output(numSamples)
		if err != nil {
			return nil, err
		}

		t, ok := value.(*Table)
		if !ok {
			return nil, fmt.Errorf(
				"%w: posterior for %q is not a table", ErrTypeMismatch, like.Name)
		}

		out[like.Name] = t
	}

	return out, nil
}
