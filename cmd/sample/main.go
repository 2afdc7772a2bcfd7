// -*- tab-width:2 -*-

// Package main demonstrates the probability toolkit: a discrete
// joint-table walkthrough of the classic boxes-and-fruit problem, and
// a sampled Bayes-rule posterior over beta/dirichlet draws.
package main

import (
	"fmt"
	"os"

	count "github.com/jayalane/go-counter"
	ll "github.com/jayalane/go-lll"
	prob "github.com/jayalane/go-prob"
	cli "github.com/urfave/cli/v2"
)

const defaultSamples = 10_000

func main() {
	ll.SetWriter(os.Stdout)
	count.InitCounters()

	prob.Init()

	app := &cli.App{
		Name:  "sample",
		Usage: "probability toolkit demos",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "samples",
				Value: defaultSamples,
				Usage: "number of samples per distribution",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "boxes",
				Usage:  "joint, marginal and conditional tables for the boxes-and-fruit problem",
				Action: runBoxes,
			},
			{
				Name:   "bayes",
				Usage:  "sampled posterior over die choices from roll counts",
				Action: runBayes,
			},
			{
				Name:   "graph",
				Usage:  "shared-sample arithmetic on the calculation graph",
				Action: runGraph,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	count.LogCounters()
}

// boxesObservations is the classic two-box fruit setup: the red box
// holds one apple and seven oranges, the blue box four apples.
func boxesObservations() [][]string {
	var obs [][]string

	obs = append(obs, []string{"red", "apple"})
	for i := 0; i < 7; i++ {
		obs = append(obs, []string{"red", "orange"})
	}

	for i := 0; i < 4; i++ {
		obs = append(obs, []string{"blue", "apple"})
	}

	return obs
}

func runBoxes(_ *cli.Context) error {
	joint, err := prob.DiscreteFromObservations(
		[]string{"box", "fruit"}, boxesObservations(), nil)
	if err != nil {
		return err
	}

	fmt.Println(joint.Render())

	box, err := joint.Marginal("box")
	if err != nil {
		return err
	}

	fmt.Println(box.Render())

	fruitGivenBox, err := joint.Conditional("box")
	if err != nil {
		return err
	}

	fmt.Println(fruitGivenBox.Render())

	boxGivenOrange, err := joint.Given(prob.Eq("fruit", "orange"))
	if err != nil {
		return err
	}

	fmt.Println(boxGivenOrange.Render())

	pBlue, err := joint.P(prob.Eq("box", "blue"))
	if err != nil {
		return err
	}

	fmt.Printf("P(box=blue) = %v\n", pBlue)

	pBlueGivenOrange, err := boxGivenOrange.P(prob.Eq("box", "blue"))
	if err != nil {
		return err
	}

	fmt.Printf("P(box=blue | fruit=orange) = %v\n", pBlueGivenOrange)

	return nil
}

// dieRollCounts records how often each face range came up per die, as
// if we watched rolls of a d4, d6 and d8 and noted low/mid/high.
func dieRollCounts() map[string][]float64 {
	return map[string][]float64{
		"low":  {12, 9, 6},
		"mid":  {8, 9, 7},
		"high": {0, 2, 7},
	}
}

func runBayes(c *cli.Context) error {
	rule, err := prob.BayesRuleFromCounts(
		[]string{"d4", "d6", "d8"}, dieRollCounts())
	if err != nil {
		return err
	}

	posteriors, err := rule.PosteriorSamples(c.Int("samples"))
	if err != nil {
		return err
	}

	for name, t := range posteriors {
		fmt.Printf("posterior given %q:\n%s\n", name, prob.SummarizeTable(t))
	}

	return nil
}

func runGraph(c *cli.Context) error {
	n := c.Int("samples")

	// One beta used twice: the graph samples it once per context, so
	// b - b is exactly zero everywhere.
	b := prob.SampleOf(prob.Beta{Alpha: 2, Beta: 3})
	diff := b.Sub(b)

	v, err := diff.Output(n)
	if err != nil {
		return err
	}

	s, ok := v.(*prob.Series)
	if !ok {
		return prob.ErrTypeMismatch
	}

	fmt.Printf("%s:\n%s\n", diff.Name(), prob.SummarizeSeries(s))

	// Complement round-trip on a shared context.
	u := prob.SampleOf(prob.Uniform{Min: 0, Max: 1})
	round := u.Complement().Complement()

	rv, err := round.Output(n)
	if err != nil {
		return err
	}

	rs, ok := rv.(*prob.Series)
	if !ok {
		return prob.ErrTypeMismatch
	}

	fmt.Printf("%s:\n%s\n", round.Name(), prob.SummarizeSeries(rs))

	return nil
}
