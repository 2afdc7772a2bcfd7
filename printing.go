// -*- tab-width:2 -*-

package prob

// Human-readable rendering of probability tables and sample
// summaries, for REPL use and the demo commands.

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"
)

// Render formats the joint table with one row per state combination
// and a total row at the bottom.
func (d *Discrete) Render() string {
	w := table.NewWriter()
	w.SetTitle(d.String())
	w.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(d.vars)+1)
	for _, name := range d.vars {
		header = append(header, name)
	}

	w.AppendHeader(append(header, "p"))

	total := 0.0

	for i, key := range d.keys {
		row := make(table.Row, 0, len(key)+1)
		for _, s := range key {
			row = append(row, s)
		}

		w.AppendRow(append(row, formatScalar(d.probs[i])))
		total += d.probs[i]
	}

	footer := make(table.Row, len(d.vars)+1)
	for i := range footer {
		footer[i] = ""
	}

	footer[0] = "total"
	footer[len(footer)-1] = formatScalar(total)
	w.AppendFooter(footer)

	return w.Render()
}

// Render formats the conditional table, joint variables first, then
// the conditioning variables.
func (c *Conditional) Render() string {
	w := table.NewWriter()
	w.SetTitle(c.String())
	w.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(c.keys[0])+1)
	for _, name := range c.jointVars {
		header = append(header, name)
	}

	for _, name := range c.condVars {
		header = append(header, name+" (given)")
	}

	w.AppendHeader(append(header, "p"))

	for i, key := range c.keys {
		row := make(table.Row, 0, len(key)+1)
		for _, s := range key {
			row = append(row, s)
		}

		w.AppendRow(append(row, formatScalar(c.probs[i])))
	}

	return w.Render()
}

// SummarizeSeries formats the summary statistics of one sample
// series: mean, standard deviation, and the 2.5/50/97.5 percent
// quantiles.
func SummarizeSeries(s *Series) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"name", "mean", "std", "2.5%", "50%", "97.5%"})
	w.AppendRow(summaryRow(s.Name, s.Vals))

	return w.Render()
}

// SummarizeTable formats the per-column summary statistics of a
// sample table.
func SummarizeTable(t *Table) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"column", "mean", "std", "2.5%", "50%", "97.5%"})

	for i, col := range t.Cols {
		w.AppendRow(summaryRow(col, t.Vals[i]))
	}

	return w.Render()
}

func summaryRow(name string, vals []float64) table.Row {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)

	return table.Row{
		name,
		formatScalar(mean),
		formatScalar(std),
		formatScalar(stat.Quantile(0.025, stat.Empirical, sorted, nil)),
		formatScalar(stat.Quantile(0.5, stat.Empirical, sorted, nil)),
		formatScalar(stat.Quantile(0.975, stat.Empirical, sorted, nil)),
	}
}
