// -*- tab-width:2 -*-

package prob

// Discrete is a joint probability table over named categorical
// variables. Every transformation returns a new table; nothing is
// mutated in place.

import (
	"fmt"
	"sort"
	"strings"

	count "github.com/jayalane/go-counter"
)

// Cell is one row of a probability table: states aligned with the
// table's variables, and the probability (or count) of that
// combination.
type Cell struct {
	States []string
	P      float64
}

// Discrete is a joint distribution over one or more named categorical
// variables. For a true joint distribution the probabilities sum to 1.
type Discrete struct {
	vars   []string
	states map[string][]string
	keys   [][]string
	probs  []float64
	index  map[string]int
}

const keySep = "\x1f"

func keyString(key []string) string {
	return strings.Join(key, keySep)
}

// newDiscrete assembles a table from cells, summing duplicate keys and
// optionally normalizing to total mass 1.
func newDiscrete(
	vars []string,
	cells []Cell,
	states map[string][]string,
	normalize bool,
) (*Discrete, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: no variables", ErrUnknownVariable)
	}

	d := &Discrete{
		vars:  append([]string(nil), vars...),
		index: make(map[string]int),
	}

	total := 0.0

	for _, cell := range cells {
		if len(cell.States) != len(vars) {
			return nil, fmt.Errorf(
				"%w: cell has %d states for %d variables",
				ErrShapeMismatch, len(cell.States), len(vars))
		}

		ks := keyString(cell.States)

		if i, ok := d.index[ks]; ok {
			d.probs[i] += cell.P
		} else {
			d.index[ks] = len(d.keys)
			d.keys = append(d.keys, append([]string(nil), cell.States...))
			d.probs = append(d.probs, cell.P)
		}

		total += cell.P
	}

	if normalize {
		if total == 0 {
			return nil, fmt.Errorf("%w: nothing to normalize", ErrZeroProbability)
		}

		for i := range d.probs {
			d.probs[i] /= total
		}
	}

	if states == nil {
		states = make(map[string][]string)

		for v, name := range vars {
			seen := make(map[string]bool)

			for _, key := range d.keys {
				seen[key[v]] = true
			}

			list := make([]string, 0, len(seen))
			for s := range seen {
				list = append(list, s)
			}

			sort.Slice(list, func(i, j int) bool {
				return compareStates(list[i], list[j]) < 0
			})

			states[name] = list
		}
	} else {
		if len(states) != len(vars) {
			return nil, fmt.Errorf(
				"%w: state names do not match variable names", ErrUnknownVariable)
		}

		for _, name := range vars {
			if _, ok := states[name]; !ok {
				return nil, fmt.Errorf("%w: no states for %q",
					ErrUnknownVariable, name)
			}
		}

		copied := make(map[string][]string, len(states))
		for name, list := range states {
			copied[name] = append([]string(nil), list...)
		}

		states = copied
	}

	d.states = states
	d.sortRows()

	return d, nil
}

// sortRows keeps the row order deterministic.
func (d *Discrete) sortRows() {
	order := make([]int, len(d.keys))
	for i := range order {
		order[i] = i
	}

	sort.Slice(order, func(a, b int) bool {
		ka, kb := d.keys[order[a]], d.keys[order[b]]
		for i := range ka {
			if c := compareStates(ka[i], kb[i]); c != 0 {
				return c < 0
			}
		}

		return false
	})

	keys := make([][]string, len(d.keys))
	probs := make([]float64, len(d.probs))
	index := make(map[string]int, len(d.keys))

	for i, o := range order {
		keys[i] = d.keys[o]
		probs[i] = d.probs[o]
		index[keyString(keys[i])] = i
	}

	d.keys, d.probs, d.index = keys, probs, index
}

// DiscreteFromCounts returns a new joint distribution from counts of
// variable value combinations; counts are normalized to probabilities.
func DiscreteFromCounts(
	variables []string,
	counts []Cell,
	states map[string][]string,
) (*Discrete, error) {
	return newDiscrete(variables, counts, states, true)
}

// DiscreteFromProbs returns a new joint distribution from explicit
// probabilities. The probabilities are normalized, so slightly
// unnormalized inputs are accepted.
func DiscreteFromProbs(
	variables []string,
	probs []Cell,
	states map[string][]string,
) (*Discrete, error) {
	return newDiscrete(variables, probs, states, true)
}

// DiscreteFromObservations returns a new joint distribution from raw
// observations, one row of states per observation.
func DiscreteFromObservations(
	variables []string,
	observations [][]string,
	states map[string][]string,
) (*Discrete, error) {
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: no observations", ErrZeroProbability)
	}

	cells := make([]Cell, len(observations))
	for i, obs := range observations {
		cells[i] = Cell{States: obs, P: 1}
	}

	return newDiscrete(variables, cells, states, true)
}

// BinaryDiscrete creates a single-variable binary distribution with
// P(variable = 1) = p.
func BinaryDiscrete(p float64, variable string) (*Discrete, error) {
	return DiscreteFromProbs(
		[]string{variable},
		[]Cell{
			{States: []string{"0"}, P: 1 - p},
			{States: []string{"1"}, P: p},
		},
		nil,
	)
}

// Variables returns the variable names in table order.
func (d *Discrete) Variables() []string {
	return append([]string(nil), d.vars...)
}

// States returns the possible states of one variable.
func (d *Discrete) States(variable string) []string {
	return append([]string(nil), d.states[variable]...)
}

// Cells returns the table rows in deterministic order.
func (d *Discrete) Cells() []Cell {
	out := make([]Cell, len(d.keys))
	for i, key := range d.keys {
		out[i] = Cell{States: append([]string(nil), key...), P: d.probs[i]}
	}

	return out
}

// String renders the distribution symbolically, e.g. "p(box,fruit)".
func (d *Discrete) String() string {
	return "p(" + strings.Join(d.vars, ",") + ")"
}

// validateFilters checks every filter names a known variable.
func (d *Discrete) validateFilters(filters []Filter) error {
	for _, f := range filters {
		if err := f.validate(d.vars); err != nil {
			return err
		}
	}

	return nil
}

// rowMatches reports whether row i passes all filters.
func (d *Discrete) rowMatches(i int, filters []Filter) bool {
	for _, f := range filters {
		for v, name := range d.vars {
			if name == f.Var && !f.matches(d.keys[i][v]) {
				return false
			}
		}
	}

	return true
}

// P returns the total probability of the combinations matching all
// the filters, e.g. P(box=red, fruit!=apple).
func (d *Discrete) P(filters ...Filter) (float64, error) {
	if err := d.validateFilters(filters); err != nil {
		return 0, err
	}

	total := 0.0

	for i := range d.keys {
		if d.rowMatches(i, filters) {
			total += d.probs[i]
		}
	}

	return total, nil
}

// Given filters the table to rows matching all the filters and
// renormalizes what is left to sum to 1. Variables fixed by an exact
// (Eq) filter drop out of the result; comparator-filtered variables
// stay. Filtering away all mass is an error rather than a silent
// NaN table.
func (d *Discrete) Given(filters ...Filter) (*Discrete, error) {
	if err := d.validateFilters(filters); err != nil {
		return nil, err
	}

	count.Incr("discrete_given")

	dropped := make(map[string]bool)

	for _, f := range filters {
		if f.dropsVar() {
			dropped[f.Var] = true
		}
	}

	keep := make([]int, 0, len(d.vars))
	keptVars := make([]string, 0, len(d.vars))

	for v, name := range d.vars {
		if !dropped[name] {
			keep = append(keep, v)
			keptVars = append(keptVars, name)
		}
	}

	if len(keptVars) == 0 {
		return nil, fmt.Errorf(
			"%w: all variables fixed, nothing left to distribute over",
			ErrUnknownVariable)
	}

	var cells []Cell

	for i := range d.keys {
		if !d.rowMatches(i, filters) {
			continue
		}

		key := make([]string, len(keep))
		for j, v := range keep {
			key[j] = d.keys[i][v]
		}

		cells = append(cells, Cell{States: key, P: d.probs[i]})
	}

	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: filters match no rows", ErrZeroProbability)
	}

	states := make(map[string][]string, len(keptVars))
	for _, name := range keptVars {
		states[name] = append([]string(nil), d.states[name]...)
	}

	return newDiscrete(keptVars, cells, states, true)
}

// Marginal sums out every variable not in keep, leaving the marginal
// distribution over keep. Requires a non-empty strict subset of the
// joint variables.
func (d *Discrete) Marginal(keep ...string) (*Discrete, error) {
	if len(keep) == 0 {
		return nil, fmt.Errorf("%w: no variables to keep", ErrUnknownVariable)
	}

	if len(keep) >= len(d.vars) {
		return nil, fmt.Errorf(
			"%w: marginal must drop at least one of %v", ErrUnknownVariable, d.vars)
	}

	positions := make([]int, len(keep))
	seen := make(map[string]bool, len(keep))

	for j, name := range keep {
		if seen[name] {
			return nil, fmt.Errorf("%w: %q listed twice", ErrUnknownVariable, name)
		}

		seen[name] = true

		found := -1

		for v, varName := range d.vars {
			if varName == name {
				found = v

				break
			}
		}

		if found < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}

		positions[j] = found
	}

	count.Incr("discrete_marginal")

	cells := make([]Cell, 0, len(d.keys))

	for i := range d.keys {
		key := make([]string, len(positions))
		for j, v := range positions {
			key[j] = d.keys[i][v]
		}

		cells = append(cells, Cell{States: key, P: d.probs[i]})
	}

	states := make(map[string][]string, len(keep))
	for _, name := range keep {
		states[name] = append([]string(nil), d.states[name]...)
	}

	return newDiscrete(keep, cells, states, false)
}

// Conditional re-expresses the table as P(rest | cond) for every
// combination of the conditioning variables at once: within each group
// sharing one combination of cond values, probabilities are divided by
// the group total.
func (d *Discrete) Conditional(cond ...string) (*Conditional, error) {
	if len(cond) == 0 {
		return nil, fmt.Errorf("%w: no conditioning variables", ErrUnknownVariable)
	}

	condSet := make(map[string]bool, len(cond))

	for _, name := range cond {
		found := false

		for _, varName := range d.vars {
			if varName == name {
				found = true

				break
			}
		}

		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}

		condSet[name] = true
	}

	jointVars := make([]string, 0, len(d.vars)-len(cond))
	for _, name := range d.vars {
		if !condSet[name] {
			jointVars = append(jointVars, name)
		}
	}

	if len(jointVars) == 0 {
		return nil, fmt.Errorf(
			"%w: conditioning on every variable", ErrUnknownVariable)
	}

	count.Incr("discrete_conditional")

	// group totals per combination of conditioning values
	condPos := make([]int, len(cond))

	for j, name := range cond {
		for v, varName := range d.vars {
			if varName == name {
				condPos[j] = v
			}
		}
	}

	jointPos := make([]int, len(jointVars))

	for j, name := range jointVars {
		for v, varName := range d.vars {
			if varName == name {
				jointPos[j] = v
			}
		}
	}

	groupTotals := make(map[string]float64)

	for i := range d.keys {
		group := make([]string, len(condPos))
		for j, v := range condPos {
			group[j] = d.keys[i][v]
		}

		groupTotals[keyString(group)] += d.probs[i]
	}

	cells := make([]Cell, 0, len(d.keys))

	for i := range d.keys {
		key := make([]string, 0, len(d.vars))

		for _, v := range jointPos {
			key = append(key, d.keys[i][v])
		}

		group := make([]string, len(condPos))
		for j, v := range condPos {
			group[j] = d.keys[i][v]
		}

		total := groupTotals[keyString(group)]
		if total == 0 {
			return nil, fmt.Errorf(
				"%w: conditioning group %v", ErrZeroProbability, group)
		}

		key = append(key, group...)
		cells = append(cells, Cell{States: key, P: d.probs[i] / total})
	}

	states := make(map[string][]string, len(d.vars))
	for _, name := range d.vars {
		states[name] = append([]string(nil), d.states[name]...)
	}

	return ConditionalFromProbs(jointVars, cond, cells, states)
}

// Mul multiplies two joint distributions over disjoint variable sets
// into their product distribution.
func (d *Discrete) Mul(other *Discrete) (*Discrete, error) {
	for _, name := range other.vars {
		for _, varName := range d.vars {
			if name == varName {
				return nil, fmt.Errorf(
					"%w: variable %q on both sides", ErrShapeMismatch, name)
			}
		}
	}

	count.Incr("discrete_mul")

	vars := append(append([]string(nil), d.vars...), other.vars...)
	cells := make([]Cell, 0, len(d.keys)*len(other.keys))

	for i := range d.keys {
		for j := range other.keys {
			key := append(append([]string(nil), d.keys[i]...), other.keys[j]...)
			cells = append(cells, Cell{States: key, P: d.probs[i] * other.probs[j]})
		}
	}

	states := make(map[string][]string, len(vars))
	for _, name := range d.vars {
		states[name] = append([]string(nil), d.states[name]...)
	}

	for _, name := range other.vars {
		states[name] = append([]string(nil), other.states[name]...)
	}

	return newDiscrete(vars, cells, states, false)
}

// MulConditional applies the chain rule with a conditional table:
// P(joint) = P(subset | rest) * P(rest).
func (d *Discrete) MulConditional(c *Conditional) (*Discrete, error) {
	return c.MulDiscrete(d)
}

// Div divides this distribution by another over a subset of its
// variables, aligning rows on the shared variables. A zero denominator
// is an error rather than a silent Inf.
func (d *Discrete) Div(other *Discrete) (*Discrete, error) {
	positions := make([]int, len(other.vars))

	for j, name := range other.vars {
		found := -1

		for v, varName := range d.vars {
			if varName == name {
				found = v

				break
			}
		}

		if found < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}

		positions[j] = found
	}

	cells := make([]Cell, 0, len(d.keys))

	for i := range d.keys {
		key := make([]string, len(positions))
		for j, v := range positions {
			key[j] = d.keys[i][v]
		}

		di, ok := other.index[keyString(key)]
		if !ok || other.probs[di] == 0 {
			return nil, fmt.Errorf("%w: denominator for %v", ErrZeroProbability, key)
		}

		cells = append(cells, Cell{
			States: append([]string(nil), d.keys[i]...),
			P:      d.probs[i] / other.probs[di],
		})
	}

	states := make(map[string][]string, len(d.vars))
	for _, name := range d.vars {
		states[name] = append([]string(nil), d.states[name]...)
	}

	return newDiscrete(d.vars, cells, states, false)
}
