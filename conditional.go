// -*- tab-width:2 -*-

package prob

// Conditional is a conditional probability table P(joint | cond):
// within each combination of the conditioning variables, the
// probabilities over the joint variables sum to 1.

import (
	"fmt"
	"strings"

	count "github.com/jayalane/go-counter"
)

// Conditional is a conditional distribution P(joint | cond). Row keys
// hold the joint states followed by the conditioning states.
type Conditional struct {
	jointVars []string
	condVars  []string
	states    map[string][]string
	keys      [][]string
	probs     []float64
	index     map[string]int
}

// ConditionalFromProbs builds P(joint | cond) from cells whose states
// list the joint variables first and the conditioning variables after.
// Probabilities are normalized within each conditioning group, so each
// group's rows sum to 1.
func ConditionalFromProbs(
	jointVars, condVars []string,
	cells []Cell,
	states map[string][]string,
) (*Conditional, error) {
	if len(jointVars) == 0 || len(condVars) == 0 {
		return nil, fmt.Errorf(
			"%w: a conditional needs joint and conditioning variables",
			ErrUnknownVariable)
	}

	for _, name := range condVars {
		if findVar(jointVars, name) >= 0 {
			return nil, fmt.Errorf(
				"%w: %q is both joint and conditioning", ErrUnknownVariable, name)
		}
	}

	allVars := append(append([]string(nil), jointVars...), condVars...)

	// reuse the joint-table machinery for dedup, state derivation and
	// deterministic row order; per-group normalization comes after.
	flat, err := newDiscrete(allVars, cells, states, false)
	if err != nil {
		return nil, err
	}

	c := &Conditional{
		jointVars: append([]string(nil), jointVars...),
		condVars:  append([]string(nil), condVars...),
		states:    flat.states,
		keys:      flat.keys,
		probs:     flat.probs,
		index:     flat.index,
	}

	groupTotals := make(map[string]float64)
	for i := range c.keys {
		groupTotals[keyString(c.condKey(i))] += c.probs[i]
	}

	for i := range c.keys {
		total := groupTotals[keyString(c.condKey(i))]
		if total == 0 {
			return nil, fmt.Errorf(
				"%w: conditioning group %v", ErrZeroProbability, c.condKey(i))
		}

		c.probs[i] /= total
	}

	return c, nil
}

// BinaryConditionalFromProbs builds P(jointVar | condVar) for a binary
// joint variable: probs maps each conditioning state to
// P(jointVar = 1 | condVar = state).
func BinaryConditionalFromProbs(
	jointVar, condVar string,
	probs map[string]float64,
) (*Conditional, error) {
	cells := make([]Cell, 0, 2*len(probs))
	for state, p := range probs {
		cells = append(cells,
			Cell{States: []string{"0", state}, P: 1 - p},
			Cell{States: []string{"1", state}, P: p},
		)
	}

	return ConditionalFromProbs(
		[]string{jointVar}, []string{condVar}, cells, nil)
}

// condKey returns the conditioning part of row i's key.
func (c *Conditional) condKey(i int) []string {
	return c.keys[i][len(c.jointVars):]
}

// jointKey returns the joint part of row i's key.
func (c *Conditional) jointKey(i int) []string {
	return c.keys[i][:len(c.jointVars)]
}

// JointVariables returns the joint variable names.
func (c *Conditional) JointVariables() []string {
	return append([]string(nil), c.jointVars...)
}

// CondVariables returns the conditioning variable names.
func (c *Conditional) CondVariables() []string {
	return append([]string(nil), c.condVars...)
}

// States returns the possible states of one variable.
func (c *Conditional) States(variable string) []string {
	return append([]string(nil), c.states[variable]...)
}

// Cells returns the table rows, joint states first then conditioning
// states, in deterministic order.
func (c *Conditional) Cells() []Cell {
	out := make([]Cell, len(c.keys))
	for i, key := range c.keys {
		out[i] = Cell{States: append([]string(nil), key...), P: c.probs[i]}
	}

	return out
}

// String renders the conditional symbolically, e.g. "p(fruit|box)".
func (c *Conditional) String() string {
	return "p(" + strings.Join(c.jointVars, ",") + "|" +
		strings.Join(c.condVars, ",") + ")"
}

// P returns P(joint states | cond states) for fully specified states
// in the same order as JointVariables then CondVariables.
func (c *Conditional) P(joint, cond []string) (float64, error) {
	if len(joint) != len(c.jointVars) || len(cond) != len(c.condVars) {
		return 0, fmt.Errorf(
			"%w: want %d joint and %d conditioning states",
			ErrShapeMismatch, len(c.jointVars), len(c.condVars))
	}

	key := append(append([]string(nil), joint...), cond...)

	i, ok := c.index[keyString(key)]
	if !ok {
		return 0, nil
	}

	return c.probs[i], nil
}

// Given fixes some of the conditioning variables with filters,
// yielding a narrower conditional. Only conditioning variables may be
// filtered; fixing all of them is GivenAll's job. Variables fixed by
// an exact filter drop out; comparator-filtered variables stay, with
// each surviving group renormalized.
func (c *Conditional) Given(filters ...Filter) (*Conditional, error) {
	if err := c.checkCondFilters(filters); err != nil {
		return nil, err
	}

	dropped := make(map[string]bool)

	for _, f := range filters {
		if f.dropsVar() {
			dropped[f.Var] = true
		}
	}

	keptCond := make([]string, 0, len(c.condVars))

	for _, name := range c.condVars {
		if !dropped[name] {
			keptCond = append(keptCond, name)
		}
	}

	if len(keptCond) == 0 {
		return nil, fmt.Errorf(
			"%w: all conditioning variables fixed; use GivenAll",
			ErrUnknownVariable)
	}

	count.Incr("conditional_given")

	cells := c.filteredCells(filters, keptCond)
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: filters match no rows", ErrZeroProbability)
	}

	return ConditionalFromProbs(
		c.jointVars, keptCond, cells, c.statesFor(c.jointVars, keptCond))
}

// GivenAll fixes every conditioning variable with exact filters and
// returns the resulting joint distribution over the joint variables.
func (c *Conditional) GivenAll(filters ...Filter) (*Discrete, error) {
	if err := c.checkCondFilters(filters); err != nil {
		return nil, err
	}

	fixed := make(map[string]bool)

	for _, f := range filters {
		if !f.dropsVar() {
			return nil, fmt.Errorf(
				"%w: GivenAll needs exact filters, got %s on %q",
				ErrUnknownVariable, f.Comp, f.Var)
		}

		fixed[f.Var] = true
	}

	for _, name := range c.condVars {
		if !fixed[name] {
			return nil, fmt.Errorf(
				"%w: conditioning variable %q not fixed", ErrUnknownVariable, name)
		}
	}

	count.Incr("conditional_given_all")

	cells := c.filteredCells(filters, nil)
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: filters match no rows", ErrZeroProbability)
	}

	return DiscreteFromProbs(
		c.jointVars, cells, c.statesFor(c.jointVars, nil))
}

// checkCondFilters validates filters and rejects any touching a joint
// variable, which would break per-group normalization.
func (c *Conditional) checkCondFilters(filters []Filter) error {
	for _, f := range filters {
		if findVar(c.jointVars, f.Var) >= 0 {
			return fmt.Errorf(
				"%w: %q is a joint variable; condition the table first",
				ErrUnknownVariable, f.Var)
		}

		if err := f.validate(c.condVars); err != nil {
			return err
		}
	}

	return nil
}

// filteredCells returns the rows passing all filters, keyed by the
// joint variables plus keptCond.
func (c *Conditional) filteredCells(
	filters []Filter, keptCond []string,
) []Cell {
	var cells []Cell

	for i := range c.keys {
		ok := true

		for _, f := range filters {
			v := findVar(c.condVars, f.Var)
			if v >= 0 && !f.matches(c.condKey(i)[v]) {
				ok = false

				break
			}
		}

		if !ok {
			continue
		}

		key := append([]string(nil), c.jointKey(i)...)
		for _, name := range keptCond {
			key = append(key, c.condKey(i)[findVar(c.condVars, name)])
		}

		cells = append(cells, Cell{States: key, P: c.probs[i]})
	}

	return cells
}

// statesFor collects state lists for the given variable groups.
func (c *Conditional) statesFor(groups ...[]string) map[string][]string {
	states := make(map[string][]string)

	for _, group := range groups {
		for _, name := range group {
			states[name] = append([]string(nil), c.states[name]...)
		}
	}

	return states
}

// Marginal sums out joint variables, keeping only keep, within each
// conditioning group: p(a,b|c) becomes p(a|c). Requires a non-empty
// strict subset of the joint variables.
func (c *Conditional) Marginal(keep ...string) (*Conditional, error) {
	if len(keep) == 0 || len(keep) >= len(c.jointVars) {
		return nil, fmt.Errorf(
			"%w: marginal needs a non-empty strict subset of %v",
			ErrUnknownVariable, c.jointVars)
	}

	positions := make([]int, len(keep))

	for j, name := range keep {
		v := findVar(c.jointVars, name)
		if v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
		}

		positions[j] = v
	}

	count.Incr("conditional_marginal")

	cells := make([]Cell, 0, len(c.keys))

	for i := range c.keys {
		key := make([]string, 0, len(keep)+len(c.condVars))
		for _, v := range positions {
			key = append(key, c.jointKey(i)[v])
		}

		key = append(key, c.condKey(i)...)
		cells = append(cells, Cell{States: key, P: c.probs[i]})
	}

	return ConditionalFromProbs(
		keep, c.condVars, cells, c.statesFor(keep, c.condVars))
}

// MulDiscrete applies the chain rule:
// P(joint | cond) * P(cond, extra) = P(joint, cond, extra). The
// discrete factor must cover every conditioning variable and share no
// joint variable.
func (c *Conditional) MulDiscrete(d *Discrete) (*Discrete, error) {
	for _, name := range c.jointVars {
		if findVar(d.vars, name) >= 0 {
			return nil, fmt.Errorf(
				"%w: variable %q on both sides", ErrShapeMismatch, name)
		}
	}

	condPos := make([]int, len(c.condVars))

	for j, name := range c.condVars {
		v := findVar(d.vars, name)
		if v < 0 {
			return nil, fmt.Errorf(
				"%w: conditioning variable %q missing from %s",
				ErrUnknownVariable, name, d)
		}

		condPos[j] = v
	}

	count.Incr("conditional_mul_discrete")

	vars := append(append([]string(nil), c.jointVars...), d.vars...)

	var cells []Cell

	for i := range d.keys {
		cond := make([]string, len(condPos))
		for j, v := range condPos {
			cond[j] = d.keys[i][v]
		}

		for r := range c.keys {
			if keyString(c.condKey(r)) != keyString(cond) {
				continue
			}

			key := append(append([]string(nil), c.jointKey(r)...), d.keys[i]...)
			cells = append(cells, Cell{States: key, P: c.probs[r] * d.probs[i]})
		}
	}

	states := c.statesFor(c.jointVars)
	for _, name := range d.vars {
		states[name] = append([]string(nil), d.states[name]...)
	}

	return newDiscrete(vars, cells, states, false)
}

// Mul multiplies two conditionals with disjoint joint variables into
// P(joint1, joint2 | cond1 ∪ cond2), treating the joint parts as
// conditionally independent. A conditioning variable missing from one
// side is expanded: that side's rows apply to each of its states.
func (c *Conditional) Mul(other *Conditional) (*Conditional, error) {
	for _, name := range other.jointVars {
		if findVar(c.jointVars, name) >= 0 {
			return nil, fmt.Errorf(
				"%w: variable %q on both sides", ErrShapeMismatch, name)
		}
	}

	for _, name := range c.condVars {
		if findVar(other.jointVars, name) >= 0 ||
			findVar(c.jointVars, name) >= 0 {
			return nil, fmt.Errorf(
				"%w: %q is joint on one side and conditioning on the other",
				ErrUnknownVariable, name)
		}
	}

	for _, name := range other.condVars {
		if findVar(c.jointVars, name) >= 0 {
			return nil, fmt.Errorf(
				"%w: %q is joint on one side and conditioning on the other",
				ErrUnknownVariable, name)
		}
	}

	count.Incr("conditional_mul")

	condVars := append([]string(nil), c.condVars...)

	for _, name := range other.condVars {
		if findVar(condVars, name) < 0 {
			condVars = append(condVars, name)
		}
	}

	states := c.statesFor(c.jointVars, c.condVars)

	otherVars := append(append([]string(nil), other.jointVars...),
		other.condVars...)
	for _, name := range otherVars {
		if _, ok := states[name]; !ok {
			states[name] = append([]string(nil), other.states[name]...)
		}
	}

	jointVars := append(append([]string(nil), c.jointVars...),
		other.jointVars...)

	// enumerate every combination of the merged conditioning states and
	// look both factors up, so one-sided conditioning variables expand.
	var cells []Cell

	for _, cond := range enumerateStates(condVars, states) {
		lookup := func(cc *Conditional) ([]int, bool) {
			var rows []int

			want := make([]string, len(cc.condVars))
			for j, name := range cc.condVars {
				want[j] = cond[findVar(condVars, name)]
			}

			for r := range cc.keys {
				if keyString(cc.condKey(r)) == keyString(want) {
					rows = append(rows, r)
				}
			}

			return rows, len(rows) > 0
		}

		rows1, ok1 := lookup(c)
		rows2, ok2 := lookup(other)

		if !ok1 || !ok2 {
			continue
		}

		for _, r1 := range rows1 {
			for _, r2 := range rows2 {
				key := append([]string(nil), c.jointKey(r1)...)
				key = append(key, other.jointKey(r2)...)
				key = append(key, cond...)
				cells = append(cells, Cell{
					States: key,
					P:      c.probs[r1] * other.probs[r2],
				})
			}
		}
	}

	if len(cells) == 0 {
		return nil, fmt.Errorf(
			"%w: factors share no conditioning states", ErrZeroProbability)
	}

	return ConditionalFromProbs(jointVars, condVars, cells, states)
}

// enumerateStates lists every combination of states for vars, in
// table order.
func enumerateStates(
	vars []string, states map[string][]string,
) [][]string {
	combos := [][]string{{}}

	for _, name := range vars {
		var next [][]string

		for _, combo := range combos {
			for _, s := range states[name] {
				next = append(next, append(append([]string(nil), combo...), s))
			}
		}

		combos = next
	}

	return combos
}

// findVar returns the index of name in vars, or -1.
func findVar(vars []string, name string) int {
	for i, v := range vars {
		if v == name {
			return i
		}
	}

	return -1
}
