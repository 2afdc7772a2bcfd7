// -*- tab-width:2 -*-

package prob

// Calculation nodes are pure: they never hold a context. Output takes
// the context as an argument, so sharing samples between expressions
// is a matter of evaluating them against the same Context value.

import (
	count "github.com/jayalane/go-counter"
)

// Calculation is one node of a lazily evaluated expression DAG. Name
// is deterministic over the node's inputs and operator and acts as the
// memoization fingerprint inside a Context.
type Calculation interface {
	// Name returns the memoization fingerprint of this node.
	Name() string

	// Inputs returns the node's direct inputs, in evaluation order.
	Inputs() []Calculation

	// Output evaluates the node, consulting and populating ctx under
	// the node's name.
	Output(ctx *Context, numSamples int) (Value, error)

	// simple reports a leaf node; composite operand names get
	// parenthesized inside a parent's name, leaves do not.
	simple() bool
}

// valueCalc wraps a constant.
type valueCalc struct {
	v float64
}

func (c *valueCalc) Name() string { return formatScalar(c.v) }
func (c *valueCalc) Inputs() []Calculation { return nil }
func (c *valueCalc) simple() bool { return true }

func (c *valueCalc) Output(ctx *Context, _ int) (Value, error) {
	// stored so parents that look the constant up by name stay
	// consistent
	if !ctx.Has(c.Name()) {
		ctx.Set(c.Name(), Scalar(c.v))
	}

	return Scalar(c.v), nil
}

// sampler abstracts the two distribution capabilities (series-valued
// and table-valued) behind one leaf node type.
type sampler interface {
	name() string
	draw(n int) Value
}

type distSampler struct {
	d Dist
}

func (s distSampler) name() string { return s.d.String() }
func (s distSampler) draw(n int) Value { return s.d.Rvs(n) }

type tableDistSampler struct {
	d TableDist
}

func (s tableDistSampler) name() string { return s.d.String() }
func (s tableDistSampler) draw(n int) Value { return s.d.RvsTable(n) }

// sampleCalc wraps a distribution. A distribution is sampled at most
// once per context, no matter how many times it appears in a tree:
// X - X must be identically zero, not the difference of two
// independent draws.
type sampleCalc struct {
	src sampler
}

func (c *sampleCalc) Name() string { return c.src.name() }
func (c *sampleCalc) Inputs() []Calculation { return nil }
func (c *sampleCalc) simple() bool { return true }

func (c *sampleCalc) Output(ctx *Context, numSamples int) (Value, error) {
	if ctx.Has(c.Name()) {
		return ctx.Get(c.Name())
	}

	if numSamples <= 0 {
		numSamples = NumSamplesComparison
	}

	result := c.src.draw(numSamples)
	ctx.Set(c.Name(), result)
	count.Incr("calc_sample_drawn")
	ml.Ln("sampled", c.Name(), "x", numSamples)

	return result, nil
}

// binaryCalc combines two inputs with a binary operator.
type binaryCalc struct {
	in1, in2 Calculation
	op       binaryOperator
}

func (c *binaryCalc) Name() string {
	return c.op.name(
		wrapCalc(c.in1.Name(), !c.in1.simple()),
		wrapCalc(c.in2.Name(), !c.in2.simple()))
}

func (c *binaryCalc) Inputs() []Calculation { return []Calculation{c.in1, c.in2} }
func (c *binaryCalc) simple() bool { return false }

func (c *binaryCalc) Output(ctx *Context, numSamples int) (Value, error) {
	if ctx.Has(c.Name()) {
		return ctx.Get(c.Name())
	}

	value1, err := resolveInput(ctx, c.in1, numSamples)
	if err != nil {
		return nil, err
	}

	value2, err := resolveInput(ctx, c.in2, numSamples)
	if err != nil {
		return nil, err
	}

	result, err := c.op.operate(
		value1, value2, !c.in1.simple(), !c.in2.simple())
	if err != nil {
		return nil, err
	}

	ctx.Set(c.Name(), result)

	return result, nil
}

// unaryCalc applies a unary operator to one input.
type unaryCalc struct {
	in Calculation
	op unaryOperator
}

func (c *unaryCalc) Name() string { return c.op.name(c.in.Name()) }
func (c *unaryCalc) Inputs() []Calculation { return []Calculation{c.in} }
func (c *unaryCalc) simple() bool { return false }

func (c *unaryCalc) Output(ctx *Context, numSamples int) (Value, error) {
	if ctx.Has(c.Name()) {
		return ctx.Get(c.Name())
	}

	value, err := resolveInput(ctx, c.in, numSamples)
	if err != nil {
		return nil, err
	}

	result, err := c.op.operate(value)
	if err != nil {
		return nil, err
	}

	ctx.Set(c.Name(), result)

	return result, nil
}

// aggCalc reduces one table-valued input to a series.
type aggCalc struct {
	in Calculation
	op aggOperator
}

func (c *aggCalc) Name() string { return c.op.name(c.in.Name()) }
func (c *aggCalc) Inputs() []Calculation { return []Calculation{c.in} }
func (c *aggCalc) simple() bool { return false }

func (c *aggCalc) Output(ctx *Context, numSamples int) (Value, error) {
	if ctx.Has(c.Name()) {
		return ctx.Get(c.Name())
	}

	value, err := resolveInput(ctx, c.in, numSamples)
	if err != nil {
		return nil, err
	}

	result, err := c.op.operate(value)
	if err != nil {
		return nil, err
	}

	ctx.Set(c.Name(), result)

	return result, nil
}

// arrayCalc reduces N inputs with an n-ary operator.
type arrayCalc struct {
	ins []Calculation
	op  arrayOperator
}

func (c *arrayCalc) Name() string {
	names := make([]string, len(c.ins))
	for i, in := range c.ins {
		names[i] = in.Name()
	}

	return c.op.name(names)
}

func (c *arrayCalc) Inputs() []Calculation { return c.ins }
func (c *arrayCalc) simple() bool { return false }

func (c *arrayCalc) Output(ctx *Context, numSamples int) (Value, error) {
	if ctx.Has(c.Name()) {
		return ctx.Get(c.Name())
	}

	values := make([]Value, len(c.ins))

	for i, in := range c.ins {
		value, err := resolveInput(ctx, in, numSamples)
		if err != nil {
			return nil, err
		}

		values[i] = value
	}

	result, err := c.op.operate(values)
	if err != nil {
		return nil, err
	}

	ctx.Set(c.Name(), result)

	return result, nil
}

// resolveInput fetches an input's value from the context cache, or
// evaluates it and caches the result under the input's name. With the
// parent's own-name check this is the two-level caching that makes
// shared sub-expressions anywhere in a tree compute once.
func resolveInput(
	ctx *Context, in Calculation, numSamples int,
) (Value, error) {
	if ctx.Has(in.Name()) {
		return ctx.Get(in.Name())
	}

	value, err := in.Output(ctx, numSamples)
	if err != nil {
		return nil, err
	}

	ctx.Set(in.Name(), value)

	return value, nil
}
