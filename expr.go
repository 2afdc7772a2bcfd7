// -*- tab-width:2 -*-

package prob

// Expr is the only type carrying arithmetic methods. It pairs a pure
// calculation node with the context its evaluation reads and writes,
// so the implicit ambient context of operator overloading becomes an
// explicit value.

import (
	"fmt"
)

// Expr is a buildable random-variable expression: a calculation node
// plus the evaluation context it will be run against.
type Expr struct {
	calc Calculation
	ctx  *Context
}

// Const starts an expression from a constant.
func Const(v float64) *Expr {
	return &Expr{calc: &valueCalc{v: v}, ctx: NewContext()}
}

// SampleOf starts an expression that samples a distribution.
func SampleOf(d Dist) *Expr {
	return &Expr{
		calc: &sampleCalc{src: distSampler{d: d}},
		ctx:  NewContext(),
	}
}

// SampleOfTable starts an expression that samples a multivariate
// distribution into a table.
func SampleOfTable(d TableDist) *Expr {
	return &Expr{
		calc: &sampleCalc{src: tableDistSampler{d: d}},
		ctx:  NewContext(),
	}
}

// NewExpr starts an expression from a float, int, Dist, TableDist or
// existing *Expr; anything else is a type error.
func NewExpr(v any) (*Expr, error) {
	switch val := v.(type) {
	case *Expr:
		return val, nil
	case float64:
		return Const(val), nil
	case int:
		return Const(float64(val)), nil
	case Dist:
		return SampleOf(val), nil
	case TableDist:
		return SampleOfTable(val), nil
	}

	return nil, fmt.Errorf(
		"%w: expression input must be *Expr, float64, int, Dist or TableDist, got %T",
		ErrTypeMismatch, v)
}

// Name returns the deterministic name of the expression.
func (e *Expr) Name() string {
	return e.calc.Name()
}

// Context returns the context the expression will evaluate against.
func (e *Expr) Context() *Context {
	return e.ctx
}

// Calc returns the underlying calculation node.
func (e *Expr) Calc() Calculation {
	return e.calc
}

// Output evaluates the expression, drawing numSamples samples for any
// distribution not already sampled in the context. A non-positive
// count means NumSamplesComparison.
func (e *Expr) Output(numSamples int) (Value, error) {
	if numSamples <= 0 {
		numSamples = NumSamplesComparison
	}

	return e.calc.Output(e.ctx, numSamples)
}

// combine builds a binary node over e and other. The result adopts
// e's context and other is repointed at it, so chained expressions
// stay in one context without an explicit SyncContext call.
func (e *Expr) combine(other *Expr, op binaryOperator) *Expr {
	other.ctx = e.ctx

	return &Expr{
		calc: &binaryCalc{in1: e.calc, in2: other.calc, op: op},
		ctx:  e.ctx,
	}
}

// Add returns e + other.
func (e *Expr) Add(other *Expr) *Expr {
	return e.combine(other, opAdd)
}

// Sub returns e - other.
func (e *Expr) Sub(other *Expr) *Expr {
	return e.combine(other, opSubtract)
}

// Mul returns e * other.
func (e *Expr) Mul(other *Expr) *Expr {
	return e.combine(other, opMultiply)
}

// Div returns e / other.
func (e *Expr) Div(other *Expr) *Expr {
	return e.combine(other, opDivide)
}

// Complement returns 1 - e.
func (e *Expr) Complement() *Expr {
	return &Expr{
		calc: &unaryCalc{in: e.calc, op: opComplement},
		ctx:  e.ctx,
	}
}

// Sum returns the row-wise sum of a table-valued expression.
func (e *Expr) Sum() *Expr {
	return &Expr{
		calc: &aggCalc{in: e.calc, op: opSum},
		ctx:  e.ctx,
	}
}

// MinOf returns the elementwise minimum of the inputs (floats, Dists
// or pre-built Exprs).
func MinOf(items ...any) (*Expr, error) {
	return arrayExpr(opMin, items)
}

// MaxOf returns the elementwise maximum of the inputs.
func MaxOf(items ...any) (*Expr, error) {
	return arrayExpr(opMax, items)
}

// MeanOf returns the elementwise mean of the inputs.
func MeanOf(items ...any) (*Expr, error) {
	return arrayExpr(opMean, items)
}

// MedianOf returns the elementwise median of the inputs.
func MedianOf(items ...any) (*Expr, error) {
	return arrayExpr(opMedian, items)
}

// arrayExpr normalizes mixed scalar/distribution/expression inputs
// into leaf nodes on one shared context. Pre-built inputs spanning
// more than one distinct context are rejected: array operands must be
// comparable within one sampling context.
func arrayExpr(op arrayOperator, items []any) (*Expr, error) {
	var ctx *Context

	for _, item := range items {
		e, ok := item.(*Expr)
		if !ok {
			continue
		}

		if ctx == nil {
			ctx = e.ctx
		} else if ctx != e.ctx {
			return nil, fmt.Errorf("%w: inputs to %s", ErrContextMismatch, op.symbol)
		}
	}

	if ctx == nil {
		ctx = NewContext()
	}

	ins := make([]Calculation, len(items))

	for i, item := range items {
		switch val := item.(type) {
		case *Expr:
			val.ctx = ctx
			ins[i] = val.calc
		case float64:
			ins[i] = &valueCalc{v: val}
		case int:
			ins[i] = &valueCalc{v: float64(val)}
		case Dist:
			ins[i] = &sampleCalc{src: distSampler{d: val}}
		default:
			return nil, fmt.Errorf(
				"%w: input to %s must be *Expr, float64, int or Dist, got %T",
				ErrTypeMismatch, op.symbol, item)
		}
	}

	return &Expr{calc: &arrayCalc{ins: ins, op: op}, ctx: ctx}, nil
}
