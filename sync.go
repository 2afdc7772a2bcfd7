// -*- tab-width:2 -*-

package prob

// SyncContext and the broadcast helpers keep numerically dependent
// expressions reading one sample cache, so e.g. a posterior built from
// a prior and a likelihood consumes the same draws everywhere.

import (
	"fmt"
)

// SyncContext creates one fresh Context and points every passed-in
// expression at it. Items may be bare *Expr values, slices of them, or
// maps keyed by string; anything else is a type error. After the call,
// evaluating any of the expressions reads and writes the same cache.
func SyncContext(items ...any) (*Context, error) {
	ctx := NewContext()

	for _, item := range items {
		switch val := item.(type) {
		case *Expr:
			val.ctx = ctx
		case []*Expr:
			for _, e := range val {
				e.ctx = ctx
			}
		case map[string]*Expr:
			for _, e := range val {
				e.ctx = ctx
			}
		default:
			return nil, fmt.Errorf(
				"%w: cannot sync context for %T", ErrTypeMismatch, item)
		}
	}

	return ctx, nil
}

// MulEach multiplies e by each element, returning one result per
// element. All results (and e) share one fresh context, so a
// distribution appearing in several elements is sampled once. Use
// MulEachIndependent for independent sampling.
func MulEach(e *Expr, items []*Expr) []*Expr {
	return broadcast(e, items, opMultiply, true)
}

// MulEachIndependent is MulEach without context sharing: every result
// keeps its own context and samples independently.
func MulEachIndependent(e *Expr, items []*Expr) []*Expr {
	return broadcast(e, items, opMultiply, false)
}

// DivEach divides e by each element, sharing one context across the
// results.
func DivEach(e *Expr, items []*Expr) []*Expr {
	return broadcast(e, items, opDivide, true)
}

// DivEachIndependent is DivEach without context sharing.
func DivEachIndependent(e *Expr, items []*Expr) []*Expr {
	return broadcast(e, items, opDivide, false)
}

func broadcast(e *Expr, items []*Expr, op binaryOperator, share bool) []*Expr {
	out := make([]*Expr, len(items))

	var shared *Context
	if share {
		shared = NewContext()
		e.ctx = shared
	}

	for i, item := range items {
		ctx := item.ctx
		if share {
			ctx = shared
			item.ctx = shared
		}

		out[i] = &Expr{
			calc: &binaryCalc{in1: e.calc, in2: item.calc, op: op},
			ctx:  ctx,
		}
	}

	return out
}
