// -*- tab-width:2 -*-

package prob

// Operators are stateless strategy values. Each binary operator shares
// one shape dispatcher over the nine {scalar, series, table} pairings;
// every branch relabels its result with the operator's textual
// combination of the operand labels. Labels are memoization keys, so
// relabeling is a correctness requirement, not cosmetics.

import (
	"fmt"
	"sort"
	"strings"
)

type binaryOperator struct {
	symbol string
	apply  func(a, b float64) float64
}

var (
	opAdd      = binaryOperator{"+", func(a, b float64) float64 { return a + b }}
	opSubtract = binaryOperator{"-", func(a, b float64) float64 { return a - b }}
	opMultiply = binaryOperator{"*", func(a, b float64) float64 { return a * b }}
	opDivide   = binaryOperator{"/", func(a, b float64) float64 { return a / b }}
)

// name builds the combined label for two operand names.
func (op binaryOperator) name(name1, name2 string) string {
	return name1 + " " + op.symbol + " " + name2
}

// wrapCalc parenthesizes the label of a composite operand.
func wrapCalc(label string, isCalc bool) string {
	if isCalc {
		return "(" + label + ")"
	}

	return label
}

// operate combines two values, dispatching on their runtime shapes.
// calc1/calc2 say whether each operand came from a composite
// calculation and only affect label bracketing.
func (op binaryOperator) operate(
	value1, value2 Value,
	calc1, calc2 bool,
) (Value, error) {
	switch v1 := value1.(type) {
	case Scalar:
		label1 := wrapCalc(formatScalar(float64(v1)), calc1)

		switch v2 := value2.(type) {
		case Scalar:
			return Scalar(op.apply(float64(v1), float64(v2))), nil

		case *Series:
			out := make([]float64, v2.Len())
			for i, x := range v2.Vals {
				out[i] = op.apply(float64(v1), x)
			}

			return &Series{
				Name: op.name(label1, wrapCalc(v2.Name, calc2)),
				Vals: out,
			}, nil

		case *Table:
			cols := make([]string, len(v2.Cols))
			vals := make([][]float64, len(v2.Cols))

			for c, col := range v2.Cols {
				cols[c] = op.name(label1, wrapCalc(col, calc2))
				vals[c] = make([]float64, len(v2.Vals[c]))

				for i, x := range v2.Vals[c] {
					vals[c][i] = op.apply(float64(v1), x)
				}
			}

			return &Table{Cols: cols, Vals: vals}, nil
		}

	case *Series:
		label1 := wrapCalc(v1.Name, calc1)

		switch v2 := value2.(type) {
		case Scalar:
			out := make([]float64, v1.Len())
			for i, x := range v1.Vals {
				out[i] = op.apply(x, float64(v2))
			}

			return &Series{
				Name: op.name(label1, wrapCalc(formatScalar(float64(v2)), calc2)),
				Vals: out,
			}, nil

		case *Series:
			if v1.Len() != v2.Len() {
				return nil, fmt.Errorf("%w: series of %d and %d entries",
					ErrShapeMismatch, v1.Len(), v2.Len())
			}

			out := make([]float64, v1.Len())
			for i, x := range v1.Vals {
				out[i] = op.apply(x, v2.Vals[i])
			}

			return &Series{
				Name: op.name(label1, wrapCalc(v2.Name, calc2)),
				Vals: out,
			}, nil

		case *Table:
			// broadcast the series down every column
			if v1.Len() != v2.Rows() {
				return nil, fmt.Errorf("%w: series of %d entries, table of %d rows",
					ErrShapeMismatch, v1.Len(), v2.Rows())
			}

			cols := make([]string, len(v2.Cols))
			vals := make([][]float64, len(v2.Cols))

			for c, col := range v2.Cols {
				cols[c] = op.name(label1, wrapCalc(col, calc2))
				vals[c] = make([]float64, v2.Rows())

				for i, x := range v2.Vals[c] {
					vals[c][i] = op.apply(v1.Vals[i], x)
				}
			}

			return &Table{Cols: cols, Vals: vals}, nil
		}

	case *Table:
		switch v2 := value2.(type) {
		case Scalar:
			label2 := wrapCalc(formatScalar(float64(v2)), calc2)
			cols := make([]string, len(v1.Cols))
			vals := make([][]float64, len(v1.Cols))

			for c, col := range v1.Cols {
				cols[c] = op.name(wrapCalc(col, calc1), label2)
				vals[c] = make([]float64, len(v1.Vals[c]))

				for i, x := range v1.Vals[c] {
					vals[c][i] = op.apply(x, float64(v2))
				}
			}

			return &Table{Cols: cols, Vals: vals}, nil

		case *Series:
			if v2.Len() != v1.Rows() {
				return nil, fmt.Errorf("%w: table of %d rows, series of %d entries",
					ErrShapeMismatch, v1.Rows(), v2.Len())
			}

			label2 := wrapCalc(v2.Name, calc2)
			cols := make([]string, len(v1.Cols))
			vals := make([][]float64, len(v1.Cols))

			for c, col := range v1.Cols {
				cols[c] = op.name(wrapCalc(col, calc1), label2)
				vals[c] = make([]float64, v1.Rows())

				for i, x := range v1.Vals[c] {
					vals[c][i] = op.apply(x, v2.Vals[i])
				}
			}

			return &Table{Cols: cols, Vals: vals}, nil

		case *Table:
			// zip columns positionally
			if len(v1.Cols) != len(v2.Cols) {
				return nil, fmt.Errorf("%w: tables of %d and %d columns",
					ErrShapeMismatch, len(v1.Cols), len(v2.Cols))
			}

			if v1.Rows() != v2.Rows() {
				return nil, fmt.Errorf("%w: tables of %d and %d rows",
					ErrShapeMismatch, v1.Rows(), v2.Rows())
			}

			cols := make([]string, len(v1.Cols))
			vals := make([][]float64, len(v1.Cols))

			for c := range v1.Cols {
				cols[c] = op.name(
					wrapCalc(v1.Cols[c], calc1), wrapCalc(v2.Cols[c], calc2))
				vals[c] = make([]float64, v1.Rows())

				for i, x := range v1.Vals[c] {
					vals[c][i] = op.apply(x, v2.Vals[c][i])
				}
			}

			return &Table{Cols: cols, Vals: vals}, nil
		}
	}

	return nil, fmt.Errorf(
		"%w: operands for %q must be Scalar, *Series or *Table",
		ErrTypeMismatch, op.symbol)
}

type unaryOperator struct {
	prefix string
	apply  func(x float64) float64
}

// opComplement is 1 - x.
var opComplement = unaryOperator{
	prefix: "1 - ",
	apply:  func(x float64) float64 { return 1 - x },
}

func (op unaryOperator) name(name string) string {
	return op.prefix + name
}

// operate applies the operator over any value shape, relabeling the
// result.
func (op unaryOperator) operate(value Value) (Value, error) {
	switch v := value.(type) {
	case Scalar:
		return Scalar(op.apply(float64(v))), nil

	case *Series:
		out := make([]float64, v.Len())
		for i, x := range v.Vals {
			out[i] = op.apply(x)
		}

		return &Series{Name: op.name(v.Name), Vals: out}, nil

	case *Table:
		cols := make([]string, len(v.Cols))
		vals := make([][]float64, len(v.Cols))

		for c, col := range v.Cols {
			cols[c] = op.name(col)
			vals[c] = make([]float64, len(v.Vals[c]))

			for i, x := range v.Vals[c] {
				vals[c][i] = op.apply(x)
			}
		}

		return &Table{Cols: cols, Vals: vals}, nil
	}

	return nil, fmt.Errorf(
		"%w: operand must be Scalar, *Series or *Table", ErrTypeMismatch)
}

// aggOperator reduces a table to a series, row-wise.
type aggOperator struct {
	symbol string
}

var opSum = aggOperator{symbol: "sum"}

func (op aggOperator) name(name string) string {
	return op.symbol + "(" + name + ")"
}

// operate sums each row of a table into a series named after the
// columns it consumed. Anything but a table is a type error.
func (op aggOperator) operate(value Value) (Value, error) {
	t, ok := value.(*Table)
	if !ok {
		return nil, fmt.Errorf(
			"%w: value for %s aggregator must be *Table",
			ErrTypeMismatch, op.symbol)
	}

	out := make([]float64, t.Rows())
	for _, col := range t.Vals {
		for i, x := range col {
			out[i] += x
		}
	}

	return &Series{
		Name: op.symbol + "(" + strings.Join(t.Cols, ", ") + ")",
		Vals: out,
	}, nil
}

// arrayOperator reduces N same-shaped values into one, elementwise for
// series inputs.
type arrayOperator struct {
	symbol string
	reduce func(xs []float64) float64
}

var (
	opMin = arrayOperator{"min", func(xs []float64) float64 {
		m := xs[0]
		for _, x := range xs[1:] {
			if x < m {
				m = x
			}
		}

		return m
	}}

	opMax = arrayOperator{"max", func(xs []float64) float64 {
		m := xs[0]
		for _, x := range xs[1:] {
			if x > m {
				m = x
			}
		}

		return m
	}}

	opMean = arrayOperator{"mean", func(xs []float64) float64 {
		total := 0.0
		for _, x := range xs {
			total += x
		}

		return total / float64(len(xs))
	}}

	opMedian = arrayOperator{"median", func(xs []float64) float64 {
		sorted := append([]float64(nil), xs...)
		sort.Float64s(sorted)

		n := len(sorted)
		if n%2 == 1 {
			return sorted[n/2]
		}

		return (sorted[n/2-1] + sorted[n/2]) / 2
	}}
)

func (op arrayOperator) name(names []string) string {
	return op.symbol + "(" + strings.Join(names, ", ") + ")"
}

// operate reduces the inputs: all scalars give a scalar, all series of
// one length give an elementwise-reduced series.
func (op arrayOperator) operate(values []Value) (Value, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s of no values", ErrShapeMismatch, op.symbol)
	}

	allScalar := true

	for _, v := range values {
		if _, ok := v.(Scalar); !ok {
			allScalar = false

			break
		}
	}

	if allScalar {
		xs := make([]float64, len(values))
		for i, v := range values {
			xs[i] = float64(v.(Scalar))
		}

		return Scalar(op.reduce(xs)), nil
	}

	// mixed scalar/series inputs broadcast the scalars
	length := -1
	names := make([]string, len(values))

	for i, v := range values {
		switch val := v.(type) {
		case Scalar:
			names[i] = formatScalar(float64(val))
		case *Series:
			if length >= 0 && val.Len() != length {
				return nil, fmt.Errorf("%w: series of %d and %d entries",
					ErrShapeMismatch, length, val.Len())
			}

			length = val.Len()
			names[i] = val.Name
		default:
			return nil, fmt.Errorf(
				"%w: values for %s must be Scalar or *Series",
				ErrTypeMismatch, op.symbol)
		}
	}

	out := make([]float64, length)
	xs := make([]float64, len(values))

	for i := range out {
		for j, v := range values {
			switch val := v.(type) {
			case Scalar:
				xs[j] = float64(val)
			case *Series:
				xs[j] = val.Vals[i]
			}
		}

		out[i] = op.reduce(xs)
	}

	return &Series{Name: op.name(names), Vals: out}, nil
}
