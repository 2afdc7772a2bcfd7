// -*- tab-width:2 -*-

package prob

// Filters select rows of a probability table. The typed constructors
// are the main API; the "{name}__{comparator}" string convention is
// still parsed for callers carrying filter specs as data.

import (
	"fmt"
	"strconv"
	"strings"
)

// Comparator selects how a filter compares a variable's state.
type Comparator string

// The recognized comparators.
const (
	CompEq    Comparator = "eq"
	CompNe    Comparator = "ne"
	CompLt    Comparator = "lt"
	CompGt    Comparator = "gt"
	CompLe    Comparator = "le"
	CompGe    Comparator = "ge"
	CompIn    Comparator = "in"
	CompNotIn Comparator = "not_in"
)

var matchCodes = []Comparator{
	CompEq, CompNe, CompLt, CompGt, CompLe, CompGe, CompIn, CompNotIn,
}

// Filter restricts one variable of a probability table.
type Filter struct {
	Var    string
	Comp   Comparator
	Value  string   // for all comparators except in/not_in
	Values []string // for in/not_in
	exact  bool     // built from a bare variable name: fixes the var
}

// Eq fixes a variable to one state. The variable is dropped from the
// result of Given, since it no longer varies.
func Eq(varName, state string) Filter {
	return Filter{Var: varName, Comp: CompEq, Value: state, exact: true}
}

// Ne keeps states different from state.
func Ne(varName, state string) Filter {
	return Filter{Var: varName, Comp: CompNe, Value: state}
}

// Lt keeps states ordered before state.
func Lt(varName, state string) Filter {
	return Filter{Var: varName, Comp: CompLt, Value: state}
}

// Gt keeps states ordered after state.
func Gt(varName, state string) Filter {
	return Filter{Var: varName, Comp: CompGt, Value: state}
}

// Le keeps states ordered at or before state.
func Le(varName, state string) Filter {
	return Filter{Var: varName, Comp: CompLe, Value: state}
}

// Ge keeps states ordered at or after state.
func Ge(varName, state string) Filter {
	return Filter{Var: varName, Comp: CompGe, Value: state}
}

// In keeps states that are members of the given set.
func In(varName string, states ...string) Filter {
	return Filter{Var: varName, Comp: CompIn, Values: states}
}

// NotIn keeps states outside the given set.
func NotIn(varName string, states ...string) Filter {
	return Filter{Var: varName, Comp: CompNotIn, Values: states}
}

// matches reports whether a state passes the filter.
func (f Filter) matches(state string) bool {
	switch f.Comp {
	case CompEq:
		return state == f.Value
	case CompNe:
		return state != f.Value
	case CompLt:
		return compareStates(state, f.Value) < 0
	case CompGt:
		return compareStates(state, f.Value) > 0
	case CompLe:
		return compareStates(state, f.Value) <= 0
	case CompGe:
		return compareStates(state, f.Value) >= 0
	case CompIn:
		return containsState(f.Values, state)
	case CompNotIn:
		return !containsState(f.Values, state)
	}

	return false
}

// dropsVar reports whether Given should remove the variable from the
// result: only an exact fix does, a range or membership filter leaves
// the variable varying.
func (f Filter) dropsVar() bool {
	return f.exact
}

// validate checks the filter against the variables of a table.
func (f Filter) validate(varNames []string) error {
	found := false

	for _, name := range varNames {
		if name == f.Var {
			found = true

			break
		}
	}

	if !found {
		return fmt.Errorf("%w: %q", ErrUnknownVariable, f.Var)
	}

	for _, code := range matchCodes {
		if f.Comp == code {
			return nil
		}
	}

	return fmt.Errorf("%w: unknown comparator %q for %q",
		ErrUnknownVariable, f.Comp, f.Var)
}

// ParseFilter parses the "{name}__{comparator}" convention: a bare
// name is an exact match needing one value, a recognized suffix picks
// the comparator. A variable whose own name ends in a comparator
// suffix cannot be expressed this way; use the typed constructors.
func ParseFilter(nameComparator string, values ...string) (Filter, error) {
	name, comp := splitNameComparator(nameComparator)

	switch comp {
	case CompIn, CompNotIn:
		return Filter{Var: name, Comp: comp, Values: values}, nil
	case CompEq:
		if len(values) != 1 {
			return Filter{}, fmt.Errorf(
				"%w: %q needs exactly one value, got %d",
				ErrUnknownVariable, nameComparator, len(values))
		}

		exact := name == nameComparator

		return Filter{
			Var: name, Comp: comp, Value: values[0], exact: exact,
		}, nil
	default:
		if len(values) != 1 {
			return Filter{}, fmt.Errorf(
				"%w: %q needs exactly one value, got %d",
				ErrUnknownVariable, nameComparator, len(values))
		}

		return Filter{Var: name, Comp: comp, Value: values[0]}, nil
	}
}

// ValidNameComparator reports whether the given name is a valid
// filter name for any of the variables in varNames, either a bare
// variable name or "{name}__{comparator}" with a recognized code.
func ValidNameComparator(nameComparator string, varNames []string) bool {
	for _, name := range varNames {
		if nameComparator == name {
			return true
		}
	}

	for _, name := range varNames {
		for _, code := range matchCodes {
			if nameComparator == name+"__"+string(code) {
				return true
			}
		}
	}

	return false
}

// splitNameComparator splits off a recognized "__{code}" suffix; a
// bare name means an exact match.
func splitNameComparator(nameComparator string) (string, Comparator) {
	idx := strings.LastIndex(nameComparator, "__")
	if idx > 0 {
		suffix := Comparator(nameComparator[idx+2:])
		for _, code := range matchCodes {
			if suffix == code {
				return nameComparator[:idx], suffix
			}
		}
	}

	return nameComparator, CompEq
}

// compareStates orders two states numerically when both parse as
// numbers, lexically otherwise.
func compareStates(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)

	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(a, b)
}

func containsState(states []string, state string) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}

	return false
}
