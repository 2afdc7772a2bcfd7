// -*- tab-width:2 -*-

package prob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseFilter checks the "{name}__{comparator}" convention
func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("fruit", "orange")
	require.NoError(t, err)
	require.Equal(t, "fruit", f.Var)
	require.Equal(t, CompEq, f.Comp)
	require.True(t, f.dropsVar())

	f, err = ParseFilter("fruit__ne", "orange")
	require.NoError(t, err)
	require.Equal(t, "fruit", f.Var)
	require.Equal(t, CompNe, f.Comp)
	require.False(t, f.dropsVar())

	f, err = ParseFilter("x__in", "a", "b", "c")
	require.NoError(t, err)
	require.Equal(t, CompIn, f.Comp)
	require.Equal(t, []string{"a", "b", "c"}, f.Values)

	f, err = ParseFilter("x__not_in", "a")
	require.NoError(t, err)
	require.Equal(t, CompNotIn, f.Comp)

	// single-value comparators need exactly one value
	_, err = ParseFilter("x__lt")
	require.ErrorIs(t, err, ErrUnknownVariable)

	_, err = ParseFilter("x", "a", "b")
	require.ErrorIs(t, err, ErrUnknownVariable)

	// an unrecognized suffix is part of the variable name
	f, err = ParseFilter("x__approx", "a")
	require.NoError(t, err)
	require.Equal(t, "x__approx", f.Var)
	require.Equal(t, CompEq, f.Comp)
}

// TestValidNameComparator checks the name validator used when filter
// specs arrive as data
func TestValidNameComparator(t *testing.T) {
	vars := []string{"box", "fruit"}

	require.True(t, ValidNameComparator("box", vars))
	require.True(t, ValidNameComparator("fruit__eq", vars))
	require.True(t, ValidNameComparator("fruit__not_in", vars))
	require.False(t, ValidNameComparator("color", vars))
	require.False(t, ValidNameComparator("box__approx", vars))
	require.False(t, ValidNameComparator("box__", vars))
}

// TestFilterMatching checks each comparator against states
func TestFilterMatching(t *testing.T) {
	require.True(t, Eq("x", "a").matches("a"))
	require.False(t, Eq("x", "a").matches("b"))
	require.True(t, Ne("x", "a").matches("b"))
	require.True(t, In("x", "a", "b").matches("b"))
	require.False(t, In("x", "a", "b").matches("c"))
	require.True(t, NotIn("x", "a", "b").matches("c"))
	require.True(t, Lt("x", "b").matches("a"))
	require.True(t, Ge("x", "b").matches("b"))
	require.False(t, Gt("x", "b").matches("b"))
	require.True(t, Le("x", "b").matches("a"))
}

// TestNumericStateOrdering checks numeric states compare as numbers,
// not strings
func TestNumericStateOrdering(t *testing.T) {
	require.Negative(t, compareStates("2", "10"))
	require.Positive(t, compareStates("10", "2"))
	require.Zero(t, compareStates("2", "2.0"))

	// mixed inputs fall back to lexical order
	require.Negative(t, compareStates("10", "a"))
	require.Negative(t, compareStates("a", "b"))

	require.True(t, Lt("x", "10").matches("9"))
	require.False(t, Lt("x", "10").matches("11"))
}

// TestFilterValidate checks unknown variables are rejected
func TestFilterValidate(t *testing.T) {
	require.NoError(t, Eq("box", "red").validate([]string{"box"}))
	require.ErrorIs(t,
		Eq("color", "red").validate([]string{"box"}), ErrUnknownVariable)
}
