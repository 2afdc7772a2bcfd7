// -*- tab-width:2 -*-

// Package prob provides a library for composing random-variable
// expressions into a lazily evaluated calculation graph and for doing
// algebra on discrete joint/conditional probability tables
package prob

import (
	"errors"
	"sync"

	ll "github.com/jayalane/go-lll"
)

var (
	ml     *ll.Lll
	mlOnce sync.Once
)

// NumSamplesComparison is the default number of samples drawn when a
// caller does not specify a sample count.
const NumSamplesComparison = 100_000

var (
	// ErrTypeMismatch means an operand was not one of the supported
	// value shapes for the operation.
	ErrTypeMismatch = errors.New("unsupported operand type")

	// ErrShapeMismatch means two operands had incompatible lengths or
	// column counts.
	ErrShapeMismatch = errors.New("operand shapes do not align")

	// ErrNameNotFound means a context lookup missed.
	ErrNameNotFound = errors.New("no value under that name in context")

	// ErrContextMismatch means inputs to an array calculation spanned
	// more than one pre-existing context.
	ErrContextMismatch = errors.New("more than one context present in inputs")

	// ErrUnknownVariable means a variable name is not part of the table
	// it was used against.
	ErrUnknownVariable = errors.New("variable not in distribution")

	// ErrZeroProbability means a filter or conditioning left zero total
	// probability mass, so renormalization is undefined.
	ErrZeroProbability = errors.New("zero total probability")
)

// Init must be called before using the library; it merely inits the
// logger.
func Init() {
	mlOnce.Do(func() {
		ml = ll.Init("PROB", "none")
	})
}

// InitWithLogger is an init where you can pass in the go-lll logger.
func InitWithLogger(ll *ll.Lll) {
	mlOnce.Do(func() {
		ml = ll
	})
}
