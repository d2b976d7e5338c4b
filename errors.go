package numfmt

import (
	"errors"
	"strconv"

	"github.com/zeebo/errs"
)

// Error is the class of every error reported by the numfmt packages.
var Error = errs.Class("numfmt")

var (
	// ErrDivideByZero is matched by errors from divisions by zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrSyntax indicates that a value does not have the right syntax for the target type.
	ErrSyntax = strconv.ErrSyntax

	// ErrRange indicates that a value is out of range for the target type.
	ErrRange = strconv.ErrRange
)

// DivideByZeroError records a division whose divisor was zero.
type DivideByZeroError struct {
	Op       string // the operation, e.g. "cfloat.Quo"
	Dividend string // the dividend rendered as text
}

func (e *DivideByZeroError) Error() string {
	return e.Op + ": " + e.Dividend + " / 0: " + ErrDivideByZero.Error()
}

func (e *DivideByZeroError) Unwrap() error { return ErrDivideByZero }

// PanicDivideByZero panics with a [DivideByZeroError] of the [Error] class.
func PanicDivideByZero(op, dividend string) {
	panic(Error.Wrap(&DivideByZeroError{Op: op, Dividend: dividend}))
}

// ParseError records a failed conversion.
type ParseError struct {
	Type  string // the target type, e.g. "hfloat(6,7)"
	Input string // the input
	Err   error  // the reason the conversion failed (e.g. ErrRange, ErrSyntax, etc.)
}

func (e *ParseError) Error() string {
	return "parsing " + e.Type + " " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SyntaxError returns a [ParseError] for an input that cannot be interpreted.
func SyntaxError(typ, input string) error {
	return Error.Wrap(&ParseError{Type: typ, Input: input, Err: ErrSyntax})
}

// RangeError returns a [ParseError] for an input out of range.
func RangeError(typ, input string) error {
	return Error.Wrap(&ParseError{Type: typ, Input: input, Err: ErrRange})
}
