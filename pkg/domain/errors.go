package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is the umbrella for every parse failure.
// Use errors.As to recover the concrete kind.
var ErrSyntax = errors.New("syntax error")

// ErrDerivationNotFound is returned when a derivation key cannot be found in the store.
var ErrDerivationNotFound = errors.New("derivation not found")

// ErrOverflow is returned when a derivative coefficient is not a finite float64.
var ErrOverflow = errors.New("numeric overflow")

// EndOfInput is reported as the offending character when input ends in a
// state that cannot terminate.
const EndOfInput rune = -1

// InvalidCharacterError reports a character that is not legal in the current state.
type InvalidCharacterError struct {
	State  ParseState
	Char   rune
	Column int // 1-based, in runes
}

func (e *InvalidCharacterError) Error() string {
	if e.Char == EndOfInput {
		return fmt.Sprintf("unexpected end of input in %s at column %d", e.State, e.Column)
	}
	return fmt.Sprintf("invalid character %q in %s at column %d", e.Char, e.State, e.Column)
}

func (e *InvalidCharacterError) Unwrap() error { return ErrSyntax }

// MalformedNumberError reports accumulated text that does not convert to a number.
type MalformedNumberError struct {
	Field  NumberField
	Text   string
	Column int
	Err    error // underlying strconv error, if any
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed %s %q at column %d", e.Field, e.Text, e.Column)
}

func (e *MalformedNumberError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSyntax}
	}
	return []error{ErrSyntax, e.Err}
}

// OverflowError reports a derivative term whose coefficient left the float64 range.
// Exponent is the term's exponent in the derivative.
type OverflowError struct {
	Exponent float64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("derivative coefficient of x^%s is not a finite number",
		strconv.FormatFloat(e.Exponent, 'f', -1, 64))
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// ErrorKind returns a stable label for an engine error ("invalid_character",
// "malformed_number", "overflow"), or "" for anything else.
func ErrorKind(err error) string {
	var ic *InvalidCharacterError
	if errors.As(err, &ic) {
		return "invalid_character"
	}
	var mn *MalformedNumberError
	if errors.As(err, &mn) {
		return "malformed_number"
	}
	if errors.Is(err, ErrOverflow) {
		return "overflow"
	}
	return ""
}

// ErrorColumn returns the column carried by a syntax error, or 0.
func ErrorColumn(err error) int {
	var ic *InvalidCharacterError
	if errors.As(err, &ic) {
		return ic.Column
	}
	var mn *MalformedNumberError
	if errors.As(err, &mn) {
		return mn.Column
	}
	return 0
}
