package runtime

import (
	"slices"
	"strconv"
	"unicode"

	"github.com/aretw0/deriv/pkg/domain"
)

// ParserState is the complete state of the polynomial parser between two characters.
// Step never mutates its argument, so any intermediate state can be kept and replayed.
type ParserState struct {
	State       domain.ParseState
	Coefficient string
	Exponent    string

	// Terms holds the terms closed so far.
	Terms domain.Polynomial

	// Separator is the sign that closed the previous term, or 0 before the first one.
	Separator rune

	// Gap is set when whitespace followed a numeral of the active buffer.
	// A numeral after a gap would silently glue two terms together.
	Gap bool

	// Column counts the characters consumed so far (1-based position of the last one).
	Column int
}

// Start returns the initial parser state.
func Start() ParserState {
	return ParserState{State: domain.ReadingCoefficient}
}

// Parse converts text into a polynomial, failing atomically on the first syntax error.
func Parse(text string) (domain.Polynomial, error) {
	s := Start()
	for _, r := range text {
		next, err := Step(s, r)
		if err != nil {
			return nil, err
		}
		s = next
	}
	return Finish(s)
}

// Step applies one character to s and returns the resulting state.
// Whitespace is consumed before dispatch in every state.
//
// In ReadingExponent a '+' or '-' normally closes the term. While the exponent
// buffer is still empty (right after '^') it is the exponent's sign instead, so
// "3x^-2" is one term and every rendered derivative parses back.
func Step(s ParserState, r rune) (ParserState, error) {
	next := s
	next.Column++

	if unicode.IsSpace(r) {
		if endsWithNumeral(next.activeBuffer()) {
			next.Gap = true
		}
		return next, nil
	}

	gap := next.Gap
	next.Gap = false

	switch next.State {
	case domain.ReadingCoefficient:
		switch {
		case isNumeral(r):
			if gap {
				return s, next.invalid(r)
			}
			next.Coefficient += string(r)
		case isSign(r):
			next.Coefficient += string(r)
		case r == 'x':
			next.State = domain.ReadingCaret
		default:
			return s, next.invalid(r)
		}

	case domain.ReadingCaret:
		if r != '^' {
			return s, next.invalid(r)
		}
		next.State = domain.ReadingExponent

	case domain.ReadingExponent:
		switch {
		case isNumeral(r):
			if gap {
				return s, next.invalid(r)
			}
			next.Exponent += string(r)
		case isSign(r) && next.Exponent == "":
			next.Exponent = string(r)
		case isSign(r):
			closed, err := next.closeTerm(r)
			if err != nil {
				return s, err
			}
			next = closed
		default:
			return s, next.invalid(r)
		}

	default:
		return s, next.invalid(r)
	}

	return next, nil
}

// Finish closes the pending term, if any, and returns the parsed polynomial.
func Finish(s ParserState) (domain.Polynomial, error) {
	switch s.State {
	case domain.ReadingCaret:
		return nil, &domain.InvalidCharacterError{
			State:  domain.ReadingCaret,
			Char:   domain.EndOfInput,
			Column: s.Column + 1,
		}
	case domain.ReadingCoefficient:
		if s.Coefficient == "" {
			if s.Separator != 0 {
				return nil, &domain.MalformedNumberError{
					Field:  domain.FieldCoefficient,
					Text:   string(s.Separator),
					Column: s.Column + 1,
				}
			}
			out := make(domain.Polynomial, len(s.Terms))
			copy(out, s.Terms)
			return out, nil
		}
	}

	s.Column++
	term, err := s.term()
	if err != nil {
		return nil, err
	}
	out := make(domain.Polynomial, 0, len(s.Terms)+1)
	out = append(out, s.Terms...)
	return append(out, term), nil
}

// closeTerm converts the buffers into a term and seeds the next coefficient with sign.
func (s ParserState) closeTerm(sign rune) (ParserState, error) {
	term, err := s.term()
	if err != nil {
		return s, err
	}

	s.Terms = append(slices.Clip(s.Terms), term)
	s.Coefficient = ""
	if sign == '-' {
		s.Coefficient = "-"
	}
	s.Exponent = ""
	s.Separator = sign
	s.State = domain.ReadingCoefficient
	return s, nil
}

func (s ParserState) term() (domain.Term, error) {
	coefficient, err := strconv.ParseFloat(s.Coefficient, 64)
	if err != nil {
		return domain.Term{}, &domain.MalformedNumberError{
			Field:  domain.FieldCoefficient,
			Text:   s.Coefficient,
			Column: s.Column,
			Err:    err,
		}
	}

	// A coefficient-only term has an implicit exponent of zero.
	if s.State == domain.ReadingCoefficient {
		return domain.Term{Coefficient: coefficient}, nil
	}

	exponent, err := strconv.ParseFloat(s.Exponent, 64)
	if err != nil {
		return domain.Term{}, &domain.MalformedNumberError{
			Field:  domain.FieldExponent,
			Text:   s.Exponent,
			Column: s.Column,
			Err:    err,
		}
	}
	return domain.Term{Coefficient: coefficient, Exponent: exponent}, nil
}

func (s ParserState) activeBuffer() string {
	switch s.State {
	case domain.ReadingCoefficient:
		return s.Coefficient
	case domain.ReadingExponent:
		return s.Exponent
	default:
		return ""
	}
}

func (s ParserState) invalid(r rune) error {
	return &domain.InvalidCharacterError{State: s.State, Char: r, Column: s.Column}
}

func isNumeral(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

func isSign(r rune) bool {
	return r == '+' || r == '-'
}

func endsWithNumeral(buf string) bool {
	return buf != "" && isNumeral(rune(buf[len(buf)-1]))
}

// Trace returns the initial state followed by the state after each character.
// On a syntax error the trace ends at the last state that accepted input.
func Trace(text string) ([]domain.ParseState, error) {
	s := Start()
	trace := []domain.ParseState{s.State}
	for _, r := range text {
		next, err := Step(s, r)
		if err != nil {
			return trace, err
		}
		s = next
		trace = append(trace, s.State)
	}
	_, err := Finish(s)
	return trace, err
}
