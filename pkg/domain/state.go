package domain

// ParseState is the tag of the polynomial parser state machine.
type ParseState int

const (
	ReadingCoefficient ParseState = iota // Initial state, also entered after each closed term
	ReadingCaret                         // Saw 'x', expecting '^'
	ReadingExponent                      // Accumulating exponent text
)

func (s ParseState) String() string {
	switch s {
	case ReadingCoefficient:
		return "coefficient"
	case ReadingCaret:
		return "caret"
	case ReadingExponent:
		return "exponent"
	default:
		return "unknown"
	}
}

// NumberField names the numeric part of a term.
type NumberField string

const (
	FieldCoefficient NumberField = "coefficient"
	FieldExponent    NumberField = "exponent"
)
