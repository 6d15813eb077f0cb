package runtime

import "github.com/aretw0/deriv/pkg/domain"

var transitions = []domain.Transition{
	{From: domain.ReadingCoefficient, To: domain.ReadingCoefficient, On: "digit / ."},
	{From: domain.ReadingCoefficient, To: domain.ReadingCoefficient, On: "+ / -"},
	{From: domain.ReadingCoefficient, To: domain.ReadingCaret, On: "x"},
	{From: domain.ReadingCaret, To: domain.ReadingExponent, On: "^"},
	{From: domain.ReadingExponent, To: domain.ReadingExponent, On: "digit / ."},
	{From: domain.ReadingExponent, To: domain.ReadingExponent, On: "leading + / -"},
	{From: domain.ReadingExponent, To: domain.ReadingCoefficient, On: "+ / -", Closes: true},
}

// Transitions returns the parser transition table.
// Every pair not listed is an invalid character.
func Transitions() []domain.Transition {
	out := make([]domain.Transition, len(transitions))
	copy(out, transitions)
	return out
}

// Accepting reports whether input may end in state s.
func Accepting(s domain.ParseState) bool {
	return s == domain.ReadingCoefficient || s == domain.ReadingExponent
}
