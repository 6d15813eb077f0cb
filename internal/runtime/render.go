package runtime

import (
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/deriv/pkg/domain"
)

// Render converts p into display text: zero-coefficient terms are skipped,
// positive coefficients carry an explicit '+', the "^exponent" suffix is
// omitted for exponent zero, and a polynomial with nothing left renders as "0".
func Render(p domain.Polynomial) string {
	parts := make([]string, 0, len(p))
	for _, t := range p {
		if t.IsZero() {
			continue
		}
		var b strings.Builder
		if t.Coefficient > 0 {
			b.WriteByte('+')
		}
		b.WriteString(FormatNumber(t.Coefficient))
		if t.Exponent != 0 {
			b.WriteString("x^")
			b.WriteString(FormatNumber(t.Exponent))
		}
		parts = append(parts, b.String())
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}

// RenderLaTeX converts p into a LaTeX math fragment, e.g. "6x - 2x^{-3}".
func RenderLaTeX(p domain.Polynomial) string {
	var b strings.Builder
	for _, t := range p {
		if t.IsZero() {
			continue
		}
		abs := math.Abs(t.Coefficient)
		switch {
		case b.Len() == 0 && t.Coefficient < 0:
			b.WriteString("-")
		case b.Len() > 0 && t.Coefficient < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}

		switch {
		case t.Exponent == 0:
			b.WriteString(FormatNumber(abs))
			continue
		case abs != 1:
			b.WriteString(FormatNumber(abs))
		}
		b.WriteString("x")
		if t.Exponent != 1 {
			b.WriteString("^{")
			b.WriteString(FormatNumber(t.Exponent))
			b.WriteString("}")
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// FormatNumber prints v in the shortest decimal form the parser can read back
// (no exponent notation).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Key is the cache key of a parsed polynomial: its canonical rendering.
// Inputs that differ only in whitespace or sign spelling share a key.
func Key(p domain.Polynomial) string {
	return Render(p)
}
