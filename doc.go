/*
Package deriv parses single-variable polynomials written as "a*x^n" terms and
produces their symbolic derivative.

The core is two pure components consumed in sequence: a finite-state parser that
turns text into an ordered list of terms (failing atomically with a typed syntax
error), and a differentiator that applies the power rule, merges like terms and
sorts the result by descending exponent. Everything else (line reading, rendering,
HTTP, MCP, caching) is an adapter around those two functions.

# Grammar

A polynomial is a sequence of terms separated by '+' or '-':

	3x^2 + 4x^1.5 - 7x^-1 + 8.9

Each term is a coefficient followed by "x^" and an exponent; a coefficient-only
constant is accepted as the last term. Whitespace is ignored except between two
numerals, where it would glue two terms together. A bare "x" without "^exponent"
is not part of the grammar.

# Usage

	eng := deriv.New()

	d, err := eng.Derive(context.Background(), "3x^2 + 2x^1 + 1")
	if err != nil {
		var ic *domain.InvalidCharacterError
		if errors.As(err, &ic) {
			log.Printf("bad character %q in %s", ic.Char, ic.State)
		}
		log.Fatal(err)
	}
	fmt.Println(d.Text) // +6x^1 +2

The derivative of a constant (or of an empty input) is the canonical zero
{0, 0}, rendered as "0".
*/
package deriv
