/*
Package domain contains the core data model of the deriv engine.

It defines the polynomial representation consumed and produced by the parser
and the differentiator, the parser state tags, the syntax error taxonomy, and the
lifecycle events emitted around each operation. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Term: a single monomial coefficient*x^exponent.
  - Polynomial: an ordered sequence of Terms.
  - ParseState: the tag of the parser state machine (coefficient, caret, exponent).
  - InvalidCharacterError / MalformedNumberError: the two kinds of syntax error.
  - Derivation: the persisted record of one parse and differentiate run.
*/
package domain
