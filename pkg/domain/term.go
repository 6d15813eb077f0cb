package domain

// Term represents one monomial: Coefficient * x^Exponent.
// A zero coefficient is allowed; normalization decides what to do with it.
type Term struct {
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
	Exponent    float64 `json:"exponent" yaml:"exponent"`
}

// IsZero reports whether the term contributes nothing to the polynomial.
func (t Term) IsZero() bool {
	return t.Coefficient == 0
}

// Polynomial is an ordered sequence of terms.
// Parser output keeps insertion order; differentiator output is sorted by
// strictly descending exponent.
type Polynomial []Term

// Zero is the canonical zero: the derivative of any constant.
func Zero() Polynomial {
	return Polynomial{{Coefficient: 0, Exponent: 0}}
}

// IsCanonicalZero reports whether p is exactly the canonical zero.
func (p Polynomial) IsCanonicalZero() bool {
	return len(p) == 1 && p[0].Coefficient == 0 && p[0].Exponent == 0
}

// Clone returns a copy that shares no backing array with p.
func (p Polynomial) Clone() Polynomial {
	if p == nil {
		return nil
	}
	out := make(Polynomial, len(p))
	copy(out, p)
	return out
}
