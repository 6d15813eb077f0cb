package runtime

import (
	"cmp"
	"math"
	"slices"

	"github.com/aretw0/deriv/pkg/domain"
)

// Differentiate returns the derivative of p: power rule per term, like terms
// merged by exact exponent equality, sorted by descending exponent.
// The input is never modified. A derivative with no terms is the canonical zero.
func Differentiate(p domain.Polynomial) domain.Polynomial {
	differentiated := make(domain.Polynomial, 0, len(p))
	for _, t := range p {
		// d/dx of a constant or of 0*x^n contributes nothing.
		if t.Exponent == 0 || t.Coefficient == 0 {
			continue
		}
		differentiated = append(differentiated, domain.Term{
			Coefficient: t.Coefficient * t.Exponent,
			Exponent:    t.Exponent - 1,
		})
	}

	result := make(domain.Polynomial, 0, len(differentiated))
	for _, t := range differentiated {
		result = mergeLike(result, t)
	}

	slices.SortStableFunc(result, func(a, b domain.Term) int {
		return cmp.Compare(b.Exponent, a.Exponent)
	})

	if len(result) == 0 {
		return domain.Zero()
	}
	return result
}

// mergeLike adds t into the term of acc sharing its exponent, or appends it.
// Exponents are compared exactly: they only ever move by one power-rule step.
func mergeLike(acc domain.Polynomial, t domain.Term) domain.Polynomial {
	for i := range acc {
		if acc[i].Exponent == t.Exponent {
			acc[i].Coefficient += t.Coefficient
			return acc
		}
	}
	return append(acc, t)
}

// CheckFinite returns an *domain.OverflowError for the first term of p whose
// coefficient is infinite or NaN. Parsed input is always finite, but the power
// rule and like-term merging can push a coefficient past the float64 range.
func CheckFinite(p domain.Polynomial) error {
	for _, t := range p {
		if math.IsInf(t.Coefficient, 0) || math.IsNaN(t.Coefficient) {
			return &domain.OverflowError{Exponent: t.Exponent}
		}
	}
	return nil
}
