package runtime_test

import (
	"math/rand"
	"testing"

	"github.com/aretw0/deriv/internal/runtime"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifferentiate(t *testing.T) {
	tests := []struct {
		name  string
		input domain.Polynomial
		want  domain.Polynomial
	}{
		{
			name: "Vanilla",
			input: domain.Polynomial{
				{Coefficient: 3, Exponent: -2},
				{Coefficient: -2, Exponent: 1},
				{Coefficient: -1, Exponent: 0},
			},
			want: domain.Polynomial{
				{Coefficient: -2, Exponent: 0},
				{Coefficient: -6, Exponent: -3},
			},
		},
		{
			name: "Constant Term Drops",
			input: domain.Polynomial{
				{Coefficient: 3, Exponent: 2},
				{Coefficient: 2, Exponent: 1},
				{Coefficient: 1, Exponent: 0},
			},
			want: domain.Polynomial{
				{Coefficient: 6, Exponent: 1},
				{Coefficient: 2, Exponent: 0},
			},
		},
		{
			name: "Like Terms Merge",
			input: domain.Polynomial{
				{Coefficient: 1, Exponent: 3},
				{Coefficient: 5, Exponent: 1},
				{Coefficient: 2, Exponent: 3},
			},
			want: domain.Polynomial{
				{Coefficient: 9, Exponent: 2},
				{Coefficient: 5, Exponent: 0},
			},
		},
		{
			name: "Cancelling Terms Stay As Zero Coefficient",
			input: domain.Polynomial{
				{Coefficient: 1, Exponent: 2},
				{Coefficient: -1, Exponent: 2},
			},
			want: domain.Polynomial{{Coefficient: 0, Exponent: 1}},
		},
		{
			name:  "Zero Coefficient",
			input: domain.Polynomial{{Coefficient: 0, Exponent: 98}},
			want:  domain.Zero(),
		},
		{
			name:  "Zero Exponent",
			input: domain.Polynomial{{Coefficient: 3, Exponent: 0}},
			want:  domain.Zero(),
		},
		{
			name:  "Empty",
			input: domain.Polynomial{},
			want:  domain.Zero(),
		},
		{
			name:  "Nil",
			input: nil,
			want:  domain.Zero(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.Differentiate(tt.input))
		})
	}
}

func TestDifferentiate_Fractional(t *testing.T) {
	got := runtime.Differentiate(domain.Polynomial{{Coefficient: -3.83, Exponent: 2.5}})
	require.Len(t, got, 1)
	assert.InDelta(t, -9.575, got[0].Coefficient, 1e-9)
	assert.InDelta(t, 1.5, got[0].Exponent, 1e-9)

	parsed, err := runtime.Parse("-3.83x^2.9")
	require.NoError(t, err)
	got = runtime.Differentiate(parsed)
	require.Len(t, got, 1)
	assert.InDelta(t, -11.107, got[0].Coefficient, 1e-9)
	assert.InDelta(t, 1.9, got[0].Exponent, 1e-9)
}

func TestDifferentiate_PowerRule(t *testing.T) {
	for _, c := range []float64{-7, -1, 0.5, 1, 3.25} {
		for _, e := range []float64{-3, -0.5, 1, 2, 10} {
			got := runtime.Differentiate(domain.Polynomial{{Coefficient: c, Exponent: e}})
			assert.Equal(t, domain.Polynomial{{Coefficient: c * e, Exponent: e - 1}}, got, "c=%v e=%v", c, e)
		}
	}
}

func TestDifferentiate_ConstantsVanish(t *testing.T) {
	input := domain.Polynomial{
		{Coefficient: 4, Exponent: 0},
		{Coefficient: 0, Exponent: 5},
		{Coefficient: -2.5, Exponent: 0},
		{Coefficient: 0, Exponent: -1},
	}
	assert.Equal(t, domain.Zero(), runtime.Differentiate(input))
}

func TestDifferentiate_StrictlyDescending(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		input := make(domain.Polynomial, rng.Intn(12))
		for j := range input {
			input[j] = domain.Term{
				Coefficient: float64(rng.Intn(21) - 10),
				Exponent:    float64(rng.Intn(13) - 6),
			}
		}

		got := runtime.Differentiate(input)
		require.NotEmpty(t, got)
		for j := 1; j < len(got); j++ {
			assert.Greater(t, got[j-1].Exponent, got[j].Exponent, "input %v", input)
		}
	}
}

func TestDifferentiate_DoesNotMutateInput(t *testing.T) {
	input := domain.Polynomial{
		{Coefficient: 1, Exponent: 2},
		{Coefficient: 4, Exponent: 3},
	}
	before := input.Clone()

	_ = runtime.Differentiate(input)
	assert.Equal(t, before, input)
}

func TestCheckFinite(t *testing.T) {
	big := domain.Polynomial{{Coefficient: 1e308, Exponent: 10}}
	got := runtime.Differentiate(big)

	err := runtime.CheckFinite(got)
	require.ErrorIs(t, err, domain.ErrOverflow)

	var oe *domain.OverflowError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 9.0, oe.Exponent)
	assert.Equal(t, "overflow", domain.ErrorKind(err))

	// Like terms can cancel into NaN.
	nan := runtime.Differentiate(domain.Polynomial{{Coefficient: 1e308, Exponent: 10}, {Coefficient: -1e308, Exponent: 10}})
	assert.ErrorIs(t, runtime.CheckFinite(nan), domain.ErrOverflow)

	assert.NoError(t, runtime.CheckFinite(runtime.Differentiate(domain.Polynomial{{Coefficient: 3, Exponent: 2}})))
	assert.NoError(t, runtime.CheckFinite(domain.Zero()))
}
