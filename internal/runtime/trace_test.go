package runtime_test

import (
	"testing"

	"github.com/aretw0/deriv/internal/runtime"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	c, k, e := domain.ReadingCoefficient, domain.ReadingCaret, domain.ReadingExponent

	got, err := runtime.Trace("3x^2+1")
	require.NoError(t, err)
	assert.Equal(t, []domain.ParseState{c, c, k, e, e, c, c}, got)
}

func TestTrace_StopsAtError(t *testing.T) {
	got, err := runtime.Trace("2*x")
	assert.ErrorIs(t, err, domain.ErrSyntax)
	assert.Equal(t, []domain.ParseState{domain.ReadingCoefficient, domain.ReadingCoefficient}, got)

	got, err = runtime.Trace("3x")
	assert.ErrorIs(t, err, domain.ErrSyntax)
	assert.Equal(t, []domain.ParseState{domain.ReadingCoefficient, domain.ReadingCoefficient, domain.ReadingCaret}, got)
}
