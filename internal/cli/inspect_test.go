package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/deriv/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Parse(ctx, "3x^2 -5x^0", "", &out))
		assert.Equal(t, "key: +3x^2 -5\n1. coefficient=3 exponent=2\n2. coefficient=-5 exponent=0\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Parse(ctx, "3x^2", "json", &out))

		var got parseOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "3x^2", got.Expression)
		assert.Equal(t, []domain.Term{{Coefficient: 3, Exponent: 2}}, got.Terms)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Parse(ctx, "", "YAML", &out))

		var got parseOutput
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		assert.Empty(t, got.Terms)
	})

	t.Run("syntax error", func(t *testing.T) {
		err := Parse(ctx, "3y^2", "text", &bytes.Buffer{})
		assert.True(t, errors.Is(err, domain.ErrSyntax))
	})

	t.Run("unknown format", func(t *testing.T) {
		err := Parse(ctx, "3x^2", "xml", &bytes.Buffer{})
		assert.ErrorContains(t, err, "unknown parse format")
	})
}

func TestGraph(t *testing.T) {
	var plain bytes.Buffer
	require.NoError(t, Graph("", &plain))
	assert.Contains(t, plain.String(), "graph LR")
	assert.NotContains(t, plain.String(), "classDef")

	var traced bytes.Buffer
	require.NoError(t, Graph("3y", &traced))
	assert.Contains(t, traced.String(), "classDef failed")
}
