package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/deriv"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStructuredHandler_JSONLines(t *testing.T) {
	var out bytes.Buffer
	r := runner.NewRunner(
		runner.WithEngine(deriv.New()),
		runner.WithIO(strings.NewReader("3x^2 + 1\n\"2*x\"\n"), &out),
		runner.WithFormat(runner.FormatJSON),
		runner.WithREPL(true),
	)
	require.NoError(t, r.Run(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var d domain.Derivation
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &d))
	assert.Equal(t, "3x^2 + 1", d.Expression)
	assert.Equal(t, "+6x^1", d.Text)
	assert.Equal(t, domain.Polynomial{{Coefficient: 6, Exponent: 1}}, d.Derivative)
	assert.NotEmpty(t, d.ID)

	var rec runner.ErrorRecord
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "2*x", rec.Expression)
	assert.Equal(t, "invalid_character", rec.Kind)
	assert.Equal(t, 2, rec.Column)
}

func TestStructuredHandler_YAMLDocuments(t *testing.T) {
	var out bytes.Buffer
	h := runner.NewStructuredHandler(strings.NewReader(""), &out, runner.FormatYAML)
	ctx := context.Background()

	require.NoError(t, h.Output(ctx, &domain.Derivation{Expression: "1x^1", Text: "+1"}))
	require.NoError(t, h.Output(ctx, &domain.Derivation{Expression: "5", Text: "0"}))

	dec := yaml.NewDecoder(&out)
	var first, second domain.Derivation
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "+1", first.Text)
	assert.Equal(t, "0", second.Text)
}

func TestStructuredHandler_Input(t *testing.T) {
	h := runner.NewStructuredHandler(strings.NewReader("\"3x^2\"\r\n4x^1"), &bytes.Buffer{}, runner.FormatJSON)
	ctx := context.Background()

	got, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3x^2", got)

	got, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4x^1", got)

	_, err = h.Input(ctx)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := runner.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, runner.FormatText, f)

	f, err = runner.ParseFormat(" YAML ")
	require.NoError(t, err)
	assert.Equal(t, runner.FormatYAML, f)
	assert.True(t, f.Structured())

	_, err = runner.ParseFormat("xml")
	assert.Error(t, err)
}

func TestStructuredHandler_Overflow(t *testing.T) {
	var out bytes.Buffer
	expr := "1" + strings.Repeat("0", 308) + "x^10"
	r := runner.NewRunner(
		runner.WithEngine(deriv.New()),
		runner.WithIO(strings.NewReader(expr+"\n"), &out),
		runner.WithFormat(runner.FormatJSON),
		runner.WithREPL(true),
	)
	require.NoError(t, r.Run(context.Background()))

	var rec runner.ErrorRecord
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &rec))
	assert.Equal(t, "overflow", rec.Kind)
	assert.Equal(t, expr, rec.Expression)
}
