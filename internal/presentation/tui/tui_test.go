package tui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aretw0/deriv/internal/presentation/tui"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	err := &domain.InvalidCharacterError{State: domain.ReadingCoefficient, Char: '*', Column: 2}
	out := tui.FormatError("2*x", err)

	assert.Contains(t, out, "invalid character '*' in coefficient at column 2")
	assert.Contains(t, out, "2*x")
	assert.Contains(t, out, "^")
}

func TestFormatError_NoColumn(t *testing.T) {
	out := tui.FormatError("", errors.New("boom"))
	assert.Contains(t, out, "Error: boom")
	assert.NotContains(t, out, "^")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "__| | ___ _ __(_)_   __")
}
