package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/deriv/pkg/domain"
	"gopkg.in/yaml.v3"
)

// StructuredHandler implements IOHandler for machine-readable output.
// JSON mode writes one object per line; YAML mode writes one document per derivation.
type StructuredHandler struct {
	Reader *bufio.Reader
	Writer io.Writer
	Format Format

	written int
}

// ErrorRecord is the structured form of a failed derivation.
type ErrorRecord struct {
	Expression string `json:"expression" yaml:"expression"`
	Error      string `json:"error" yaml:"error"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Column     int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// NewStructuredHandler creates a handler for JSON or YAML output.
func NewStructuredHandler(r io.Reader, w io.Writer, format Format) *StructuredHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	if !format.Structured() {
		format = FormatJSON
	}
	return &StructuredHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Format: format,
	}
}

func (h *StructuredHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}

	text = strings.TrimRight(text, "\r\n")

	// A JSON string literal is accepted as well as raw text.
	var val string
	if json.Unmarshal([]byte(strings.TrimSpace(text)), &val) == nil {
		text = val
	}
	return SanitizeInput(text)
}

func (h *StructuredHandler) Output(ctx context.Context, d *domain.Derivation) error {
	return h.encode(d)
}

func (h *StructuredHandler) Error(ctx context.Context, input string, err error) error {
	return h.encode(ErrorRecord{
		Expression: input,
		Error:      err.Error(),
		Kind:       domain.ErrorKind(err),
		Column:     domain.ErrorColumn(err),
	})
}

func (h *StructuredHandler) encode(v any) error {
	defer func() { h.written++ }()

	if h.Format == FormatJSON {
		return json.NewEncoder(h.Writer).Encode(v)
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	if h.written > 0 {
		if _, err := io.WriteString(h.Writer, "---\n"); err != nil {
			return err
		}
	}
	_, err = h.Writer.Write(data)
	return err
}
