package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/aretw0/deriv"
	"github.com/aretw0/deriv/pkg/domain"
)

// ResultPrefix introduces the derivative in interactive text output.
const ResultPrefix = "The derivative of the function is: "

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader         *bufio.Reader
	Writer         io.Writer
	Renderer       ContentRenderer
	ErrorFormatter ErrorFormatter

	// Format is FormatText or FormatLaTeX.
	Format Format
	// Prompt is printed before each read. Empty disables it.
	Prompt string
	// Bare drops ResultPrefix so only the derivative is printed.
	Bare bool

	inputChan chan inputResult
	startOnce sync.Once
	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerErrorFormatter configures how syntax errors are printed.
func WithTextHandlerErrorFormatter(formatter ErrorFormatter) TextHandlerOption {
	return func(h *TextHandler) {
		h.ErrorFormatter = formatter
	}
}

// WithTextHandlerFormat selects text or LaTeX rendering of the derivative.
func WithTextHandlerFormat(format Format) TextHandlerOption {
	return func(h *TextHandler) {
		h.Format = format
	}
}

// WithTextHandlerPrompt sets the prompt printed before each read.
func WithTextHandlerPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// WithTextHandlerBare prints only the derivative.
func WithTextHandlerBare(bare bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Bare = bare
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader:         bufio.NewReader(r),
		Writer:         w,
		Format:         FormatText,
		ErrorFormatter: PlainErrorFormatter,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump(h.doneChan())
	})
}

func (h *TextHandler) doneChan() chan struct{} {
	h.doneOnce.Do(func() {
		h.done = make(chan struct{})
	})
	return h.done
}

// Close stops the background reader. A read already blocked in the
// underlying reader returns only when that reader does; its line is dropped.
// Input returns io.EOF after Close.
func (h *TextHandler) Close() error {
	h.closeOnce.Do(func() {
		close(h.doneChan())
	})
	return nil
}

// pump reads lines in the background so Input can honour cancellation.
func (h *TextHandler) pump(done <-chan struct{}) {
	defer close(h.inputChan)
	send := func(res inputResult) bool {
		select {
		case h.inputChan <- res:
			return true
		case <-done:
			return false
		}
	}

	for {
		text, err := h.Reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" && !send(inputResult{text: text}) {
			return
		}

		if err != nil {
			if err != io.EOF {
				send(inputResult{err: err})
			}
			return
		}
	}
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-h.doneChan():
		return "", io.EOF
	default:
	}
	h.initPump()

	if h.Prompt != "" {
		fmt.Fprint(h.Writer, h.Prompt)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", fmt.Errorf("input error: %w", res.err)
		}
		return SanitizeInput(strings.TrimRight(res.text, "\r\n"))
	}
}

func (h *TextHandler) Output(ctx context.Context, d *domain.Derivation) error {
	result := d.Text
	if h.Format == FormatLaTeX {
		result = deriv.RenderLaTeX(d.Derivative)
	}

	output := result
	if !h.Bare {
		output = ResultPrefix + result
	}
	if h.Renderer != nil {
		if rendered, err := h.Renderer(output); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(output))
	return err
}

func (h *TextHandler) Error(ctx context.Context, input string, err error) error {
	formatter := h.ErrorFormatter
	if formatter == nil {
		formatter = PlainErrorFormatter
	}
	_, werr := fmt.Fprintln(h.Writer, formatter(input, err))
	return werr
}

// PlainErrorFormatter prints the error and, for syntax errors, the input with
// a caret under the offending column.
func PlainErrorFormatter(input string, err error) string {
	msg := "Error: " + err.Error()
	col := domain.ErrorColumn(err)
	if col <= 0 {
		return msg
	}
	return msg + "\n  " + Printable(input) + "\n  " + strings.Repeat(" ", col-1) + "^"
}

// Printable replaces control characters with one visible rune each so an echoed
// expression cannot drive the terminal and carets stay under their column.
func Printable(input string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case !unicode.IsControl(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		}
		return '?'
	}, input)
}
