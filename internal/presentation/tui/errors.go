package tui

import (
	"strings"

	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/runner"
	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	inputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
)

// FormatError renders err with the input and a caret under the offending column.
// It satisfies runner.ErrorFormatter.
func FormatError(input string, err error) string {
	var sb strings.Builder
	sb.WriteString(errorStyle.Render("Error: " + err.Error()))

	col := domain.ErrorColumn(err)
	if col <= 0 {
		return sb.String()
	}

	sb.WriteString("\n  ")
	sb.WriteString(inputStyle.Render(runner.Printable(input)))
	sb.WriteString("\n  ")
	sb.WriteString(strings.Repeat(" ", col-1))
	sb.WriteString(caretStyle.Render("^"))
	return sb.String()
}
