// Package style provides styled terminal error output for the CLI.
// Styling is skipped entirely when stderr isn't a terminal, so piped
// output and CI logs stay plain.
package style

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C"))

// internalErrorStyle marks ImplementationError failures distinctly so a
// user recognizes a bug report, not a mistake in their template, is
// warranted.
var internalErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F4D03F"))

// IsTerminal reports whether w is an interactive terminal worth styling.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Error renders an error message for w, styled red-bold when w is a
// terminal and left plain otherwise.
func Error(w io.Writer, msg string) string {
	if IsTerminal(w) {
		return errorStyle.Render("error: " + msg)
	}
	return "error: " + msg
}

// InternalError renders an internal-error message, styled amber-bold on a
// terminal.
func InternalError(w io.Writer, msg string) string {
	text := fmt.Sprintf("internal error: %s", msg)
	if IsTerminal(w) {
		return internalErrorStyle.Render(text)
	}
	return text
}
