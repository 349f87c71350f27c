package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the lipgloss styles for text output.
var Styles = struct {
	Header lipgloss.Style
	Label  lipgloss.Style
	Danger lipgloss.Style
}{
	Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")), // Cyan
	Label:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),           // Gray
	Danger: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // Red
}

// styled applies a style only when w is a terminal, so piped and captured
// output stays byte-exact.
func styled(w io.Writer, style lipgloss.Style, s string) string {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return style.Render(s)
	}
	return s
}
