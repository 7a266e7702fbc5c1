// Package style holds the console styles used for stuckbar's narration.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	// Notice announces a step about to run.
	Notice = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// Heading announces a multi-step operation.
	Heading = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	// Success renders a step that succeeded.
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// Failure renders a step that failed.
	Failure = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	// Done renders the final line of a successful multi-step operation.
	Done = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)

	// Fatal renders errors that abort the command.
	Fatal = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// IsTerminal returns true if stdout is connected to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ShouldUseColor reports whether ANSI colors should be emitted.
// Respects NO_COLOR, CLICOLOR and CLICOLOR_FORCE.
func ShouldUseColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if _, exists := os.LookupEnv("CLICOLOR_FORCE"); exists {
		return true
	}
	return IsTerminal()
}

// Configure sets the global color profile. With disabled set, or when
// ShouldUseColor says no, every style renders plain text.
func Configure(disabled bool) {
	if disabled || !ShouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ANSI)
}
