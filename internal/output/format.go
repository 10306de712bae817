// Package output provides terminal output formatting utilities for the
// relnotes CLI. It is kept free of other internal dependencies to avoid
// import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 when
// unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTTY reports whether stdout is a terminal. Spinners and colors are
// suppressed when it is not.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintSuccess prints a green checkmark line for a completed step.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// PrintSectionCount prints one per-section entry count line.
func PrintSectionCount(out io.Writer, name string, count int) {
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "  %s %s\n", cyan(name), dim(fmt.Sprintf("(%d)", count)))
}

// Spinner wraps the progress spinner shown while git history is read.
// It degrades to a no-op on non-TTY output.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner starts a spinner with the given suffix text. Returns a
// no-op spinner when stdout is not a terminal.
func StartSpinner(message string) *Spinner {
	if !IsTTY() {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	return &Spinner{s: s}
}

// Stop stops the spinner, leaving the cursor on a clean line.
func (sp *Spinner) Stop() {
	if sp.s != nil {
		sp.s.Stop()
	}
}
