package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// renderer binds color-profile detection to stderr, where every reporter
// line goes. The package-level lipgloss constructors key off stdout, which
// is the wrong stream here: redirecting stderr to a file must disable
// colors even when stdout is a terminal, and vice versa.
var renderer = lipgloss.NewRenderer(os.Stderr)

// Color constants using the ANSI 256-color palette.
const (
	// ColorInfo is used for informational markers (bright blue).
	ColorInfo = lipgloss.Color("39")

	// ColorSuccess is used for completion markers (green).
	ColorSuccess = lipgloss.Color("42")

	// ColorWarning is used for warning markers (orange/yellow).
	ColorWarning = lipgloss.Color("214")

	// ColorDanger is used for error markers (red).
	ColorDanger = lipgloss.Color("196")
)

// Marker styles for the four message categories.
var (
	InfoStyle = renderer.NewStyle().
			Foreground(ColorInfo)

	SuccessStyle = renderer.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	WarningStyle = renderer.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = renderer.NewStyle().
			Bold(true).
			Foreground(ColorDanger)
)
