package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// High priority: red to stand out
	colorHigh = color.New(color.FgRed, color.Bold)

	// Medium priority: yellow
	colorMedium = color.New(color.FgYellow)

	// Low priority: dim/grey
	colorLow = color.New(color.FgWhite, color.Faint)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Completed tasks: green check, muted text
	colorDone = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// applyColorMode configures color output from the config value.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	// "auto" keeps the library's own TTY detection.
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatDone formats text for completed tasks.
func formatDone(s string) string {
	return colorDone.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
