// Package display runs the terminal animation loop: pre-rendered
// frames cycled at a fixed rate until the user quits. Frames are
// plain strings, so callers compose them from the render helpers in
// this package and whatever captions they want.
package display

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	captionColor = lipgloss.Color("#A78BFA") // Light purple
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// Styles for the display loop.
var (
	// CaptionStyle for the part label under each frame.
	CaptionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(captionColor)

	// HelpStyle for the quit hint.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)
