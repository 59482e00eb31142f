package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color names a presentation hint attached to a template.
type Color string

const (
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Cyan   Color = "cyan"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	ColorBlue    = lipgloss.Color("12")
	ColorGreen   = lipgloss.Color("10")
	ColorYellow  = lipgloss.Color("11")
	ColorCyan    = lipgloss.Color("14")
	ColorRed     = lipgloss.Color("196")
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (project names, template names).
	StyleNoun = lipgloss.NewStyle().Bold(true)

	// StyleHeading styles section headings such as the template list title.
	StyleHeading = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)

	// StyleDim styles secondary text (next steps, descriptions in info output).
	StyleDim = lipgloss.NewStyle().Foreground(ColorDimGray)

	// StyleSuccess styles the completion line.
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleError styles inline error messages shown to the operator.
	StyleError = lipgloss.NewStyle().Foreground(ColorRed)
)

// ColorStyle returns the foreground style for a template color.
// Unknown colors fall back to blue.
func ColorStyle(c Color) lipgloss.Style {
	switch c {
	case Green:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case Yellow:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case Cyan:
		return lipgloss.NewStyle().Foreground(ColorCyan)
	default:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	}
}

// Bullet renders the colored "●" marker used in template listings.
func Bullet(c Color) string {
	return ColorStyle(c).Render("●")
}
