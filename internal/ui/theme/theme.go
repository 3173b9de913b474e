// Package theme holds the colors and styles of the practice terminal UI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette.
var (
	Primary   = lipgloss.Color("#8B5CF6") // purple
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Partial   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// tierColors resolves the color tags of progress.Tier.
var tierColors = map[string]color.Color{
	"gray":   lipgloss.Color("#9CA3AF"),
	"green":  lipgloss.Color("#22C55E"),
	"teal":   lipgloss.Color("#14B8A6"),
	"blue":   lipgloss.Color("#3B82F6"),
	"purple": lipgloss.Color("#8B5CF6"),
	"orange": lipgloss.Color("#F97316"),
	"gold":   lipgloss.Color("#EAB308"),
}

// TierColor returns the color for a tier color tag. Unknown tags are dim.
func TierColor(tag string) color.Color {
	if c, ok := tierColors[tag]; ok {
		return c
	}
	return TextDim
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Grade styles.
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	PartialCredit = lipgloss.NewStyle().
			Foreground(Partial).
			Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
