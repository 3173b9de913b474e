package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathtutor/internal/progress"
	"github.com/abhisek/mathtutor/internal/ui/theme"
)

// ProgressBar is a horizontal bar filled to Percent (0.0-1.0).
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string // drawn after the bar, e.g. "2/4"
	Width   int
	Fill    color.Color
}

// TierProgressBar shows how far info is toward its next tier. A learner on
// the terminal tier gets a full bar.
func TierProgressBar(info progress.ProgressInfo, width int) ProgressBar {
	bar := ProgressBar{
		Width: width,
		Fill:  theme.TierColor(info.TierColor),
	}
	if info.IsMaxTier {
		bar.Percent = 1
		bar.Suffix = "מקסימום"
		return bar
	}
	if info.RequiredForNext > 0 {
		bar.Percent = float64(info.CorrectInTier) / float64(info.RequiredForNext)
	}
	bar.Suffix = fmt.Sprintf("%d/%d", info.CorrectInTier, info.RequiredForNext)
	return bar
}

// View renders the bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + p.Suffix)
	}

	barWidth := max(4, p.Width-lipgloss.Width(result)-lipgloss.Width(suffix))
	filled := min(barWidth, max(0, int(float64(barWidth)*p.Percent)))

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	return result + suffix
}
