package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathtutor/internal/progress"
	"github.com/abhisek/mathtutor/internal/ui/theme"
)

// TierBadge renders "★ <level> <name>" on the tier's color.
func TierBadge(level int) string {
	tier := progress.TierByLevel(level)
	return lipgloss.NewStyle().
		Background(theme.TierColor(tier.Color)).
		Foreground(theme.BgCard).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("★ %d %s", tier.Level, tier.Name))
}
