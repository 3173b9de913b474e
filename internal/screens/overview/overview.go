// Package overview renders the progression of every tracked operation.
package overview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathtutor/internal/progress"
	"github.com/abhisek/mathtutor/internal/router"
	"github.com/abhisek/mathtutor/internal/screen"
	"github.com/abhisek/mathtutor/internal/ui/components"
	"github.com/abhisek/mathtutor/internal/ui/layout"
	"github.com/abhisek/mathtutor/internal/ui/theme"
)

// OverviewScreen lists tier, accuracy and streak per operation.
type OverviewScreen struct {
	tracker *progress.Tracker
}

var _ screen.Screen = (*OverviewScreen)(nil)
var _ screen.KeyHintProvider = (*OverviewScreen)(nil)

func New(t *progress.Tracker) *OverviewScreen {
	return &OverviewScreen{tracker: t}
}

func (s *OverviewScreen) Init() tea.Cmd { return nil }

func (s *OverviewScreen) Title() string { return "ההתקדמות שלי" }

func (s *OverviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "חזרה"},
		{Key: "Ctrl+C", Description: "יציאה"},
	}
}

func (s *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "enter", "q":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *OverviewScreen) View(width, height int) string {
	all := s.tracker.AllProgress()
	if len(all) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\nעדיין אין התקדמות. בוא נתרגל!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, info := range all {
		name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(progress.DisplayName(info.Key))
		b.WriteString("  " + components.TierBadge(info.CurrentTier) + "  " + name + "\n")

		bar := components.TierProgressBar(info, min(width-6, 50))
		b.WriteString("  " + bar.View() + "\n")

		stats := fmt.Sprintf("דיוק %.1f%%   רצף %d   %d/%d נכונות",
			info.Accuracy, info.Streak, info.TotalCorrect, info.TotalAttempts)
		b.WriteString("  " + theme.Hint.Render(stats) + "\n\n")
	}
	return b.String()
}
