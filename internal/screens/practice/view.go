package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathtutor/internal/progress"
	"github.com/abhisek/mathtutor/internal/ui/components"
	"github.com/abhisek/mathtutor/internal/ui/theme"
)

func (p *PracticeScreen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	op := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render("  " + progress.DisplayName(p.session.Operation()))
	score := theme.Hint.Render(fmt.Sprintf("%d/%d נכונות", p.correct, p.answered))
	b.WriteString(op + strings.Repeat(" ", max(1, width-lipgloss.Width(op)-lipgloss.Width(score)-2)) + score)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-2))))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(p.question.Question))
	b.WriteString("\n\n")

	switch p.phase {
	case phaseGrading:
		b.WriteString(center.Render(theme.Hint.Render("בודק את התשובה...")))
	case phaseFeedback:
		b.WriteString(p.renderFeedback(width))
	default:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.input.View()))
	}
	b.WriteString("\n\n")

	bar := components.TierProgressBar(p.session.Progress(), min(width-4, 50))
	bar.Label = "לדרגה הבאה"
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	return b.String()
}

func (p *PracticeScreen) renderFeedback(width int) string {
	g := p.last
	if g == nil {
		return ""
	}
	res := g.Result

	style, mark := theme.Incorrect, "✗"
	switch {
	case res.IsCorrect:
		style, mark = theme.Correct, "✓"
	case res.IsPartial:
		style, mark = theme.PartialCredit, "~"
	}

	lines := []string{style.Render(mark + " " + res.Feedback)}
	if res.Explanation != "" {
		lines = append(lines, theme.Body.Render(res.Explanation))
	}
	if res.WhatCorrect != "" {
		lines = append(lines, theme.Correct.Render("נכון: ")+theme.Body.Render(res.WhatCorrect))
	}
	if res.WhatMissing != "" {
		lines = append(lines, theme.Incorrect.Render("חסר: ")+theme.Body.Render(res.WhatMissing))
	}
	if !res.IsCorrect {
		lines = append(lines, theme.Hint.Render("התשובה הנכונה: "+g.Question.Answer))
	}
	if g.Promotion != nil {
		lines = append(lines, "", theme.Title.Render("עלית דרגה!")+"  "+components.TierBadge(g.Promotion.ToTier))
	}
	if p.saveErr != nil {
		lines = append(lines, theme.Incorrect.Render("שמירת ההתקדמות נכשלה: "+p.saveErr.Error()))
	}

	card := theme.Card.Width(min(width-4, 70)).Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
