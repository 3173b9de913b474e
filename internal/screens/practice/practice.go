// Package practice is the interactive practice screen.
package practice

import (
	"context"

	tea "charm.land/bubbletea/v2"

	prac "github.com/abhisek/mathtutor/internal/practice"
	"github.com/abhisek/mathtutor/internal/router"
	"github.com/abhisek/mathtutor/internal/screen"
	"github.com/abhisek/mathtutor/internal/ui/components"
	"github.com/abhisek/mathtutor/internal/ui/layout"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseGrading
	phaseFeedback
)

// PracticeScreen asks one question at a time and shows the grade.
type PracticeScreen struct {
	ctx      context.Context
	session  *prac.Session
	overview func() screen.Screen

	input    components.AnswerInput
	question prac.Question
	phase    phase
	last     *prac.Graded
	saveErr  error

	answered int
	correct  int
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)

// New creates the screen. overview builds the screen opened with Tab and
// may be nil.
func New(ctx context.Context, s *prac.Session, overview func() screen.Screen) *PracticeScreen {
	p := &PracticeScreen{
		ctx:      ctx,
		session:  s,
		overview: overview,
		input:    components.NewAnswerInput("הקלד תשובה...", 80),
	}
	p.question = s.NextQuestion()
	return p
}

func (p *PracticeScreen) Init() tea.Cmd {
	return p.input.Init()
}

func (p *PracticeScreen) Title() string {
	return "תרגול"
}

func (p *PracticeScreen) Status() string {
	return components.TierBadge(p.session.Progress().CurrentTier)
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	switch p.phase {
	case phaseGrading:
		return []layout.KeyHint{{Key: "...", Description: "בודק"}}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "השאלה הבאה"},
			{Key: "Ctrl+C", Description: "יציאה"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "בדיקה"}}
	if p.overview != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "התקדמות"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "יציאה"})
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradedMsg:
		p.last = &msg.Graded
		p.saveErr = msg.Err
		p.answered++
		if msg.Graded.Result.IsCorrect {
			p.correct++
		}
		p.phase = phaseFeedback
		return p, nil

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	if p.phase == phaseAnswering {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch p.phase {
	case phaseGrading:
		return p, nil

	case phaseFeedback:
		if msg.String() == "enter" {
			p.question = p.session.NextQuestion()
			p.input.Reset()
			p.last = nil
			p.saveErr = nil
			p.phase = phaseAnswering
		}
		return p, nil
	}

	switch msg.String() {
	case "enter":
		answer := p.input.Value()
		if answer == "" {
			return p, nil
		}
		p.phase = phaseGrading
		return p, p.grade(p.question, answer)
	case "tab":
		if p.overview != nil {
			return p, router.Push(p.overview())
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// grade runs the verifier off the UI loop.
func (p *PracticeScreen) grade(q prac.Question, answer string) tea.Cmd {
	ctx, s := p.ctx, p.session
	return func() tea.Msg {
		g, err := s.Grade(ctx, q, answer)
		return gradedMsg{Graded: g, Err: err}
	}
}
