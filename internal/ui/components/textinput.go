package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput is a focused single-line answer field.
type AnswerInput struct {
	Model textinput.Model
}

// NewAnswerInput creates an input limited to charLimit runes.
func NewAnswerInput(placeholder string, charLimit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Focus()
	return AnswerInput{Model: ti}
}

func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the trimmed answer.
func (a AnswerInput) Value() string {
	return strings.TrimSpace(a.Model.Value())
}

// Reset clears the field for the next question.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
}
