// Package app hosts the root Bubble Tea model of the practice UI.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathtutor/internal/router"
	"github.com/abhisek/mathtutor/internal/screen"
	"github.com/abhisek/mathtutor/internal/ui/layout"
)

// AppModel frames the active screen with a header and footer.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// NewAppModel creates a model showing root.
func NewAppModel(root screen.Screen) AppModel {
	return AppModel{router: router.New(root)}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)

	hints := []layout.KeyHint{{Key: "Esc", Description: "יציאה"}}
	if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "חזרה"}}
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the program on root and blocks until the learner quits.
func Run(root screen.Screen) error {
	_, err := tea.NewProgram(NewAppModel(root)).Run()
	return err
}
