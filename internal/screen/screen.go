// Package screen defines the contract between the app model and its screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathtutor/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, without header or footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen put a status, such as a tier badge, in the
// header.
type StatusProvider interface {
	Status() string
}
