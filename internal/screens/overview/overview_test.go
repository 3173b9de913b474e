package overview

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathtutor/internal/progress"
	"github.com/abhisek/mathtutor/internal/router"
)

func TestOverviewScreen_Empty(t *testing.T) {
	s := New(progress.NewTracker(nil))
	if !strings.Contains(s.View(80, 24), "עדיין אין התקדמות") {
		t.Error("expected empty-state message")
	}
}

func TestOverviewScreen_ListsOperations(t *testing.T) {
	tr := progress.NewTracker(nil)
	for range 3 {
		tr.RecordAttempt("algebra_solve", true)
	}
	tr.RecordAttempt("calculus_derive", false)

	view := New(tr).View(80, 24)
	for _, want := range []string{"פתרון משוואות", "גזירה", "בסיסי", "רצף 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestOverviewScreen_EnterPops(t *testing.T) {
	s := New(progress.NewTracker(nil))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
