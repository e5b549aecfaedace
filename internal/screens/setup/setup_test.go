package setup

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abiraja/parley/internal/llm"
	"github.com/abiraja/parley/internal/router"
	sess "github.com/abiraja/parley/internal/session"
	"github.com/abiraja/parley/internal/tutor"
)

func newTestSetup() (*SetupScreen, *sess.Session) {
	state := sess.New()
	engine := tutor.New(llm.NewMockProvider(), nil, tutor.DefaultConfig())
	return New(state, engine, nil), state
}

func enter() tea.Msg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestSubmitWithEmptyFieldsShowsError(t *testing.T) {
	s, state := newTestSetup()
	s.focus = focusLevel

	_, cmd := s.Update(enter())
	if cmd != nil {
		t.Error("expected no navigation on invalid submit")
	}
	if s.errMsg == "" {
		t.Error("expected a validation message")
	}
	if state.Stage != sess.StageSetup {
		t.Errorf("Stage = %v, want StageSetup", state.Stage)
	}
}

func TestValidSubmitAdvancesToSceneSelection(t *testing.T) {
	s, state := newTestSetup()
	s.target.SetValue("Spanish")
	s.native.SetValue("English")
	s.focus = focusLevel

	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}

	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}

	if state.Stage != sess.StageSceneSelection {
		t.Errorf("Stage = %v, want StageSceneSelection", state.Stage)
	}
	if state.TargetLang != "Spanish" || state.NativeLang != "English" {
		t.Errorf("languages not stored: %+v", state)
	}
	// First menu item is the default level.
	if state.Level != "Beginner" {
		t.Errorf("Level = %q, want Beginner", state.Level)
	}
	if s.errMsg != "" {
		t.Errorf("errMsg = %q after valid submit", s.errMsg)
	}
}

func TestEnterOnTextFieldAdvancesFocus(t *testing.T) {
	s, _ := newTestSetup()
	s.target.SetValue("Spanish")

	_, _ = s.Update(enter())
	if s.focus != focusNative {
		t.Errorf("focus = %d, want focusNative", s.focus)
	}

	s.native.SetValue("English")
	_, _ = s.Update(enter())
	if s.focus != focusLevel {
		t.Errorf("focus = %d, want focusLevel", s.focus)
	}
}

func TestUpFromLevelMenuReturnsToFields(t *testing.T) {
	s, _ := newTestSetup()
	s.focus = focusLevel
	s.levels.Selected = 1

	// Within the menu, up moves the selection.
	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.focus != focusLevel {
		t.Fatalf("focus = %d, want focusLevel", s.focus)
	}
	if s.levels.Selected != 0 {
		t.Fatalf("Selected = %d, want 0", s.levels.Selected)
	}

	// At the top row, up leaves the menu for the native-language field.
	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.focus != focusNative {
		t.Errorf("focus = %d, want focusNative", s.focus)
	}
}

func TestTabCyclesFocus(t *testing.T) {
	s, _ := newTestSetup()

	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.focus != focusNative {
		t.Errorf("focus = %d after tab, want focusNative", s.focus)
	}
	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.focus != focusLevel {
		t.Errorf("focus = %d after two tabs, want focusLevel", s.focus)
	}
	_, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.focus != focusTarget {
		t.Errorf("focus = %d after three tabs, want focusTarget", s.focus)
	}
}
