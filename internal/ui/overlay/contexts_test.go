package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/focus/internal/domain"
)

func testContexts() []domain.WorkContext {
	return []domain.WorkContext{
		{ID: "inbox", Type: domain.ContextProject, Title: "Inbox"},
		{ID: "work", Type: domain.ContextProject, Title: "Work"},
		{ID: "urgent", Type: domain.ContextTag},
	}
}

func chosen(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(ContextChosenMsg)
	if !ok {
		t.Fatalf("expected ContextChosenMsg, got %T", cmd())
	}
	return msg.ContextID
}

func TestContextPicker_StartsOnActive(t *testing.T) {
	p := NewContextPicker(testContexts(), "work")

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := chosen(t, cmd); got != "work" {
		t.Errorf("expected work, got %s", got)
	}
}

func TestContextPicker_Navigate(t *testing.T) {
	p := NewContextPicker(testContexts(), "inbox")

	p.Update(runeKey('k'))
	p.Update(runeKey('j'))
	p.Update(runeKey('j'))
	p.Update(runeKey('j'))

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := chosen(t, cmd); got != "urgent" {
		t.Errorf("expected cursor clamped on urgent, got %s", got)
	}
}

func TestContextPicker_Empty(t *testing.T) {
	p := NewContextPicker(nil, "")

	if !strings.Contains(p.View(), "No contexts") {
		t.Error("expected empty message")
	}
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := cmd().(CloseOverlayMsg); !ok {
		t.Error("expected enter on empty picker to close")
	}
}

func TestContextPicker_View(t *testing.T) {
	view := NewContextPicker(testContexts(), "inbox").View()

	for _, want := range []string{"Inbox", "Work", "urgent", "tag", "project"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
