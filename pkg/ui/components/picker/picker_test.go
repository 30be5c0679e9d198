package picker

import (
	"fmt"
	"strings"
	"testing"

	"geminal/pkg/ui/components/testutils"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func items(labels ...string) []Item {
	out := make([]Item, len(labels))
	for i, label := range labels {
		out[i] = Item{Label: label}
	}
	return out
}

func TestPanel_ShowHighlightsCurrent(t *testing.T) {
	p := NewPanel()
	p.SetSize(80, 24)
	p.Show("Load conversation", "load", items("alpha", "beta", "gamma"), 2)

	if !p.IsVisible() {
		t.Fatal("Expected picker to be visible after Show")
	}
	if p.Selected() != 2 {
		t.Fatalf("Expected selected=2, got %d", p.Selected())
	}

	p.Show("Load conversation", "load", items("alpha"), 7)
	if p.Selected() != 0 {
		t.Fatalf("Expected out of range current to clamp to 0, got %d", p.Selected())
	}
}

func TestPanel_EnterEmitsSelect(t *testing.T) {
	p := NewPanel()
	p.SetSize(80, 24)
	p.Show("Delete conversation", "delete", items("alpha", "beta"), 0)

	p.Update(testutils.TestKeyDown)
	cmd := p.Update(testutils.TestKeyEnter)
	if cmd == nil {
		t.Fatal("Expected select command")
	}
	msg, ok := cmd().(SelectMsg)
	if !ok {
		t.Fatalf("Expected SelectMsg, got %T", cmd())
	}
	if msg.Key != "delete" || msg.Index != 1 || msg.Item.Label != "beta" {
		t.Fatalf("Unexpected selection %+v", msg)
	}
	if p.IsVisible() {
		t.Fatal("Expected picker to close after selection")
	}
}

func TestPanel_NumberShortcut(t *testing.T) {
	p := NewPanel()
	p.SetSize(80, 24)
	p.Show("Menu", "menu", items("one", "two", "three"), 0)

	if cmd := p.Update(testutils.NewTextKeyPressMsg("7")); cmd != nil {
		t.Fatal("Expected out of range shortcut to be ignored")
	}
	if !p.IsVisible() {
		t.Fatal("Expected picker to stay open")
	}

	cmd := p.Update(testutils.NewTextKeyPressMsg("3"))
	if cmd == nil {
		t.Fatal("Expected select command")
	}
	msg := cmd().(SelectMsg)
	if msg.Index != 2 || msg.Item.Label != "three" {
		t.Fatalf("Unexpected selection %+v", msg)
	}
}

func TestPanel_EscCancels(t *testing.T) {
	p := NewPanel()
	p.SetSize(80, 24)
	p.Show("Menu", "menu", items("one"), 0)

	cmd := p.Update(testutils.TestKeyEsc)
	if cmd == nil {
		t.Fatal("Expected cancel command")
	}
	if msg, ok := cmd().(CancelMsg); !ok || msg.Key != "menu" {
		t.Fatalf("Expected CancelMsg for menu, got %#v", cmd())
	}
	if p.IsVisible() {
		t.Fatal("Expected picker to be hidden after Esc")
	}
}

func TestPanel_EmptyEnterDoesNothing(t *testing.T) {
	p := NewPanel()
	p.Show("Empty", "empty", nil, 0)

	if cmd := p.Update(testutils.TestKeyEnter); cmd != nil {
		t.Fatal("Expected nil command for empty list")
	}
	if !strings.Contains(ansi.Strip(p.View()), "Nothing to choose from") {
		t.Fatal("Expected empty notice in view")
	}
}

func TestPanel_ScrollsWithNavigation(t *testing.T) {
	p := NewPanel()
	p.SetSize(80, 10)

	labels := make([]string, 12)
	for i := range labels {
		labels[i] = fmt.Sprintf("conversation_%d", i)
	}
	p.Show("Load", "load", items(labels...), 0)

	listHeight := p.listHeight()
	if listHeight != 2 {
		t.Fatalf("Expected listHeight=2, got %d", listHeight)
	}
	for i := 1; i < len(labels); i++ {
		p.Update(testutils.TestKeyDown)
		if p.selected != i {
			t.Fatalf("Expected selected=%d, got %d", i, p.selected)
		}
		if p.selected < p.scroll || p.selected >= p.scroll+listHeight {
			t.Fatalf("Selected row %d outside window starting at %d", p.selected, p.scroll)
		}
	}

	p.Update(testutils.TestKeyHome)
	if p.selected != 0 || p.scroll != 0 {
		t.Fatalf("Expected home to reset, got selected=%d scroll=%d", p.selected, p.scroll)
	}
	p.Update(testutils.TestKeyEnd)
	if p.selected != len(labels)-1 {
		t.Fatalf("Expected end to select last, got %d", p.selected)
	}
}

func TestPanel_ViewShowsPreview(t *testing.T) {
	p := NewPanel()
	p.SetSize(100, 20)
	p.Show("Load", "load", []Item{
		{Label: "demo", Preview: "user: hello\nmodel: hi there"},
		{Label: "other", Preview: "user: something else"},
	}, 0)

	view := ansi.Strip(p.View())
	for _, want := range []string{"Load", "[1] demo", "[2] other", "user: hello", "model: hi there"} {
		if !strings.Contains(view, want) {
			t.Fatalf("Expected view to contain %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "something else") {
		t.Fatal("Expected only the highlighted preview")
	}
	if got := lipgloss.Width(p.View()); got > 100 {
		t.Fatalf("Expected width <= 100, got %d", got)
	}
}

func TestPanel_HiddenViewIsEmpty(t *testing.T) {
	p := NewPanel()
	if p.View() != "" {
		t.Fatal("Expected hidden picker to render nothing")
	}
	if p.Update(testutils.TestKeyEnter) != nil {
		t.Fatal("Expected hidden picker to ignore keys")
	}
}
