package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davebern/tidepool/internal/relay"
)

func testItems() []relay.PickerItem {
	return []relay.PickerItem{
		{Type: relay.PickerItemPhoto, URL: "https://cdn.example/p/1"},
		{Type: relay.PickerItemVideo, URL: "https://cdn.example/p/2"},
		{Type: relay.PickerItemGif, URL: "https://cdn.example/p/3"},
	}
}

func press(t *testing.T, m PickerModel, keys ...string) PickerModel {
	t.Helper()
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(PickerModel)
		if !ok {
			t.Fatalf("Update returned %T, want PickerModel", next)
		}
	}
	return m
}

func TestPicker_SelectsItemUnderCursor(t *testing.T) {
	m := press(t, NewPicker(testItems()), "down", "down", "enter")
	if m.Choice() != 2 {
		t.Fatalf("Choice = %d, want 2", m.Choice())
	}
}

func TestPicker_CursorStopsAtBounds(t *testing.T) {
	m := press(t, NewPicker(testItems()), "up", "up", "enter")
	if m.Choice() != 0 {
		t.Fatalf("Choice = %d, want 0 after moving past top", m.Choice())
	}

	m = press(t, NewPicker(testItems()), "down", "down", "down", "down", "enter")
	if m.Choice() != 2 {
		t.Fatalf("Choice = %d, want last item after moving past bottom", m.Choice())
	}
}

func TestPicker_TopBottomJumps(t *testing.T) {
	m := press(t, NewPicker(testItems()), "G", "enter")
	if m.Choice() != 2 {
		t.Fatalf("Choice = %d, want 2 after G", m.Choice())
	}
	m = press(t, NewPicker(testItems()), "G", "g", "enter")
	if m.Choice() != 0 {
		t.Fatalf("Choice = %d, want 0 after g", m.Choice())
	}
}

func TestPicker_CancelReturnsMinusOne(t *testing.T) {
	m := press(t, NewPicker(testItems()), "down", "esc")
	if m.Choice() != -1 {
		t.Fatalf("Choice = %d, want -1 on cancel", m.Choice())
	}
	m = press(t, NewPicker(testItems()), "q")
	if m.Choice() != -1 {
		t.Fatalf("Choice = %d, want -1 on q", m.Choice())
	}
}

func TestPicker_EmptyItemsSelectCancels(t *testing.T) {
	m := press(t, NewPicker(nil), "enter")
	if m.Choice() != -1 {
		t.Fatalf("Choice = %d, want -1 with no items", m.Choice())
	}
}

func TestPicker_ViewListsItems(t *testing.T) {
	view := NewPicker(testItems()).View()
	for _, want := range []string{"Pick one of 3 items", "https://cdn.example/p/1", "photo", "video", "gif"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}

	done := press(t, NewPicker(testItems()), "enter")
	if done.View() != "" {
		t.Fatalf("View() after selection = %q, want empty", done.View())
	}
}
