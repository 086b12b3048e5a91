package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davebern/tidepool/internal/relay"
)

type styles struct {
	Title    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	URL      lipgloss.Style
	Help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Item:     lipgloss.NewStyle(),
		URL:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1),
	}
}

// PickerModel lets the user choose one entry from a picker response.
// Choice reports the selected index, or -1 when the user cancelled.
type PickerModel struct {
	items  []relay.PickerItem
	cursor int
	choice int
	done   bool
	keys   keyMap
	styles styles
}

// NewPicker builds a picker over the given items.
func NewPicker(items []relay.PickerItem) PickerModel {
	return PickerModel{
		items:  items,
		choice: -1,
		keys:   defaultKeyMap(),
		styles: defaultStyles(),
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Top):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.Bottom):
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
	case key.Matches(keyMsg, m.keys.Select):
		if len(m.items) > 0 {
			m.choice = m.cursor
		}
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.choice = -1
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Pick one of %d items", len(m.items))))
	b.WriteString("\n\n")
	for i, item := range m.items {
		line := fmt.Sprintf("%2d. %-5s %s", i+1, item.Type, m.styles.URL.Render(item.URL))
		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("▸ "))
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString("  ")
			b.WriteString(m.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("↑/↓ move · enter select · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the selected item index, or -1 when cancelled.
func (m PickerModel) Choice() int { return m.choice }

// RunPicker shows the interactive picker and blocks until the user selects
// an item or cancels. It returns the selected index, or -1 on cancel.
func RunPicker(items []relay.PickerItem) (int, error) {
	program := tea.NewProgram(NewPicker(items))
	final, err := program.Run()
	if err != nil {
		return -1, fmt.Errorf("run picker: %w", err)
	}
	model, ok := final.(PickerModel)
	if !ok {
		return -1, fmt.Errorf("unexpected picker model %T", final)
	}
	return model.Choice(), nil
}
