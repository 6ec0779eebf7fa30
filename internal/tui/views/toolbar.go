package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/redbook/internal/tui/styles"
)

type windowID int

const (
	windowNone windowID = iota // the map itself
	windowPopup
	windowSearch
	windowProvinces
	windowDetail
	windowToolbar
)

func (w windowID) String() string {
	switch w {
	case windowPopup:
		return "Popup"
	case windowSearch:
		return "Search"
	case windowProvinces:
		return "Provinces"
	case windowDetail:
		return "Species"
	case windowToolbar:
		return "Toolbar"
	}
	return "Map"
}

// ToolbarItem is a minimized window. Species is set for detail windows.
type ToolbarItem struct {
	Window  windowID
	Species string
}

func (i ToolbarItem) Label() string {
	if i.Window == windowDetail {
		return i.Species
	}
	return i.Window.String()
}

// ToolbarModel holds minimized windows in the order they were minimized.
type ToolbarModel struct {
	items  []ToolbarItem
	cursor int
}

// Add appends an item unless it is already there.
func (m *ToolbarModel) Add(item ToolbarItem) bool {
	if m.Has(item) {
		return false
	}
	m.items = append(m.items, item)
	return true
}

func (m *ToolbarModel) Has(item ToolbarItem) bool {
	for _, it := range m.items {
		if it == item {
			return true
		}
	}
	return false
}

func (m *ToolbarModel) Remove(item ToolbarItem) {
	for i, it := range m.items {
		if it == item {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

func (m ToolbarModel) Items() []ToolbarItem {
	return m.items
}

func (m ToolbarModel) Len() int {
	return len(m.items)
}

func (m ToolbarModel) Update(msg tea.Msg) (ToolbarModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(m.items) {
			return m, emit(restoreMsg{Item: m.items[m.cursor]})
		}
	case "esc":
		return m, emit(blurMsg{})
	}
	return m, nil
}

func (m ToolbarModel) View(width int, focused bool) string {
	label := lipgloss.NewStyle().Foreground(styles.Muted).Render("Toolbar: ")
	if len(m.items) == 0 {
		return label + lipgloss.NewStyle().Foreground(styles.Muted).Italic(true).Render("empty")
	}

	active := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(styles.Primary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(styles.Text).Background(lipgloss.Color("#333333"))

	parts := make([]string, len(m.items))
	for i, it := range m.items {
		text := " " + truncate(it.Label(), 24) + " "
		if focused && i == m.cursor {
			parts[i] = active.Render(text)
		} else {
			parts[i] = inactive.Render(text)
		}
	}
	line := label + strings.Join(parts, " ")
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
