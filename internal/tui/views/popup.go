package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/redbook/internal/engine/lookup"
	"github.com/rendis/redbook/internal/tui/styles"
)

// PopupModel lists the species of one province.
type PopupModel struct {
	province string
	entries  []lookup.PopupEntry
	cursor   int
}

func (m *PopupModel) Open(province string, entries []lookup.PopupEntry) {
	m.province = province
	m.entries = entries
	m.cursor = 0
}

func (m PopupModel) Province() string {
	return m.province
}

func (m PopupModel) Entries() []lookup.PopupEntry {
	return m.entries
}

// Current is the entry under the cursor.
func (m PopupModel) Current() (lookup.PopupEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return lookup.PopupEntry{}, false
	}
	return m.entries[m.cursor], true
}

func (m PopupModel) Update(msg tea.Msg) (PopupModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		if e, ok := m.Current(); ok {
			return m, emit(selectSpeciesMsg{Name: e.Species.Name})
		}
	case "i", "d":
		if e, ok := m.Current(); ok {
			return m, emit(openDetailMsg{Name: e.Species.Name})
		}
	case "esc", "x":
		return m, emit(closeWindowMsg{Window: windowPopup})
	}
	return m, nil
}

const popupEntryLines = 3

func (m PopupModel) View(width, height int, focused bool) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(styles.Subtitle.Render(truncate(m.province, inner)))
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
		Render(fmt.Sprintf(" (%d)", len(m.entries))))
	b.WriteString("\n")

	visible := (height - 3) / popupEntryLines
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.entries))

	name := lipgloss.NewStyle().Foreground(styles.Highlight).Bold(true)
	label := lipgloss.NewStyle().Foreground(styles.Muted)
	for i := start; i < end; i++ {
		e := m.entries[i]
		marker := "  "
		if i == m.cursor && focused {
			marker = styles.ActiveItem.Render("▸ ")
		}
		b.WriteString(marker + name.Render(truncate(e.Species.Name, inner-2)) + "\n")
		b.WriteString("  " + label.Render("Category: ") + lipgloss.NewStyle().Foreground(styles.Highlight).
			Render(truncate(e.Species.Category, inner-12)) + "\n")
		b.WriteString("  " + label.Render("Status: ") + styles.Status(e.Species.Status) +
			label.Render("  Population: ") + styles.Value.Render(e.Population))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(m.entries) || start > 0 {
		b.WriteString("\n")
		b.WriteString(label.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.entries))))
	}

	return styles.Window(focused).Width(width - 2).Render(b.String())
}
