package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/redbook/internal/engine/lookup"
	"github.com/rendis/redbook/internal/tui/styles"
)

// ProvincesModel lists every province with its species count.
type ProvincesModel struct {
	counts []lookup.ProvinceCount
	table  table.Model
}

func NewProvincesModel(e *lookup.Engine) ProvincesModel {
	m := ProvincesModel{counts: e.ProvinceCounts()}
	m.buildTable(36, 10)
	return m
}

func (m *ProvincesModel) buildTable(width, height int) {
	countW := 8
	nameW := width - countW - 4
	if nameW < 12 {
		nameW = 12
	}

	rows := make([]table.Row, len(m.counts))
	for i, pc := range m.counts {
		rows[i] = table.Row{truncate(pc.Province, nameW), fmt.Sprintf("%d", pc.Count)}
	}

	cursor := m.table.Cursor()
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Province", Width: nameW},
			{Title: "Species", Width: countW},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	t.SetStyles(focusedTableStyles())
	if cursor > 0 && cursor < len(rows) {
		t.SetCursor(cursor)
	}
	m.table = t
}

// SetSize rebuilds the table for the given outer window size.
func (m *ProvincesModel) SetSize(width, height int) {
	h := height - 5
	if h < 3 {
		h = 3
	}
	m.buildTable(width-4, h)
}

func (m ProvincesModel) Counts() []lookup.ProvinceCount {
	return m.counts
}

// Current is the province under the cursor.
func (m ProvincesModel) Current() (string, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.counts) {
		return "", false
	}
	return m.counts[c].Province, true
}

func (m ProvincesModel) Update(msg tea.Msg) (ProvincesModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", " ":
			if p, ok := m.Current(); ok {
				return m, emit(openProvinceMsg{Province: p, Clear: true})
			}
			return m, nil
		case "esc":
			return m, emit(blurMsg{})
		case "m", "ctrl+d":
			return m, emit(minimizeMsg{Item: ToolbarItem{Window: windowProvinces}})
		case "x", "ctrl+x":
			return m, emit(closeWindowMsg{Window: windowProvinces})
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ProvincesModel) View(width int, focused bool) string {
	if focused {
		m.table.SetStyles(focusedTableStyles())
	} else {
		m.table.SetStyles(unfocusedTableStyles())
	}
	var b strings.Builder
	b.WriteString(styles.Subtitle.Render("Provinces"))
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
		Render(fmt.Sprintf(" (%d)", len(m.counts))))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	return styles.Window(focused).Width(width - 2).Render(b.String())
}

func focusedTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Secondary)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Bold(true)
	return s
}

func unfocusedTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Muted)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(lipgloss.Color("#333333")).
		Bold(false)
	return s
}
