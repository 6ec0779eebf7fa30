package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/redbook/internal/engine/names"
	"github.com/rendis/redbook/internal/model"
	"github.com/rendis/redbook/internal/tui/styles"
)

// DetailModel shows one species: description, image link and populations.
type DetailModel struct {
	species  *model.Species
	names    *names.Table
	viewport viewport.Model
	width    int
}

func NewDetailModel(tbl *names.Table) DetailModel {
	return DetailModel{
		names:    tbl,
		viewport: viewport.New(36, 10),
		width:    40,
	}
}

func (m *DetailModel) SetSpecies(s *model.Species) {
	m.species = s
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

func (m DetailModel) Species() *model.Species {
	return m.species
}

// SetSize sizes the window, borders included.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = max(width-4, 10)
	m.viewport.Height = max(height-3, 3)
	if m.species != nil {
		m.viewport.SetContent(m.content())
	}
}

func (m DetailModel) content() string {
	s := m.species
	if s == nil {
		return ""
	}
	w := m.viewport.Width
	label := lipgloss.NewStyle().Foreground(styles.Muted)
	wrap := lipgloss.NewStyle().Width(w)

	var b strings.Builder
	b.WriteString(label.Render("Category: ") + lipgloss.NewStyle().Foreground(styles.Highlight).Render(s.Category) + "\n")
	b.WriteString(label.Render("Status:   ") + styles.Status(s.Status))
	if s.Status.Known() {
		b.WriteString(label.Render(" · " + s.Status.Label()))
	}
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(s.DescriptionOrDefault()))
	b.WriteString("\n\n")
	b.WriteString(label.Render("Image: "))
	b.WriteString(wrap.Foreground(styles.Primary).Render(s.ImageOrDefault()))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Populations"))
	b.WriteString("\n")

	rows := m.populationRows()
	if len(rows) == 0 {
		b.WriteString(label.Italic(true).Render(model.NoData))
	}
	nameW := 0
	for _, r := range rows {
		nameW = max(nameW, lipgloss.Width(r[0]))
	}
	for i, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s", lipgloss.NewStyle().Width(nameW).Render(r[0]), r[1]))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// populationRows lists provinces in name table order, then any names the
// table does not know, sorted.
func (m DetailModel) populationRows() [][2]string {
	s := m.species
	var rows [][2]string
	known := make(map[string]bool)
	if m.names != nil {
		for _, local := range m.names.Locals() {
			known[local] = true
			if rec, ok := s.PopulationIn(local); ok {
				rows = append(rows, [2]string{local, rec.Display()})
			}
		}
	}
	var rest []string
	for local, rec := range s.Populations {
		if !known[local] && rec.Present() {
			rest = append(rest, local)
		}
	}
	sort.Strings(rest)
	for _, local := range rest {
		rows = append(rows, [2]string{local + " ?", s.Populations[local].Display()})
	}
	return rows
}

func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.species != nil {
		switch key.String() {
		case "esc":
			return m, emit(blurMsg{})
		case "m", "ctrl+d":
			return m, emit(minimizeMsg{Item: ToolbarItem{Window: windowDetail, Species: m.species.Name}})
		case "x", "ctrl+x":
			return m, emit(closeWindowMsg{Window: windowDetail})
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DetailModel) View(width int, focused bool) string {
	if m.species == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.Subtitle.Render(truncate(m.species.Name, width-6)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	if !m.viewport.AtBottom() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
			Render(fmt.Sprintf("  ▼ %d%%", int(m.viewport.ScrollPercent()*100))))
	}
	return styles.Window(focused).Width(width - 2).Render(b.String())
}
