package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/redbook/internal/engine/lookup"
	"github.com/rendis/redbook/internal/model"
	"github.com/rendis/redbook/internal/tui/styles"
)

// SearchModel is the species search window: a query, category toggles and
// up to lookup.MaxSuggestions suggestions.
type SearchModel struct {
	engine      *lookup.Engine
	input       textinput.Model
	categories  []string
	active      map[string]bool
	showFilters bool
	filterFocus bool
	filterIdx   int

	suggestions []model.Species
	showSugg    bool
	suggIdx     int
}

func NewSearchModel(e *lookup.Engine) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "type a species name..."
	ti.CharLimit = 100
	ti.Prompt = "› "

	return SearchModel{
		engine:     e,
		input:      ti,
		categories: e.Categories(),
		active:     make(map[string]bool),
	}
}

func (m *SearchModel) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *SearchModel) Blur() {
	m.input.Blur()
	m.filterFocus = false
}

func (m SearchModel) Query() string {
	return m.input.Value()
}

// ActiveCategories returns the toggled categories in catalog order.
func (m SearchModel) ActiveCategories() []string {
	var out []string
	for _, c := range m.categories {
		if m.active[c] {
			out = append(out, c)
		}
	}
	return out
}

// Suggestions returns the visible suggestions, nil when the list is hidden.
func (m SearchModel) Suggestions() []model.Species {
	if !m.showSugg {
		return nil
	}
	return m.suggestions
}

func (m SearchModel) FiltersVisible() bool {
	return m.showFilters
}

func (m *SearchModel) updateSuggestions() {
	m.suggestions = m.engine.FilterCatalog(m.input.Value(), m.ActiveCategories())
	m.showSugg = true
	if m.suggIdx >= len(m.suggestions) {
		m.suggIdx = max(len(m.suggestions)-1, 0)
	}
}

func (m *SearchModel) choose() tea.Cmd {
	if !m.showSugg || m.suggIdx >= len(m.suggestions) {
		return nil
	}
	name := m.suggestions[m.suggIdx].Name
	m.input.SetValue(name)
	m.input.CursorEnd()
	m.showSugg = false
	return emit(selectSpeciesMsg{Name: name})
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch key.String() {
		case "ctrl+f":
			m.showFilters = !m.showFilters
			m.filterFocus = m.showFilters
			return m, nil
		case "ctrl+d":
			return m, emit(minimizeMsg{Item: ToolbarItem{Window: windowSearch}})
		case "ctrl+x":
			return m, emit(closeWindowMsg{Window: windowSearch})
		}

		if m.filterFocus {
			return m.updateFilters(key)
		}

		switch key.String() {
		case "esc":
			return m, emit(blurMsg{})
		case "up":
			if m.suggIdx > 0 {
				m.suggIdx--
			}
			return m, nil
		case "down":
			if m.showSugg && m.suggIdx < len(m.suggestions)-1 {
				m.suggIdx++
			}
			return m, nil
		case "enter":
			return m, m.choose()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if isKey && m.input.Value() != before {
		m.suggIdx = 0
		m.updateSuggestions()
	}
	return m, cmd
}

func (m SearchModel) updateFilters(key tea.KeyMsg) (SearchModel, tea.Cmd) {
	switch key.String() {
	case "left", "h":
		if m.filterIdx > 0 {
			m.filterIdx--
		}
	case "right", "l":
		if m.filterIdx < len(m.categories)-1 {
			m.filterIdx++
		}
	case " ", "enter":
		if m.filterIdx < len(m.categories) {
			c := m.categories[m.filterIdx]
			m.active[c] = !m.active[c]
			m.suggIdx = 0
			m.updateSuggestions()
		}
	case "esc":
		m.filterFocus = false
	}
	return m, nil
}

func (m SearchModel) View(width, height int, focused bool) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	m.input.Width = inner - 3

	var b strings.Builder
	b.WriteString(styles.Subtitle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	used := 3
	if m.showFilters {
		b.WriteString(m.renderFilters(inner, focused))
		b.WriteString("\n")
		used++
	}

	if m.showSugg {
		b.WriteString(m.renderSuggestions(inner, height-used-2, focused && !m.filterFocus))
	}

	return styles.Window(focused).Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m SearchModel) renderFilters(width int, focused bool) string {
	if len(m.categories) == 0 {
		return lipgloss.NewStyle().Foreground(styles.Muted).Italic(true).Render("no categories")
	}
	on := lipgloss.NewStyle().Foreground(styles.Highlight).Bold(true)
	off := lipgloss.NewStyle().Foreground(styles.Muted)
	cursor := lipgloss.NewStyle().Underline(true)

	parts := make([]string, len(m.categories))
	for i, c := range m.categories {
		box := "[ ] "
		st := off
		if m.active[c] {
			box = "[x] "
			st = on
		}
		s := st.Render(box + c)
		if focused && m.filterFocus && i == m.filterIdx {
			s = cursor.Render(s)
		}
		parts[i] = s
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, "  "))
}

func (m SearchModel) renderSuggestions(width, height int, focused bool) string {
	if len(m.suggestions) == 0 {
		return lipgloss.NewStyle().Foreground(styles.Muted).Italic(true).Render("no matches")
	}
	if height < 1 {
		height = 1
	}
	start := 0
	if m.suggIdx >= height {
		start = m.suggIdx - height + 1
	}
	end := min(start+height, len(m.suggestions))

	active := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(styles.Text)
	var sb strings.Builder
	for i := start; i < end; i++ {
		s := m.suggestions[i]
		label := truncate(s.Name, width-6)
		if i == m.suggIdx && focused {
			sb.WriteString(active.Render("> " + label))
		} else {
			sb.WriteString(inactive.Render("  " + label))
		}
		if s.Status != "" {
			sb.WriteString(" " + styles.Status(s.Status))
		}
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	if end < len(m.suggestions) {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).
			Render(fmt.Sprintf("  … %d more", len(m.suggestions)-end)))
	}
	return sb.String()
}
