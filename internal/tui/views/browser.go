package views

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/redbook/internal/engine/catalog"
	"github.com/rendis/redbook/internal/engine/lookup"
	"github.com/rendis/redbook/internal/tui/components"
	"github.com/rendis/redbook/internal/tui/styles"
)

// Map box position inside the browser view: one header line above, one
// border cell around.
const (
	mapOriginX = 1
	mapOriginY = 2
)

// BrowserModel is the main screen: the province map plus its windows.
type BrowserModel struct {
	catalog   *catalog.Catalog
	engine    *lookup.Engine
	logger    *slog.Logger
	mapView   components.MapView
	popup     PopupModel
	search    SearchModel
	provinces ProvincesModel
	detail    DetailModel
	toolbar   ToolbarModel

	open   map[windowID]bool
	focus  windowID
	hover  string
	notice string
	width  int
	height int
}

func NewBrowserModel(c *catalog.Catalog, logger *slog.Logger) BrowserModel {
	if logger == nil {
		logger = slog.Default()
	}
	e := c.Engine()

	var regions []components.Region
	for _, s := range c.Provinces.Shapes() {
		regions = append(regions, components.Region{
			Name:     s.Name,
			Geometry: s.Geometry,
			Bound:    s.Bound,
		})
	}
	mv := components.NewMapView(60, 20)
	mv.SetRegions(regions)

	m := BrowserModel{
		catalog:   c,
		engine:    e,
		logger:    logger,
		mapView:   mv,
		search:    NewSearchModel(e),
		provinces: NewProvincesModel(e),
		detail:    NewDetailModel(c.Names),
		open:      make(map[windowID]bool),
		focus:     windowNone,
	}
	m.updateHover()
	return m
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Engine exposes the lookup state behind the screen.
func (m BrowserModel) Engine() *lookup.Engine {
	return m.engine
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			return m, m.cycleFocus(1)
		case "shift+tab":
			return m, m.cycleFocus(-1)
		}
		if m.focus == windowNone {
			return m.handleMapKey(msg)
		}
		return m.routeToFocused(msg)

	case selectSpeciesMsg:
		m.selectSpecies(msg.Name)
		return m, nil
	case openProvinceMsg:
		if msg.Clear {
			m.refresh()
		}
		if lat, lng, ok := m.catalog.Provinces.Centroid(msg.Province); ok {
			m.mapView.SetCursor(lat, lng)
			m.updateHover()
		}
		return m, m.openPopup(msg.Province)
	case openDetailMsg:
		return m, m.openDetail(msg.Name)
	case minimizeMsg:
		return m, m.minimize(msg.Item)
	case restoreMsg:
		return m, m.restore(msg.Item)
	case closeWindowMsg:
		return m, m.closeWindow(msg.Window)
	case blurMsg:
		return m, m.setFocus(windowNone)
	}

	if m.focus != windowNone {
		return m.routeToFocused(msg)
	}
	return m, nil
}

func (m BrowserModel) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case windowPopup:
		m.popup, cmd = m.popup.Update(msg)
	case windowSearch:
		m.search, cmd = m.search.Update(msg)
	case windowProvinces:
		m.provinces, cmd = m.provinces.Update(msg)
	case windowDetail:
		m.detail, cmd = m.detail.Update(msg)
	case windowToolbar:
		m.toolbar, cmd = m.toolbar.Update(msg)
	}
	return m, cmd
}

func (m BrowserModel) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.mapView.MoveCursor(1, 0)
	case "down", "j":
		m.mapView.MoveCursor(-1, 0)
	case "left", "h":
		m.mapView.MoveCursor(0, -1)
	case "right", "l":
		m.mapView.MoveCursor(0, 1)
	case "K":
		m.mapView.MoveCursor(5, 0)
	case "J":
		m.mapView.MoveCursor(-5, 0)
	case "H":
		m.mapView.MoveCursor(0, -5)
	case "L":
		m.mapView.MoveCursor(0, 5)
	case "+", "=":
		m.mapView.ZoomIn()
	case "-":
		m.mapView.ZoomOut()
	case "0":
		m.mapView.ZoomReset()
	case "enter", " ":
		return m, m.clickCursor()
	case "/", "s":
		return m, m.openWindow(windowSearch)
	case "p":
		if m.open[windowProvinces] {
			return m, m.closeWindow(windowProvinces)
		}
		return m, m.openWindow(windowProvinces)
	case "d":
		if sel := m.engine.Selected(); sel != nil {
			return m, m.openDetail(sel.Name)
		}
	case "t":
		if m.toolbar.Len() > 0 {
			return m, m.setFocus(windowToolbar)
		}
	case "r":
		m.refresh()
		m.notice = "Map refreshed"
	case "esc":
		if m.open[windowPopup] {
			return m, m.closeWindow(windowPopup)
		}
	}
	m.updateHover()
	return m, nil
}

func (m BrowserModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lat, lng, ok := m.mapView.CellToLatLng(msg.X-mapOriginX, msg.Y-mapOriginY)
	if !ok {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.mapView.SetCursor(lat, lng)
		m.mapView.ZoomIn()
	case msg.Button == tea.MouseButtonWheelDown:
		m.mapView.SetCursor(lat, lng)
		m.mapView.ZoomOut()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.mapView.SetCursor(lat, lng)
		m.updateHover()
		return m, m.clickCursor()
	case msg.Action == tea.MouseActionMotion:
		m.hover = m.provinceNameAt(lat, lng)
		return m, nil
	}
	m.updateHover()
	return m, nil
}

// clickCursor opens the popup of the province under the cursor.
func (m *BrowserModel) clickCursor() tea.Cmd {
	lat, lng := m.mapView.Cursor()
	shape, ok := m.catalog.Provinces.Locate(lat, lng)
	if !ok {
		return nil
	}
	if shape.Name == "" {
		m.notice = fmt.Sprintf("%s is not in the name table", shape.ExternalID)
		return nil
	}
	return m.openPopup(shape.Name)
}

func (m *BrowserModel) provinceNameAt(lat, lng float64) string {
	shape, ok := m.catalog.Provinces.Locate(lat, lng)
	if !ok {
		return ""
	}
	if shape.Name == "" {
		return shape.ExternalID
	}
	return shape.Name
}

func (m *BrowserModel) updateHover() {
	lat, lng := m.mapView.Cursor()
	m.hover = m.provinceNameAt(lat, lng)
}

func (m *BrowserModel) openPopup(province string) tea.Cmd {
	entries := m.engine.Popup(province)
	if len(entries) == 0 {
		m.notice = fmt.Sprintf("No species recorded in %s", province)
		return nil
	}
	m.popup.Open(province, entries)
	m.open[windowPopup] = true
	m.updateLayout()
	return m.setFocus(windowPopup)
}

func (m *BrowserModel) selectSpecies(name string) {
	s, ok := m.engine.Find(name)
	if !ok {
		m.logger.Warn("selected species not in catalog", "species", name)
		return
	}
	m.engine.Select(s)
	m.mapView.SetFilled(m.engine.Highlighted())
	m.logger.Debug("species selected", "species", name, "provinces", len(m.engine.Highlighted()))
}

// refresh drops the selection, its fill and the popup.
func (m *BrowserModel) refresh() {
	m.engine.ClearSelection()
	m.mapView.SetFilled(nil)
	if m.open[windowPopup] {
		m.open[windowPopup] = false
		if m.focus == windowPopup {
			m.focus = windowNone
		}
		m.updateLayout()
	}
}

func (m *BrowserModel) openDetail(name string) tea.Cmd {
	s, ok := m.engine.Find(name)
	if !ok {
		return nil
	}
	m.detail.SetSpecies(s)
	m.open[windowDetail] = true
	m.updateLayout()
	return m.setFocus(windowDetail)
}

func (m *BrowserModel) openWindow(w windowID) tea.Cmd {
	m.toolbar.Remove(ToolbarItem{Window: w})
	m.open[w] = true
	m.updateLayout()
	return m.setFocus(w)
}

func (m *BrowserModel) closeWindow(w windowID) tea.Cmd {
	m.open[w] = false
	m.updateLayout()
	if m.focus == w {
		return m.setFocus(windowNone)
	}
	return nil
}

func (m *BrowserModel) minimize(item ToolbarItem) tea.Cmd {
	m.toolbar.Add(item)
	return m.closeWindow(item.Window)
}

func (m *BrowserModel) restore(item ToolbarItem) tea.Cmd {
	m.toolbar.Remove(item)
	if item.Window == windowDetail {
		return m.openDetail(item.Species)
	}
	return m.openWindow(item.Window)
}

func (m *BrowserModel) setFocus(w windowID) tea.Cmd {
	if m.focus == windowSearch && w != windowSearch {
		m.search.Blur()
	}
	if w == windowToolbar && m.toolbar.Len() == 0 {
		w = windowNone
	}
	m.focus = w
	if w == windowSearch {
		return m.search.Focus()
	}
	return nil
}

// focusOrder lists the map and every focusable window in screen order.
func (m *BrowserModel) focusOrder() []windowID {
	order := []windowID{windowNone}
	for _, w := range []windowID{windowPopup, windowSearch, windowProvinces, windowDetail} {
		if m.open[w] {
			order = append(order, w)
		}
	}
	if m.toolbar.Len() > 0 {
		order = append(order, windowToolbar)
	}
	return order
}

func (m *BrowserModel) cycleFocus(dir int) tea.Cmd {
	order := m.focusOrder()
	idx := 0
	for i, w := range order {
		if w == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(order)) % len(order)
	return m.setFocus(order[idx])
}

func (m BrowserModel) sideWidth() int {
	if m.width >= 110 {
		return 48
	}
	return max(m.width*2/5, 24)
}

func (m BrowserModel) bodyHeight() int {
	// header, toolbar, status bar
	return max(m.height-3, 6)
}

// windowHeights splits the side column between the open windows.
func (m BrowserModel) windowHeights() map[windowID]int {
	var open []windowID
	for _, w := range []windowID{windowPopup, windowSearch, windowProvinces, windowDetail} {
		if m.open[w] {
			open = append(open, w)
		}
	}
	out := make(map[windowID]int, len(open))
	if len(open) == 0 {
		return out
	}
	h := m.bodyHeight() / len(open)
	for _, w := range open {
		out[w] = max(h, 5)
	}
	return out
}

func (m *BrowserModel) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	mapW := m.width - m.sideWidth() - 2
	mapH := m.bodyHeight() - 2
	m.mapView.SetSize(max(mapW, 10), max(mapH, 4))

	heights := m.windowHeights()
	side := m.sideWidth()
	if h, ok := heights[windowProvinces]; ok {
		m.provinces.SetSize(side, h)
	}
	if h, ok := heights[windowDetail]; ok {
		m.detail.SetSize(side, h)
	}
}

func (m BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")

	mapBorder := styles.Muted
	if m.focus == windowNone {
		mapBorder = styles.Primary
	}
	mapBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mapBorder).
		Render(m.mapView.View())

	side := m.sideWidth()
	heights := m.windowHeights()
	var windows []string
	if m.open[windowPopup] {
		windows = append(windows, m.popup.View(side, heights[windowPopup], m.focus == windowPopup))
	}
	if m.open[windowSearch] {
		windows = append(windows, m.search.View(side, heights[windowSearch], m.focus == windowSearch))
	}
	if m.open[windowProvinces] {
		windows = append(windows, m.provinces.View(side, m.focus == windowProvinces))
	}
	if m.open[windowDetail] {
		windows = append(windows, m.detail.View(side, m.focus == windowDetail))
	}
	if len(windows) == 0 {
		windows = append(windows, m.helpView(side))
	}
	column := lipgloss.NewStyle().
		Width(side).
		MaxHeight(m.bodyHeight()).
		Render(lipgloss.JoinVertical(lipgloss.Left, windows...))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, mapBox, column))
	b.WriteString("\n")
	b.WriteString(m.toolbar.View(m.width, m.focus == windowToolbar))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(m.statusText()))

	return b.String()
}

func (m BrowserModel) headerView() string {
	title := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("redbook")
	parts := []string{title}

	if m.hover != "" {
		count := m.engine.ProvinceCountsForSpecies()[m.hover]
		parts = append(parts, styles.Subtitle.Render(m.hover)+
			lipgloss.NewStyle().Foreground(styles.Muted).Render(fmt.Sprintf(" · %d species", count)))
	}
	if sel := m.engine.Selected(); sel != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.Highlight).Bold(true).
			Render("● "+sel.Name)+" "+styles.Status(sel.Status))
	}
	if m.notice != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.Warning).Render(m.notice))
	}
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(strings.Join(parts, "  "))
}

func (m BrowserModel) helpView(width int) string {
	key := lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true)
	desc := lipgloss.NewStyle().Foreground(styles.Muted)
	rows := [][2]string{
		{"←↑↓→", "move cursor"},
		{"enter", "open province"},
		{"/", "search species"},
		{"p", "province list"},
		{"d", "selected species"},
		{"+ - 0", "zoom"},
		{"r", "refresh map"},
		{"tab", "next window"},
		{"t", "toolbar"},
		{"q", "quit"},
	}
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Keys"))
	for _, r := range rows {
		sb.WriteString("\n")
		sb.WriteString(key.Width(8).Render(r[0]))
		sb.WriteString(desc.Render(r[1]))
	}
	return styles.Border.Width(width - 2).Render(sb.String())
}

func (m BrowserModel) statusText() string {
	switch m.focus {
	case windowPopup:
		return "↑↓ species • enter show on map • i see more • esc close • tab next"
	case windowSearch:
		if m.search.filterFocus {
			return "←→ category • space toggle • esc back to query • ctrl+f hide filters"
		}
		return "type to search • ↑↓ choose • enter show on map • ctrl+f filters • ctrl+d minimize • ctrl+x close • esc map"
	case windowProvinces:
		return "↑↓ navigate • enter open province • m minimize • x close • esc map"
	case windowDetail:
		return "↑↓ scroll • m minimize • x close • esc map"
	case windowToolbar:
		return "←→ choose • enter restore • esc map"
	}
	return "←↑↓→ move • enter open • / search • p provinces • + - zoom • r refresh • tab windows • q quit"
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
