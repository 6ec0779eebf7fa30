package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rendis/redbook/internal/engine/catalog"
)

// NavigateToBrowser signals that the catalog is loaded and the map can open.
type NavigateToBrowser struct {
	Catalog *catalog.Catalog
}

// Messages exchanged between the browser and its windows.
type (
	selectSpeciesMsg struct{ Name string }
	openProvinceMsg  struct {
		Province string
		Clear    bool // clear the selection before opening
	}
	openDetailMsg  struct{ Name string }
	minimizeMsg    struct{ Item ToolbarItem }
	restoreMsg     struct{ Item ToolbarItem }
	closeWindowMsg struct{ Window windowID }
	blurMsg        struct{}
)

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
