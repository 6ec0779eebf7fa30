package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/redbook/internal/config"
	"github.com/rendis/redbook/internal/engine/catalog"
	"github.com/rendis/redbook/internal/engine/fetch"
	"github.com/rendis/redbook/internal/tui/views"
)

type viewID int

const (
	viewLoading viewID = iota
	viewBrowser
)

// App is the root bubbletea model.
type App struct {
	currentView viewID
	width       int
	height      int
	logger      *slog.Logger
	loading     views.LoadingModel
	browser     views.BrowserModel
}

func NewApp(load views.LoadFunc, sources catalog.Sources, logger *slog.Logger) App {
	return App{
		currentView: viewLoading,
		logger:      logger,
		loading:     views.NewLoadingModel(load, sources, logger),
	}
}

func (a App) Init() tea.Cmd {
	return a.loading.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case views.NavigateToBrowser:
		a.currentView = viewBrowser
		a.browser = views.NewBrowserModel(msg.Catalog, a.logger)
		return a, tea.Batch(a.browser.Init(), a.sizeCmd())
	}

	var cmd tea.Cmd
	switch a.currentView {
	case viewLoading:
		var m tea.Model
		m, cmd = a.loading.Update(msg)
		a.loading = m.(views.LoadingModel)
	case viewBrowser:
		var m tea.Model
		m, cmd = a.browser.Update(msg)
		a.browser = m.(views.BrowserModel)
	}

	return a, cmd
}

func (a App) View() string {
	var content string
	switch a.currentView {
	case viewLoading:
		content = a.loading.View()
	case viewBrowser:
		content = a.browser.View()
	}

	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// sizeCmd sends a WindowSizeMsg so newly created views get the current terminal size.
func (a App) sizeCmd() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// Run loads the catalog described by cfg and starts the TUI.
func Run(cfg config.Config, logger *slog.Logger) error {
	f := fetch.New(cfg.Fetch)
	load := func(ctx context.Context) (*catalog.Catalog, error) {
		return catalog.Load(ctx, cfg.Sources, f, logger)
	}

	p := tea.NewProgram(
		NewApp(load, cfg.Sources, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if app, ok := final.(App); ok && app.currentView == viewLoading {
		return app.loading.Err()
	}
	return nil
}
