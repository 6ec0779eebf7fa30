package views

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/redbook/internal/engine/catalog"
	"github.com/rendis/redbook/internal/tui/styles"
)

// LoadFunc fetches the catalog. It must honour ctx cancellation.
type LoadFunc func(ctx context.Context) (*catalog.Catalog, error)

// loadState lives behind a pointer so the cancel func survives bubbletea's
// value copies.
type loadState struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

func (s *loadState) setCancel(c context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = c
}

func (s *loadState) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// LoadingModel shows a spinner while the species list and the province
// geometry are fetched.
type LoadingModel struct {
	load      LoadFunc
	sources   catalog.Sources
	spinner   spinner.Model
	startTime time.Time
	logger    *slog.Logger
	err       error
	width     int
	height    int
	shared    *loadState
}

type catalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

func NewLoadingModel(load LoadFunc, sources catalog.Sources, logger *slog.Logger) LoadingModel {
	if logger == nil {
		logger = slog.Default()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Secondary)
	return LoadingModel{
		load:      load,
		sources:   sources,
		spinner:   s,
		startTime: time.Now(),
		logger:    logger,
		shared:    &loadState{},
	}
}

func (m LoadingModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startLoading())
}

func (m LoadingModel) startLoading() tea.Cmd {
	shared := m.shared
	load := m.load
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		shared.setCancel(cancel)
		c, err := load(ctx)
		return catalogLoadedMsg{Catalog: c, Err: err}
	}
}

func (m LoadingModel) Err() error {
	return m.err
}

func (m LoadingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.shared.stop()
			return m, tea.Quit
		}
	case catalogLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.logger.Error("catalog load failed", "error", msg.Err)
			return m, nil
		}
		return m, emit(NavigateToBrowser{Catalog: msg.Catalog})
	case spinner.TickMsg:
		if m.err != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m LoadingModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("redbook · endangered species of Bulgaria"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(styles.Label.Render(label))
		b.WriteString(styles.Value.Render(value))
		b.WriteString("\n")
	}
	row("Species:", m.sources.Species)
	row("Provinces:", m.sources.Provinces)
	if m.sources.Names != "" {
		row("Names:", m.sources.Names)
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(styles.StatusBar.Render("q quit"))
		return styles.Border.Render(b.String())
	}

	elapsed := time.Since(m.startTime).Truncate(100 * time.Millisecond)
	b.WriteString(m.spinner.View())
	b.WriteString(" Loading data… ")
	b.WriteString(lipgloss.NewStyle().Foreground(styles.Muted).Render(elapsed.String()))
	b.WriteString("\n")
	b.WriteString(styles.StatusBar.Render("esc cancel • ctrl+c quit"))

	return styles.Border.Render(b.String())
}
