package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brandwik/shopfront/internal/provision"
)

// loadingPhrases rotate under the progress bar as the build advances. The
// active phrase is picked by how far along the bar is.
var loadingPhrases = []string{
	"Initializing server environment...",
	"Cloning OpenCart architecture...",
	"Injecting database schema...",
	"Configuring secure routes...",
	"Finalizing your dashboard...",
}

// Model is the Bubble Tea model for the build dashboard.
type Model struct {
	// Site info
	Site string

	// Poller-sourced state
	Status   provision.Status
	Percent  int
	Timeline []string
	ErrMsg   string
	Terminal bool

	// Animation
	Bar          progress.Model
	SpinnerFrame int
	StartTime    time.Time

	// UI state
	Width       int
	Done        bool
	Interrupted bool
}

// NewBuildModel creates a model for the build dashboard.
func NewBuildModel(site string) Model {
	return Model{
		Site:      site,
		Status:    provision.StatusPending,
		Bar:       progress.New(progress.WithDefaultGradient()),
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Interrupted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Bar.Width = barWidth(msg.Width)

	case StatusMsg:
		m.Status = msg.Status
		m.Percent = msg.Percent
		m.Timeline = msg.Timeline
		m.ErrMsg = msg.Err
		m.Terminal = msg.Terminal

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// Phrase returns the loading phrase for the current progress, or the ready
// banner once the build completed.
func (m Model) Phrase() string {
	if m.Status == provision.StatusCompleted {
		return "Store Ready!"
	}
	idx := (m.Percent * len(loadingPhrases) / 100) % len(loadingPhrases)
	return loadingPhrases[idx]
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func barWidth(width int) int {
	w := width - 20
	if w < 10 {
		w = 10
	}
	if w > 50 {
		w = 50
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
