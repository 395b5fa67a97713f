package wizard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/brandwik/shopfront/internal/availability"
)

var (
	addrTitleStyle = lipgloss.NewStyle().Bold(true)
	addrOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	addrBadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	addrDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// availabilityMsg carries a settled check result into the Bubble Tea loop.
type availabilityMsg availability.Update

// addressModel is the live subdomain picker. Keystrokes stream into the
// debounced checker; the status line below the input settles to the latest
// result. Enter only confirms once the current value is positively available.
type addressModel struct {
	input   textinput.Model
	checker *availability.Checker
	domain  string

	checking bool
	result   availability.Result
	settled  string

	confirmed bool
	aborted   bool
}

func newAddressModel(checker *availability.Checker, domain, initial string) addressModel {
	in := textinput.New()
	in.Placeholder = "my-store"
	in.CharLimit = 63
	in.Prompt = "  https://"
	in.Focus()

	m := addressModel{input: in, checker: checker, domain: domain}
	if initial != "" {
		m.input.SetValue(initial)
		m.checking = true
		checker.Submit(availability.FieldSubdomain, initial)
	}
	return m
}

// Init implements tea.Model.
func (m addressModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForUpdate(m.checker.Updates()))
}

// Update implements tea.Model.
func (m addressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.canConfirm() {
				m.confirmed = true
				return m, tea.Quit
			}
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.checking = true
			m.checker.Submit(availability.FieldSubdomain, m.input.Value())
		}
		return m, cmd

	case availabilityMsg:
		// A result for anything but the value currently typed is stale.
		if msg.Value == availability.SanitizeSubdomain(m.input.Value()) {
			m.checking = false
			m.result = msg.Result
			m.settled = msg.Value
		}
		return m, waitForUpdate(m.checker.Updates())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m addressModel) canConfirm() bool {
	return !m.checking && m.result.OK() &&
		m.settled != "" && m.settled == availability.SanitizeSubdomain(m.input.Value())
}

// View implements tea.Model.
func (m addressModel) View() string {
	s := addrTitleStyle.Render("Claim your address") + "\n"
	s += m.input.View() + addrDimStyle.Render("."+m.domain) + "\n"

	switch {
	case m.input.Value() == "":
		s += addrDimStyle.Render("  lowercase letters, digits and hyphens") + "\n"
	case m.checking:
		s += addrDimStyle.Render("  [..] checking availability...") + "\n"
	case m.result.OK():
		s += addrOKStyle.Render(fmt.Sprintf("  [OK] %s.%s is available", m.settled, m.domain)) + "\n"
	case m.result.Available != nil:
		s += addrBadStyle.Render("  [!!] "+m.result.Reason) + "\n"
	default:
		hint := m.result.Reason
		if hint == "" {
			hint = fmt.Sprintf("at least %d characters", availability.MinSubdomainLength)
		}
		s += addrDimStyle.Render("  "+hint) + "\n"
	}

	s += addrDimStyle.Render("  enter: continue  esc: cancel") + "\n"
	return s
}

// waitForUpdate blocks for the next settled check result.
func waitForUpdate(ch <-chan availability.Update) tea.Cmd {
	return func() tea.Msg {
		return availabilityMsg(<-ch)
	}
}

// chooseAddress runs the address picker and returns the confirmed, sanitized
// subdomain.
func (w *Wizard) chooseAddress(ctx context.Context, initial string) (string, error) {
	checker := availability.NewChecker(w.client)
	defer checker.Close()

	m := newAddressModel(checker, w.cfg.MainSiteDomain, initial)
	final, err := tea.NewProgram(m, tea.WithOutput(w.out), tea.WithContext(ctx)).Run()
	if err != nil {
		return "", fmt.Errorf("address prompt failed: %w", err)
	}

	fm := final.(addressModel)
	if fm.aborted || !fm.confirmed {
		return "", huh.ErrUserAborted
	}
	return fm.settled, nil
}
