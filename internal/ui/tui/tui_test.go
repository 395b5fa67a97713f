package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brandwik/shopfront/internal/provision"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestPhrase(t *testing.T) {
	tests := []struct {
		percent int
		status  provision.Status
		want    string
	}{
		{0, provision.StatusPending, "Initializing server environment..."},
		{45, provision.StatusDBImporting, "Injecting database schema..."},
		{90, provision.StatusDBPersonalizing, "Finalizing your dashboard..."},
		{100, provision.StatusCompleted, "Store Ready!"},
	}
	for _, tt := range tests {
		m := Model{Percent: tt.percent, Status: tt.status}
		if got := m.Phrase(); got != tt.want {
			t.Errorf("Phrase() at %d%% = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestModelUpdate_Status(t *testing.T) {
	m := NewBuildModel("kicks.brandwik.com")

	updated, _ := m.Update(StatusMsg{
		Status:   provision.StatusDBImporting,
		Percent:  42,
		Timeline: []string{"db created", "import started"},
	})
	m = updated.(Model)

	if m.Status != provision.StatusDBImporting {
		t.Errorf("expected DB_IMPORTING, got %v", m.Status)
	}
	if m.Percent != 42 {
		t.Errorf("expected 42, got %d", m.Percent)
	}
	if len(m.Timeline) != 2 {
		t.Errorf("expected 2 timeline entries, got %d", len(m.Timeline))
	}
}

func TestModelUpdate_QuitKeyInterrupts(t *testing.T) {
	m := NewBuildModel("kicks.brandwik.com")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(Model)

	if !m.Interrupted {
		t.Error("expected Interrupted after ctrl+c")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModelUpdate_DoneQuits(t *testing.T) {
	m := NewBuildModel("kicks.brandwik.com")

	updated, cmd := m.Update(DoneMsg{})
	m = updated.(Model)

	if !m.Done {
		t.Error("expected Done after DoneMsg")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestRenderView(t *testing.T) {
	m := NewBuildModel("kicks.brandwik.com")
	m.Status = provision.StatusBuilding
	m.Percent = 15
	m.Timeline = []string{"container scheduled"}

	out := renderView(m)
	if !strings.Contains(out, "kicks.brandwik.com") {
		t.Error("expected site in header")
	}
	if !strings.Contains(out, "15%") {
		t.Error("expected percent in progress line")
	}
	if !strings.Contains(out, "container scheduled") {
		t.Error("expected timeline entry")
	}
}

func TestRenderView_Failed(t *testing.T) {
	m := NewBuildModel("kicks.brandwik.com")
	m.Status = provision.StatusFailed
	m.Percent = 40
	m.ErrMsg = "import crashed"
	m.Terminal = true

	out := renderView(m)
	if !strings.Contains(out, "Failed") {
		t.Error("expected failed status in header")
	}
	if !strings.Contains(out, "import crashed") {
		t.Error("expected failure message")
	}
}
