package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	revealTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22c55e"))
	revealLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	revealValueStyle = lipgloss.NewStyle().Bold(true)
)

// runReveal prints the finished storefront summary. The wizard is done after
// this; rerunning the command shows the same summary until a reset.
func (w *Wizard) runReveal() error {
	snap := w.store.Snapshot()
	data := snap.StepData

	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, revealTitleStyle.Render("[OK] Your store is live!"))
	fmt.Fprintln(w.out)

	rows := []struct {
		label string
		value string
	}{
		{"Address", "https://" + w.siteLabel()},
		{"Business", data.BusinessName},
		{"Type", data.SiteType},
		{"Vibe", data.SiteVibe},
		{"Features", strings.Join(data.Features, ", ")},
		{"Login", data.Email},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(w.out, "  %s %s\n",
			revealLabelStyle.Render(fmt.Sprintf("%-10s", row.label)),
			revealValueStyle.Render(row.value))
	}

	if rec := snap.CurrentUser(); rec != nil {
		if status := rec.Status(); status != nil {
			if msg, _ := status["message"].(string); msg != "" {
				fmt.Fprintln(w.out)
				fmt.Fprintln(w.out, "  "+revealLabelStyle.Render(msg))
			}
		}
	}

	fmt.Fprintln(w.out)
	return nil
}
