package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/brandwik/shopfront/internal/provision"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgress(&b, m)
	renderTimeline(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render("shopfront: " + m.Site))

	status := " "
	switch {
	case m.Status == provision.StatusCompleted:
		status += readyStyle.Render("Ready")
	case m.Status == provision.StatusFailed:
		status += failedStyle.Render("Failed")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + stageStyle.Render(string(m.Status))
	}
	b.WriteString(status)
	b.WriteString("\n\n")
}

func renderProgress(b *strings.Builder, m Model) {
	fmt.Fprintf(b, "  %s %d%%\n", m.Bar.ViewAs(float64(m.Percent)/100), m.Percent)

	if m.Status == provision.StatusFailed {
		msg := m.ErrMsg
		if msg == "" {
			msg = "provisioning failed"
		}
		fmt.Fprintf(b, "  %s %s\n", failedStyle.Render(crossMark), failedStyle.Render(msg))
		return
	}
	fmt.Fprintf(b, "  %s\n", dimStyle.Render(m.Phrase()))
}

func renderTimeline(b *strings.Builder, m Model) {
	if len(m.Timeline) == 0 {
		return
	}

	b.WriteString("\n")
	// Show the last 5 entries; the full timeline scrolls off fast builds.
	start := 0
	if len(m.Timeline) > 5 {
		start = len(m.Timeline) - 5
	}
	for i, entry := range m.Timeline[start:] {
		icon := readyStyle.Render(checkMark)
		style := dimStyle
		if start+i == len(m.Timeline)-1 && !m.Terminal {
			icon = activeStyle.Render(currentSpinner(m.SpinnerFrame))
			style = activeStyle
		}
		fmt.Fprintf(b, "    %s %s\n", icon, style.Render(entry))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s  |  q: quit", elapsed)))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
