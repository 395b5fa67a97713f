package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brandwik/shopfront/internal/provision"
)

// ErrInterrupted is returned when the user quits the dashboard before the
// build reached a terminal status.
var ErrInterrupted = errors.New("build watch interrupted")

// RunBuild runs the dashboard until the updates feed is exhausted. done
// signals that no further updates will arrive; pending ones are drained so
// the final state is rendered before the program closes.
func RunBuild(ctx context.Context, site string, updates <-chan provision.Snapshot, done <-chan struct{}, out io.Writer) error {
	m := NewBuildModel(site)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))

	go func() {
		for {
			select {
			case s, ok := <-updates:
				if !ok {
					p.Send(DoneMsg{})
					return
				}
				p.Send(StatusMsg(s))
			case <-done:
				for {
					select {
					case s, ok := <-updates:
						if !ok {
							p.Send(DoneMsg{})
							return
						}
						p.Send(StatusMsg(s))
					default:
						p.Send(DoneMsg{})
						return
					}
				}
			}
		}
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("build dashboard failed: %w", err)
	}

	fm := final.(Model)
	if fm.Interrupted {
		return ErrInterrupted
	}
	return nil
}
