package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brandwik/shopfront/internal/provision"
	"github.com/brandwik/shopfront/internal/ui/tui"
	"github.com/brandwik/shopfront/internal/util/retry"
)

// runBuild watches provisioning until it reaches a terminal status. Each
// observed change is merged into the customer's status record so a rerun
// resumes with the latest known stage.
func (w *Wizard) runBuild(ctx context.Context) error {
	snap := w.store.Snapshot()
	customerID := snap.CustomerID
	if customerID == "" || snap.SiteID() == "" {
		return errors.New("no store build in progress; run `shopfront reset` to start over")
	}

	opts := []provision.Option{provision.WithIntervals(w.pollEvery, w.easeEvery)}
	if w.plain {
		opts = append(opts, provision.WithObserver(provision.ConsoleObserver{}))
	}
	poller := provision.NewPoller(w.client, func() string {
		return w.store.Snapshot().SiteID()
	}, opts...)

	go poller.Run(ctx)
	defer poller.Stop()

	display := make(chan provision.Snapshot, 16)
	go func() {
		defer close(display)
		for {
			select {
			case s := <-poller.Updates():
				w.mergeStatus(customerID, s)
				select {
				case display <- s:
				default:
				}
			case <-poller.Done():
				// Drain anything emitted right before shutdown so the final
				// status still reaches the display.
				for {
					select {
					case s := <-poller.Updates():
						w.mergeStatus(customerID, s)
						select {
						case display <- s:
						default:
						}
					default:
						return
					}
				}
			}
		}
	}()

	var watchErr error
	if w.plain {
		watchErr = w.watchPlain(display)
	} else {
		watchErr = tui.RunBuild(ctx, w.siteLabel(), display, poller.Done(), w.out)
	}
	poller.Stop()
	<-poller.Done()
	if watchErr != nil {
		return watchErr
	}

	final := poller.Snapshot()
	w.mergeStatus(customerID, final)

	switch {
	case final.Status == provision.StatusFailed:
		w.store.SetError(final.Err)
		return fmt.Errorf("store build failed: %s", final.Err)
	case final.Status != provision.StatusCompleted:
		if err := ctx.Err(); err != nil {
			return err
		}
		return errors.New("store build interrupted")
	}

	// Let the finished bar sit for a beat, then push the final save. The
	// build already succeeded server-side, so the save is retried rather
	// than allowed to fail the flow on a transient error.
	time.Sleep(w.hold)
	if err := retry.WithExponentialBackoff(ctx, func() error {
		_, err := w.saver.Save(ctx)
		return err
	}); err != nil {
		return err
	}

	w.store.SetStep(StepReveal)
	return nil
}

// watchPlain prints one line per state change instead of the dashboard.
func (w *Wizard) watchPlain(display <-chan provision.Snapshot) error {
	var last provision.Snapshot
	for s := range display {
		if s.Status != last.Status || s.Percent != last.Percent {
			fmt.Fprintf(w.out, "  %-18s %3d%%\n", s.Status, s.Percent)
			last = s
		}
	}
	return nil
}

// mergeStatus folds a poller snapshot into the customer's status record.
func (w *Wizard) mergeStatus(customerID string, s provision.Snapshot) {
	status := map[string]any{
		"status":  string(s.Status),
		"percent": s.Percent,
	}
	if s.Err != "" {
		status["error"] = s.Err
	}
	w.store.MergeUserField(customerID, "status", status)
}

// siteLabel is the address shown in build and reveal output.
func (w *Wizard) siteLabel() string {
	return fmt.Sprintf("%s.%s", w.store.Snapshot().StepData.SiteName, w.cfg.MainSiteDomain)
}
