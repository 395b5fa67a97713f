package provision

import (
	"context"
	"sync"
	"time"

	"github.com/brandwik/shopfront/internal/api"
)

const (
	// PollInterval is how often the remote status is fetched.
	PollInterval = 4 * time.Second

	// EaseInterval is how often the display percentage advances.
	EaseInterval = 2 * time.Second

	// CompletionHold keeps the 100% state visible before the flow moves on.
	CompletionHold = 1500 * time.Millisecond
)

// StatusClient is the remote surface the poller queries.
type StatusClient interface {
	GetStoreStatus(ctx context.Context, siteID string) (*api.StoreStatus, error)
}

// Snapshot is the poller's externally visible state at a point in time.
type Snapshot struct {
	Status   Status
	Percent  int
	Timeline []string
	Err      string
	Terminal bool
}

// Option configures a Poller.
type Option func(*Poller)

// WithIntervals overrides the poll and easing intervals (tests use short
// ones).
func WithIntervals(poll, ease time.Duration) Option {
	return func(p *Poller) {
		p.pollEvery = poll
		p.easeEvery = ease
	}
}

// WithObserver attaches a structured event observer.
func WithObserver(o Observer) Option {
	return func(p *Poller) { p.observer = o }
}

// Poller drives two independent tickers: a status poll against the backend
// job and a cosmetic easing tick for the displayed percentage. The displayed
// value is monotonically non-decreasing while the job is live and capped at
// 95 until COMPLETED is observed; FAILED stops polling and holds the last
// value. Both tickers stop on terminal status, Stop, or context cancellation.
type Poller struct {
	client    StatusClient
	siteID    func() string
	observer  Observer
	pollEvery time.Duration
	easeEvery time.Duration

	mu      sync.Mutex
	snap    Snapshot
	started bool

	updates  chan Snapshot
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewPoller creates a poller. siteID is re-evaluated on every poll tick so a
// job reference that only becomes known after registration still starts the
// loop; ticks with an empty reference are skipped.
func NewPoller(client StatusClient, siteID func() string, opts ...Option) *Poller {
	p := &Poller{
		client:    client,
		siteID:    siteID,
		observer:  NopObserver{},
		pollEvery: PollInterval,
		easeEvery: EaseInterval,
		snap:      Snapshot{Status: StatusPending},
		updates:   make(chan Snapshot, 16),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Updates delivers state snapshots whenever the status or percentage moves.
func (p *Poller) Updates() <-chan Snapshot {
	return p.updates
}

// Done is closed once the poller has fully stopped.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Snapshot returns the current state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapLocked()
}

func (p *Poller) snapLocked() Snapshot {
	s := p.snap
	s.Timeline = append([]string(nil), p.snap.Timeline...)
	return s
}

// Stop tears the poller down. Safe to call multiple times; required on step
// teardown so no stale tick outlives the build stage.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

// Run blocks, driving both tickers until a terminal status, Stop, or ctx
// cancellation. Callers run it in a goroutine and watch Updates/Done.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	pollT := time.NewTicker(p.pollEvery)
	defer pollT.Stop()
	easeT := time.NewTicker(p.easeEvery)
	defer easeT.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-pollT.C:
			if terminal := p.poll(ctx); terminal {
				return
			}
		case <-easeT.C:
			p.ease()
		}
	}
}

// poll fetches the remote status once. Errors are absorbed: the loop keeps
// going and the next tick tries again. Returns true on a terminal status.
func (p *Poller) poll(ctx context.Context) bool {
	id := p.siteID()
	if id == "" {
		return false
	}

	p.mu.Lock()
	if !p.started {
		p.started = true
		p.observer.Event(Event{Type: EventPollStarted, Status: p.snap.Status, Percent: p.snap.Percent, Timestamp: time.Now()})
	}
	p.mu.Unlock()

	st, err := p.client.GetStoreStatus(ctx, id)
	if err != nil {
		p.observer.Event(Event{Type: EventPollError, Message: err.Error(), Timestamp: time.Now()})
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	status := Status(st.Status)
	changed := status != p.snap.Status
	p.snap.Status = status
	if len(st.Timeline) > 0 {
		p.snap.Timeline = append([]string(nil), st.Timeline...)
	}

	switch status {
	case StatusCompleted:
		p.snap.Percent = 100
		p.snap.Terminal = true
		p.observer.Event(Event{Type: EventCompleted, Status: status, Percent: 100, Timestamp: time.Now()})
		p.emitLocked()
		return true
	case StatusFailed:
		// Hold the last displayed value; the nominal floor of 0 would make
		// the bar collapse under the error message.
		p.snap.Terminal = true
		p.snap.Err = failureMessage(p.snap.Timeline)
		p.observer.Event(Event{Type: EventFailed, Status: status, Percent: p.snap.Percent, Message: p.snap.Err, Timestamp: time.Now()})
		p.emitLocked()
		return true
	}

	if changed {
		p.observer.Event(Event{Type: EventStatusChanged, Status: status, Percent: p.snap.Percent, Timestamp: time.Now()})
		p.emitLocked()
	}
	return false
}

// ease advances the displayed percentage one step toward the current floor.
func (p *Poller) ease() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap.Terminal {
		return
	}
	next := NextPercent(p.snap.Percent, p.snap.Status)
	if next != p.snap.Percent {
		p.snap.Percent = next
		p.emitLocked()
	}
}

func (p *Poller) emitLocked() {
	select {
	case p.updates <- p.snapLocked():
	default:
		// Drop rather than block; consumers resync from Snapshot.
	}
}

func failureMessage(timeline []string) string {
	if len(timeline) > 0 {
		return timeline[len(timeline)-1]
	}
	return "provisioning failed"
}
