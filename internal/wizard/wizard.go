// Package wizard drives the interactive onboarding flow: claim an address,
// fill in business details and credentials, watch the build, then reveal the
// finished storefront. Every step reads and writes the shared state store, so
// an interrupted run resumes at the step it left off.
package wizard

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/brandwik/shopfront/internal/api"
	"github.com/brandwik/shopfront/internal/config"
	"github.com/brandwik/shopfront/internal/lead"
	"github.com/brandwik/shopfront/internal/provision"
	"github.com/brandwik/shopfront/internal/state"
)

// Step indices. The sequencer never enforces gating itself: each step only
// advances the store after its own checks and remote round trips succeed.
const (
	StepPrompt = iota
	StepDetails
	StepBuild
	StepReveal
)

// Wizard owns the step sequencing and the remote clients the steps share.
type Wizard struct {
	cfg    *config.Config
	client *api.Client
	store  *state.Store
	saver  *lead.Saver
	plain  bool
	out    io.Writer

	pollEvery time.Duration
	easeEvery time.Duration
	hold      time.Duration
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithPlainOutput disables the full-screen build dashboard in favor of plain
// log lines. Used when stdout is not a terminal worth animating.
func WithPlainOutput() Option {
	return func(w *Wizard) { w.plain = true }
}

// WithOutput redirects wizard output (tests capture it).
func WithOutput(out io.Writer) Option {
	return func(w *Wizard) { w.out = out }
}

// WithBuildTiming overrides the poll cadence and completion hold (tests use
// short values).
func WithBuildTiming(poll, ease, hold time.Duration) Option {
	return func(w *Wizard) {
		w.pollEvery = poll
		w.easeEvery = ease
		w.hold = hold
	}
}

// New creates a wizard over the given config, API client, and state store.
func New(cfg *config.Config, client *api.Client, store *state.Store, opts ...Option) *Wizard {
	w := &Wizard{
		cfg:       cfg,
		client:    client,
		store:     store,
		saver:     lead.NewSaver(client, store),
		out:       os.Stdout,
		pollEvery: provision.PollInterval,
		easeEvery: provision.EaseInterval,
		hold:      provision.CompletionHold,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes steps from the store's current position until the reveal step
// finishes or a step fails. Backward navigation inside a step is handled by
// the step itself; Run only ever reads the updated position.
func (w *Wizard) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch w.store.Snapshot().CurrentStep {
		case StepPrompt:
			err = w.runPrompt(ctx)
		case StepDetails:
			err = w.runDetails(ctx)
		case StepBuild:
			err = w.runBuild(ctx)
		case StepReveal:
			return w.runReveal()
		default:
			// Persisted state from an older layout; start over at the top.
			w.store.SetStep(StepPrompt)
		}
		if err != nil {
			return err
		}
	}
}

func notEmpty(label string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}
