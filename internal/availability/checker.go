// Package availability validates subdomain and email uniqueness against the
// remote registry. Checks are debounced so only the last input inside the
// quiet window reaches the network, and a generation counter guarantees that
// a superseded in-flight response is never applied.
package availability

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/brandwik/shopfront/internal/api"
)

// DebounceDelay is the quiet window after the last keystroke before a remote
// check fires.
const DebounceDelay = 500 * time.Millisecond

// Field identifies which uniqueness registry a check targets.
type Field string

const (
	FieldSubdomain Field = "subdomain"
	FieldEmail     Field = "email"
)

// Result is the settled outcome of a check. Available is nil while the value
// is unknown (too short, wrong shape, or unparseable server reply).
type Result struct {
	Available *bool
	Reason    string
}

func known(v bool, reason string) Result {
	return Result{Available: &v, Reason: reason}
}

func unknown(reason string) Result {
	return Result{Reason: reason}
}

// OK reports whether the value was positively confirmed available.
func (r Result) OK() bool {
	return r.Available != nil && *r.Available
}

// Update pairs a settled result with the input that produced it.
type Update struct {
	Field  Field
	Value  string
	Result Result
}

// Client is the remote registry surface the checker needs.
type Client interface {
	CheckSubdomain(ctx context.Context, subdomain string) (*api.Availability, error)
	CheckEmail(ctx context.Context, email string) (*api.Availability, error)
}

// Checker debounces per-keystroke input and emits settled results on its
// Updates channel. At most one pending timer exists; every Submit supersedes
// the previous one, and only the latest generation's response is emitted, so
// every submitted value eventually settles exactly once or is superseded.
type Checker struct {
	client Client
	delay  time.Duration

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	closed bool

	updates chan Update
}

// NewChecker creates a checker with the standard debounce delay.
func NewChecker(client Client) *Checker {
	return NewCheckerWithDelay(client, DebounceDelay)
}

// NewCheckerWithDelay creates a checker with a custom quiet window (tests use
// short windows).
func NewCheckerWithDelay(client Client, delay time.Duration) *Checker {
	return &Checker{
		client:  client,
		delay:   delay,
		updates: make(chan Update, 8),
	}
}

// Updates delivers settled results. Short-circuited inputs settle
// synchronously; debounced ones settle after the quiet window and the remote
// round trip.
func (c *Checker) Updates() <-chan Update {
	return c.updates
}

// Submit registers a keystroke's worth of input. Any pending check is
// discarded, never queued. Inputs that fail the local rules settle
// immediately without a network call.
func (c *Checker) Submit(field Field, raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	// Every new input invalidates interest in older responses.
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	value, result, settled := shortCircuit(field, raw)
	if settled {
		c.emitLocked(Update{Field: field, Value: value, Result: result})
		return
	}

	c.timer = time.AfterFunc(c.delay, func() {
		c.fire(field, value, gen)
	})
}

// CheckNow runs a check synchronously, bypassing the debounce. Used for the
// final gating recheck before a step advances.
func (c *Checker) CheckNow(ctx context.Context, field Field, raw string) Result {
	value, result, settled := shortCircuit(field, raw)
	if settled {
		return result
	}
	return c.query(ctx, field, value)
}

// Close cancels the pending debounce timer and suppresses any in-flight
// response, so no stale result fires after teardown.
func (c *Checker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// shortCircuit applies the local rules. It returns the sanitized value, and
// when settled is true the check never reaches the network.
func shortCircuit(field Field, raw string) (value string, result Result, settled bool) {
	switch field {
	case FieldSubdomain:
		value = SanitizeSubdomain(raw)
		if value != raw {
			return value, known(false, "invalid characters in subdomain"), true
		}
		if len(value) < MinSubdomainLength {
			return value, unknown(""), true
		}
		return value, Result{}, false
	case FieldEmail:
		value = raw
		if !ValidEmailShape(raw) {
			return value, unknown(""), true
		}
		return value, Result{}, false
	}
	return raw, unknown("unknown field"), true
}

// fire runs the debounced remote check and emits the result unless a newer
// submission has since been issued.
func (c *Checker) fire(field Field, value string, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := c.query(ctx, field, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return
	}
	c.emitLocked(Update{Field: field, Value: value, Result: result})
}

func (c *Checker) query(ctx context.Context, field Field, value string) Result {
	var (
		avail *api.Availability
		err   error
	)
	switch field {
	case FieldSubdomain:
		avail, err = c.client.CheckSubdomain(ctx, value)
	case FieldEmail:
		avail, err = c.client.CheckEmail(ctx, value)
	}

	switch {
	case errors.Is(err, api.ErrMalformed):
		return unknown("invalid response")
	case err != nil:
		return known(false, "network error")
	}

	if avail.Error != "" {
		return known(false, avail.Error)
	}
	if !avail.Available {
		return known(false, "already taken")
	}
	return known(true, "")
}

func (c *Checker) emitLocked(u Update) {
	select {
	case c.updates <- u:
	default:
		// Never block under the lock; the buffer outlasts any input burst.
	}
}
