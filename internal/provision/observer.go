package provision

import (
	"log"
	"time"
)

// EventType classifies poller events.
type EventType string

const (
	// EventPollStarted indicates the poll loop picked up a site reference.
	EventPollStarted EventType = "poll.started"
	// EventStatusChanged indicates the remote status moved to a new stage.
	EventStatusChanged EventType = "status.changed"
	// EventPollError indicates a status query failed; the loop continues.
	EventPollError EventType = "poll.error"
	// EventCompleted indicates the terminal COMPLETED status was observed.
	EventCompleted EventType = "provision.completed"
	// EventFailed indicates the terminal FAILED status was observed.
	EventFailed EventType = "provision.failed"
)

// Event is a structured poller event.
type Event struct {
	Type      EventType
	Status    Status
	Percent   int
	Message   string
	Timestamp time.Time
}

// Observer receives structured events from the poller.
type Observer interface {
	Event(e Event)
}

// ConsoleObserver logs events through the standard log package.
type ConsoleObserver struct{}

// Event implements Observer.
func (ConsoleObserver) Event(e Event) {
	if e.Message != "" {
		log.Printf("[%s] status=%s percent=%d: %s", e.Type, e.Status, e.Percent, e.Message)
		return
	}
	log.Printf("[%s] status=%s percent=%d", e.Type, e.Status, e.Percent)
}

// NopObserver discards all events.
type NopObserver struct{}

// Event implements Observer.
func (NopObserver) Event(Event) {}
