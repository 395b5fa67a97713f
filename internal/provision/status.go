// Package provision tracks the asynchronous backend job that builds a
// storefront. A Poller queries the remote status on a fixed interval and an
// independent easing ticker advances a smoothed display percentage toward the
// floor of the current status, so the progress bar moves steadily even while
// the backend sits in one stage.
package provision

// Status is the provisioning state reported by the backend job.
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusBuilding        Status = "BUILDING"
	StatusDBCreated       Status = "DB_CREATED"
	StatusDBImporting     Status = "DB_IMPORTING"
	StatusDBPersonalizing Status = "DB_PERSONALIZING"
	StatusCompleted       Status = "COMPLETED"
	StatusFailed          Status = "FAILED"
)

// statusFloors maps each status to the minimum display percentage it stands
// for. FAILED's nominal floor of 0 is never applied to the display; the bar
// holds its last value on failure.
var statusFloors = map[Status]int{
	StatusPending:         5,
	StatusBuilding:        15,
	StatusDBCreated:       20,
	StatusDBImporting:     40,
	StatusDBPersonalizing: 90,
	StatusCompleted:       100,
	StatusFailed:          0,
}

// Floor returns the progress floor for the status. Statuses the client does
// not recognize count as late-stage work: floor 90, non-terminal.
func (s Status) Floor() int {
	if f, ok := statusFloors[s]; ok {
		return f
	}
	return 90
}

// Terminal reports whether no further transitions can occur without an
// external reset.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

const (
	// EaseStep is the display increment applied per easing tick.
	EaseStep = 2

	// NonTerminalCap is the highest percentage shown before COMPLETED
	// arrives from the remote source.
	NonTerminalCap = 95
)

// NextPercent advances the displayed percentage one easing tick toward the
// status floor. The result never decreases and never exceeds the cap; only
// the terminal COMPLETED transition may set 100, outside this function.
func NextPercent(prev int, s Status) int {
	if s.Terminal() {
		return prev
	}
	if target := s.Floor(); prev < target {
		next := prev + EaseStep
		if next > NonTerminalCap {
			return NonTerminalCap
		}
		return next
	}
	if prev >= NonTerminalCap {
		return NonTerminalCap
	}
	return prev
}
