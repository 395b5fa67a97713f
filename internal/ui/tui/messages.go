// Package tui provides the Bubble Tea dashboard shown while a storefront is
// being provisioned.
package tui

import "github.com/brandwik/shopfront/internal/provision"

// StatusMsg carries the latest poller snapshot.
type StatusMsg provision.Snapshot

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// DoneMsg signals that the build watch is over and the dashboard should
// close.
type DoneMsg struct{}
