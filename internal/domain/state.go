package domain

import "fmt"

// State is the poller lifecycle state. Transitions are owned entirely
// by the poller: Stopped → Starting on start, Starting/Active → Active
// on a successful poll, any state → Stopped on stop. Failed polls never
// change the state.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateActive
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Update is the atomically published pair of latest variability value
// and poller status. HRV is nil while the poller is stopped or before
// the first successful poll. An observer never sees a new value with a
// stale status or vice versa.
type Update struct {
	HRV    *Sample
	Status State
}
