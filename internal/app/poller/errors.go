package poller

import "errors"

// ErrEmptyResult reports a fetch that succeeded but returned no
// samples.
var ErrEmptyResult = errors.New("poller: source returned no samples")

// ErrNotStopped reports a Start on a poller that is already starting
// or active.
var ErrNotStopped = errors.New("poller: already started")

// SourceUnavailableError reports a source that could not be queried at
// all. Fatal to the current poll attempt only, never to the process.
type SourceUnavailableError struct {
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return "poller: source unavailable: " + e.Err.Error()
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }
