// Package session holds the bookkeeping shared by the stopwatch and timer
// trackers: the run-state machine, the append-only start/pause moment history,
// and the sentinel errors surfaced at the tracker API boundary.
package session

import (
	"errors"
	"time"
)

// ErrEmptyHistory is returned when an operation needs a recorded moment but
// the tracker has never been started.
var ErrEmptyHistory = errors.New("session: empty history")

// ErrInvalidState is returned when a transition is requested from the wrong
// state, such as resuming a running tracker or pausing an idle one.
var ErrInvalidState = errors.New("session: invalid state transition")

// State is the run state of a tracker. Trackers are created idle and
// alternate between idle and running; there is no third state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// History is the append-only log of start and pause moments for one session.
// Every resume appends to StartMoments and every pause (including the final
// implicit pause on stop) appends to PauseMoments, so a completed session
// always has len(StartMoments) == len(PauseMoments).
type History struct {
	StartMoments []time.Time
	PauseMoments []time.Time
}

// RecordStart appends a resume moment.
func (h *History) RecordStart(moment time.Time) {
	h.StartMoments = append(h.StartMoments, moment)
}

// RecordPause appends a pause moment.
func (h *History) RecordPause(moment time.Time) {
	h.PauseMoments = append(h.PauseMoments, moment)
}

// Started reports whether the session has ever been resumed.
func (h *History) Started() bool {
	return len(h.StartMoments) > 0
}

// Balanced reports whether every recorded start has a matching pause.
func (h *History) Balanced() bool {
	return len(h.StartMoments) == len(h.PauseMoments)
}

// FirstStart returns the moment the session first began running.
func (h *History) FirstStart() (time.Time, error) {
	if len(h.StartMoments) == 0 {
		return time.Time{}, ErrEmptyHistory
	}
	return h.StartMoments[0], nil
}

// LastStart returns the beginning of the most recent interval.
func (h *History) LastStart() (time.Time, error) {
	if len(h.StartMoments) == 0 {
		return time.Time{}, ErrEmptyHistory
	}
	return h.StartMoments[len(h.StartMoments)-1], nil
}

// LastPause returns the most recent pause moment.
func (h *History) LastPause() (time.Time, error) {
	if len(h.PauseMoments) == 0 {
		return time.Time{}, ErrEmptyHistory
	}
	return h.PauseMoments[len(h.PauseMoments)-1], nil
}
