// Package timer implements a countdown tracker, modeled after the timer of a
// mobile clock application.
//
// A Timer is created idle with its full configured duration remaining and
// does not run until Resume (or PauseOrResume) is called. Read reports the
// remaining time; it goes negative once the timer is overdue (no clamping,
// and nothing fires — callers poll). Stop closes the session, returns the
// detached Session record, and resets the timer to its configured duration.
//
// A Timer assumes a single owner; it performs no locking.
package timer

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/goodtune/clockcore/clock"
	"github.com/goodtune/clockcore/internal/metrics"
	"github.com/goodtune/clockcore/session"
)

// Session is the completed record of one timer run, detached from the
// tracker on Stop. It always contains at least one start moment and as many
// pause moments as start moments.
type Session struct {
	session.History

	// Total is the configured countdown duration.
	Total time.Duration

	// Remaining is the countdown balance as of the last explicit pause.
	// Stop does not fold the open interval into it; see Timer.Stop.
	Remaining time.Duration
}

// Start returns the moment the session first began running.
func (s Session) Start() time.Time {
	moment, _ := s.FirstStart()
	return moment
}

// End returns the final pause moment of the session.
func (s Session) End() time.Time {
	moment, _ := s.LastPause()
	return moment
}

// Expected returns the configured countdown duration.
func (s Session) Expected() time.Duration {
	return s.Total
}

// Actual returns the wall-clock span of the session, pauses included.
func (s Session) Actual() time.Duration {
	return s.End().Sub(s.Start())
}

// Options configures a Timer. The zero value selects the system clock and
// discards log output.
type Options struct {
	Clock  clock.Clock
	Logger *zerolog.Logger
}

// Timer is a countdown tracker.
type Timer struct {
	clk    clock.Clock
	logger zerolog.Logger

	state  session.State
	total  time.Duration
	record Session
}

// New returns an idle Timer that will count down from total, using the
// system clock.
func New(total time.Duration) *Timer {
	return NewWithOptions(total, Options{})
}

// NewWithOptions returns an idle Timer that will count down from total.
func NewWithOptions(total time.Duration, opts Options) *Timer {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "timer").Logger()
	}

	return &Timer{
		clk:    opts.Clock,
		logger: logger,
		total:  total,
		record: Session{Total: total, Remaining: total},
	}
}

// State returns the current run state.
func (t *Timer) State() session.State {
	return t.state
}

// Running reports whether the timer is currently counting down.
func (t *Timer) Running() bool {
	return t.state == session.StateRunning
}

// Total returns the configured countdown duration.
func (t *Timer) Total() time.Duration {
	return t.total
}

// Read returns the remaining time. While paused it returns the banked
// balance; while running it subtracts the open interval. The result is
// negative once the timer is overdue. Read has no side effects.
func (t *Timer) Read() time.Duration {
	return t.ReadAt(t.clk.Now())
}

// ReadAt is Read evaluated at a caller-supplied moment.
func (t *Timer) ReadAt(moment time.Time) time.Duration {
	if t.state == session.StateIdle {
		return t.record.Remaining
	}
	// Running implies at least one recorded start.
	last, _ := t.record.LastStart()
	return t.record.Remaining - moment.Sub(last)
}

// Resume starts the countdown. It fails with session.ErrInvalidState if the
// timer is already running.
func (t *Timer) Resume() error {
	return t.ResumeAt(t.clk.Now())
}

// ResumeAt is Resume at a caller-supplied moment.
func (t *Timer) ResumeAt(moment time.Time) error {
	if t.state == session.StateRunning {
		return fmt.Errorf("timer: resume while running: %w", session.ErrInvalidState)
	}

	fresh := !t.record.Started()
	t.record.RecordStart(moment)
	t.state = session.StateRunning

	if fresh {
		metrics.SessionsStarted.WithLabelValues(metrics.TrackerTimer).Inc()
	}
	t.logger.Debug().Time("moment", moment).Msg("Timer resumed")
	return nil
}

// Pause stops the countdown without closing the session. It fails with
// session.ErrInvalidState if the timer is not running.
func (t *Timer) Pause() error {
	return t.PauseAt(t.clk.Now())
}

// PauseAt is Pause at a caller-supplied moment.
func (t *Timer) PauseAt(moment time.Time) error {
	if t.state != session.StateRunning {
		return fmt.Errorf("timer: pause while idle: %w", session.ErrInvalidState)
	}

	last, _ := t.record.LastStart()
	t.record.RecordPause(moment)
	t.record.Remaining -= moment.Sub(last)
	t.state = session.StateIdle

	t.logger.Debug().
		Time("moment", moment).
		Dur("remaining", t.record.Remaining).
		Msg("Timer paused")
	return nil
}

// PauseOrResume pauses a running timer and resumes an idle one.
func (t *Timer) PauseOrResume() error {
	return t.PauseOrResumeAt(t.clk.Now())
}

// PauseOrResumeAt is PauseOrResume at a caller-supplied moment.
func (t *Timer) PauseOrResumeAt(moment time.Time) error {
	if t.state == session.StateRunning {
		return t.PauseAt(moment)
	}
	return t.ResumeAt(moment)
}

// Stop closes the session and resets the timer to idle at its configured
// duration, returning the detached Session. If the timer is running, the
// stop moment is recorded as the final pause but the open interval is NOT
// folded into Remaining: the record's Remaining is the balance as of the
// last explicit pause. Stop fails with session.ErrEmptyHistory if the timer
// was never started.
func (t *Timer) Stop() (Session, error) {
	return t.StopAt(t.clk.Now())
}

// StopAt is Stop at a caller-supplied moment.
func (t *Timer) StopAt(moment time.Time) (Session, error) {
	if !t.record.Started() {
		return Session{}, fmt.Errorf("timer: stop before first resume: %w", session.ErrEmptyHistory)
	}

	if t.state == session.StateRunning {
		t.record.RecordPause(moment)
	}

	done := t.record
	t.record = Session{Total: t.total, Remaining: t.total}
	t.state = session.StateIdle

	accounted := done.Total - done.Remaining
	metrics.SessionsCompleted.WithLabelValues(metrics.TrackerTimer).Inc()
	metrics.SessionSeconds.WithLabelValues(metrics.TrackerTimer).Observe(accounted.Seconds())
	t.logger.Debug().
		Time("moment", moment).
		Dur("remaining", done.Remaining).
		Msg("Timer stopped")
	return done, nil
}
