// Package stopwatch implements a count-up tracker with lap splitting, modeled
// after the stopwatch of a mobile clock application.
//
// A Stopwatch is created idle at zero and does not run until Resume (or
// PauseOrResume) is called. While running, Lap records split times; Read
// reports total elapsed time at any point. Stop closes the session, returns
// the detached Session record, and resets the stopwatch to zero.
//
// Elapsed time is accumulated across any number of pause/resume cycles:
//
//	                 lap    lap          lap
//	start       start |      |     start  |
//	  o--------x   o-----------x      o-----------x
//	         pause           pause            stop
//
// A Stopwatch assumes a single owner; it performs no locking.
package stopwatch

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/goodtune/clockcore/clock"
	"github.com/goodtune/clockcore/internal/metrics"
	"github.com/goodtune/clockcore/session"
)

// Session is the completed record of one stopwatch run, detached from the
// tracker on Stop. It always contains at least one start moment, at least one
// lap, and as many pause moments as start moments.
type Session struct {
	session.History

	// Elapsed is the total running time accumulated over the session,
	// excluding paused gaps.
	Elapsed time.Duration

	// LapMoments holds the moment of each lap split; the last entry is the
	// implicit split taken by Stop.
	LapMoments []time.Time

	// Laps holds the duration of each lap, parallel to LapMoments. Laps
	// partition the session: they sum to Elapsed exactly.
	Laps []time.Duration
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

// Options configures a Stopwatch. The zero value selects the system clock
// and discards log output.
type Options struct {
	Clock  clock.Clock
	Logger *zerolog.Logger
}

// Stopwatch is a count-up tracker with lap recording.
type Stopwatch struct {
	clk    clock.Clock
	logger zerolog.Logger

	state      session.State
	lapElapsed time.Duration // banked running time of the open lap
	lapAnchor  time.Time     // start of the lap segment currently accruing
	record     Session
}

// New returns an idle Stopwatch at zero using the system clock.
func New() *Stopwatch {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an idle Stopwatch at zero.
func NewWithOptions(opts Options) *Stopwatch {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "stopwatch").Logger()
	}

	return &Stopwatch{
		clk:    opts.Clock,
		logger: logger,
	}
}

// State returns the current run state.
func (s *Stopwatch) State() session.State {
	return s.state
}

// Running reports whether the stopwatch is currently running.
func (s *Stopwatch) Running() bool {
	return s.state == session.StateRunning
}

// Read returns the total elapsed time. While paused it returns the banked
// total; while running it adds the open interval. Read has no side effects.
func (s *Stopwatch) Read() time.Duration {
	return s.ReadAt(s.clk.Now())
}

// ReadAt is Read evaluated at a caller-supplied moment.
func (s *Stopwatch) ReadAt(moment time.Time) time.Duration {
	if s.state == session.StateIdle {
		return s.record.Elapsed
	}
	// Running implies at least one recorded start.
	last, _ := s.record.LastStart()
	return s.record.Elapsed + moment.Sub(last)
}

// Resume starts the stopwatch. It fails with session.ErrInvalidState if the
// stopwatch is already running.
func (s *Stopwatch) Resume() error {
	return s.ResumeAt(s.clk.Now())
}

// ResumeAt is Resume at a caller-supplied moment.
func (s *Stopwatch) ResumeAt(moment time.Time) error {
	if s.state == session.StateRunning {
		return fmt.Errorf("stopwatch: resume while running: %w", session.ErrInvalidState)
	}

	fresh := !s.record.Started()
	s.record.RecordStart(moment)
	s.lapAnchor = moment
	s.state = session.StateRunning

	if fresh {
		metrics.SessionsStarted.WithLabelValues(metrics.TrackerStopwatch).Inc()
	}
	s.logger.Debug().Time("moment", moment).Msg("Stopwatch resumed")
	return nil
}

// Pause stops the clock without closing the session. It fails with
// session.ErrInvalidState if the stopwatch is not running.
func (s *Stopwatch) Pause() error {
	return s.PauseAt(s.clk.Now())
}

// PauseAt is Pause at a caller-supplied moment.
func (s *Stopwatch) PauseAt(moment time.Time) error {
	if s.state != session.StateRunning {
		return fmt.Errorf("stopwatch: pause while idle: %w", session.ErrInvalidState)
	}

	last, _ := s.record.LastStart()
	s.record.RecordPause(moment)
	s.record.Elapsed += moment.Sub(last)
	// Bank the open lap segment so a lap spanning this pause keeps its time.
	s.lapElapsed += moment.Sub(s.lapAnchor)
	s.state = session.StateIdle

	s.logger.Debug().
		Time("moment", moment).
		Dur("elapsed", s.record.Elapsed).
		Msg("Stopwatch paused")
	return nil
}

// PauseOrResume pauses a running stopwatch and resumes an idle one.
func (s *Stopwatch) PauseOrResume() error {
	return s.PauseOrResumeAt(s.clk.Now())
}

// PauseOrResumeAt is PauseOrResume at a caller-supplied moment.
func (s *Stopwatch) PauseOrResumeAt(moment time.Time) error {
	if s.state == session.StateRunning {
		return s.PauseAt(moment)
	}
	return s.ResumeAt(moment)
}

// Lap records a split and returns the duration of the just-completed lap.
// The lap duration carries time banked across pause/resume cycles within the
// lap, not just time since the last resume. Lapping while paused reports
// false and has no side effect.
func (s *Stopwatch) Lap() (time.Duration, bool) {
	return s.LapAt(s.clk.Now())
}

// LapAt is Lap at a caller-supplied moment.
func (s *Stopwatch) LapAt(moment time.Time) (time.Duration, bool) {
	if s.state != session.StateRunning {
		return 0, false
	}

	lap := s.lapElapsed + moment.Sub(s.lapAnchor)
	s.record.LapMoments = append(s.record.LapMoments, moment)
	s.record.Laps = append(s.record.Laps, lap)
	s.lapElapsed = 0
	s.lapAnchor = moment

	metrics.LapsRecorded.Inc()
	s.logger.Debug().
		Time("moment", moment).
		Dur("lap", lap).
		Int("lap_number", len(s.record.Laps)).
		Msg("Lap recorded")
	return lap, true
}

// Stop closes the session and resets the stopwatch to idle at zero,
// returning the detached Session. A final lap split is always recorded, and
// if the stopwatch is running the open interval is folded in first, so the
// returned record satisfies sum(Laps) == Elapsed. Stop fails with
// session.ErrEmptyHistory if the stopwatch was never started.
func (s *Stopwatch) Stop() (Session, error) {
	return s.StopAt(s.clk.Now())
}

// StopAt is Stop at a caller-supplied moment.
func (s *Stopwatch) StopAt(moment time.Time) (Session, error) {
	if !s.record.Started() {
		return Session{}, fmt.Errorf("stopwatch: stop before first resume: %w", session.ErrEmptyHistory)
	}

	lap := s.lapElapsed
	if s.state == session.StateRunning {
		lap += moment.Sub(s.lapAnchor)
		last, _ := s.record.LastStart()
		s.record.RecordPause(moment)
		s.record.Elapsed += moment.Sub(last)
	}
	s.record.LapMoments = append(s.record.LapMoments, moment)
	s.record.Laps = append(s.record.Laps, lap)

	done := s.record
	s.record = Session{}
	s.lapElapsed = 0
	s.lapAnchor = time.Time{}
	s.state = session.StateIdle

	metrics.LapsRecorded.Inc()
	metrics.SessionsCompleted.WithLabelValues(metrics.TrackerStopwatch).Inc()
	metrics.SessionSeconds.WithLabelValues(metrics.TrackerStopwatch).Observe(done.Elapsed.Seconds())
	s.logger.Debug().
		Time("moment", moment).
		Dur("elapsed", done.Elapsed).
		Int("laps", len(done.Laps)).
		Msg("Stopwatch stopped")
	return done, nil
}
