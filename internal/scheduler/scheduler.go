// Package scheduler decides when cues fire and what is visible between them.
//
// A Scheduler is driven entirely by the timestamps passed to it; it owns no
// timers or goroutines and must be used from a single goroutine.
package scheduler

import (
	"fmt"
	"time"

	"github.com/verte-zerg/footwork/internal/generator"
	"github.com/verte-zerg/footwork/internal/model"
)

// leadCapRatio bounds the warning lead to a fraction of the interval.
const leadCapRatio = 0.9

// Cue reports the outcome of one Advance call.
type Cue struct {
	Fired    bool
	Target   model.Target
	At       time.Time
	Next     time.Time
	Interval time.Duration
}

// Scheduler is the cue timing state machine.
type Scheduler struct {
	cfg model.ScheduleConfig
	gen *generator.Generator

	running     bool
	lastChosen  model.Target
	active      model.Target
	activeUntil time.Time

	nextCue     time.Time
	preCue      time.Time
	preCueShown bool
	holdUntil   time.Time
}

// New validates cfg and returns a stopped scheduler.
func New(cfg model.ScheduleConfig, gen *generator.Generator) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	if gen == nil {
		gen = generator.New()
	}
	return &Scheduler{
		cfg:        cfg,
		gen:        gen,
		lastChosen: model.NoTarget,
		active:     model.NoTarget,
	}, nil
}

// Start begins a fresh run at now, discarding any previous history.
func (s *Scheduler) Start(now time.Time) {
	s.lastChosen = model.NoTarget
	s.active = model.NoTarget
	s.activeUntil = now
	s.preCueShown = false
	s.holdUntil = now
	s.schedule(now)
	s.running = true
}

// Stop halts the run. Timestamps are left as they are until the next Start.
func (s *Scheduler) Stop() {
	s.running = false
}

// Running reports whether a run is active.
func (s *Scheduler) Running() bool {
	return s.running
}

// Advance moves the state machine to now. It is a no-op while stopped.
func (s *Scheduler) Advance(now time.Time) Cue {
	if !s.running {
		return Cue{Target: model.NoTarget}
	}
	if s.active.Valid() && !now.Before(s.activeUntil) {
		s.active = model.NoTarget
	}
	if !s.preCueShown && !now.Before(s.preCue) {
		s.preCueShown = true
	}
	if now.Before(s.nextCue) {
		return Cue{Target: model.NoTarget, Next: s.nextCue}
	}

	target := s.gen.NextTarget(model.TargetCount, s.lastChosen)
	s.lastChosen = target
	s.active = target
	s.activeUntil = now.Add(s.cfg.CueVisible)
	s.holdUntil = now.Add(s.cfg.PostCueHold)
	interval := s.schedule(now)
	s.preCueShown = false

	return Cue{
		Fired:    true,
		Target:   target,
		At:       now,
		Next:     s.nextCue,
		Interval: interval,
	}
}

// Snapshot reports what should be drawn at now without changing state.
func (s *Scheduler) Snapshot(now time.Time) model.Snapshot {
	return model.Snapshot{
		Highlighted:    s.active,
		WarningVisible: s.running && (s.preCueShown || now.Before(s.holdUntil)),
	}
}

// NextCueAt returns when the next cue fires.
func (s *Scheduler) NextCueAt() time.Time {
	return s.nextCue
}

// PreCueAt returns when the warning for the next cue turns on.
func (s *Scheduler) PreCueAt() time.Time {
	return s.preCue
}

// ActiveUntil returns when the lit target turns off.
func (s *Scheduler) ActiveUntil() time.Time {
	return s.activeUntil
}

// schedule draws the next interval and sets nextCue and preCue together.
func (s *Scheduler) schedule(now time.Time) time.Duration {
	interval := s.gen.NextInterval(s.cfg)
	s.nextCue = now.Add(interval)
	s.preCue = preCueTime(now, s.nextCue, s.cfg.PreCueLead, interval)
	return interval
}

func preCueTime(now, next time.Time, lead, interval time.Duration) time.Time {
	lead = min(lead, time.Duration(float64(interval)*leadCapRatio))
	at := next.Add(-lead)
	if at.Before(now) {
		return now
	}
	return at
}
