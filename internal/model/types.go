// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// Target identifies one of the four court positions.
type Target int

// Court positions, in layout order.
const (
	NoTarget Target = iota - 1
	FrontLeft
	FrontRight
	RearLeft
	RearRight
)

// TargetCount is the number of selectable positions.
const TargetCount = 4

var targetNames = [TargetCount]string{"Front-Left", "Front-Right", "Rear-Left", "Rear-Right"}

// Valid reports whether t names a position.
func (t Target) Valid() bool {
	return t >= 0 && int(t) < TargetCount
}

func (t Target) String() string {
	if !t.Valid() {
		return "none"
	}
	return targetNames[t]
}

// ScheduleConfig defines cue timing for a drill session.
type ScheduleConfig struct {
	BaseInterval  time.Duration
	Jitter        time.Duration
	JitterEnabled bool
	PreCueLead    time.Duration
	CueVisible    time.Duration
	PostCueHold   time.Duration
}

// DefaultScheduleConfig returns the stock drill timing.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		BaseInterval:  3 * time.Second,
		Jitter:        200 * time.Millisecond,
		JitterEnabled: true,
		PreCueLead:    150 * time.Millisecond,
		CueVisible:    450 * time.Millisecond,
		PostCueHold:   300 * time.Millisecond,
	}
}

// Validate rejects timing that the scheduler cannot run with.
func (c ScheduleConfig) Validate() error {
	if c.BaseInterval <= 0 {
		return fmt.Errorf("--interval must be > 0")
	}
	if c.CueVisible <= 0 {
		return fmt.Errorf("--visible must be > 0")
	}
	if c.PreCueLead < 0 {
		return fmt.Errorf("--lead must be >= 0")
	}
	if c.PostCueHold < 0 {
		return fmt.Errorf("--hold must be >= 0")
	}
	if c.Jitter < 0 {
		return fmt.Errorf("--jitter must be >= 0")
	}
	return nil
}

// Snapshot is what the shell needs to draw one frame.
type Snapshot struct {
	Highlighted    Target
	WarningVisible bool
}

// HasHighlight reports whether a target is lit.
func (s Snapshot) HasHighlight() bool {
	return s.Highlighted.Valid()
}

// DrillConfig defines shell settings around the schedule.
type DrillConfig struct {
	Schedule ScheduleConfig
	FPS      int
}
