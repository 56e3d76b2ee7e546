// Package plan previews a cue timeline without a terminal UI.
package plan

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/footwork/internal/generator"
	"github.com/verte-zerg/footwork/internal/model"
	"github.com/verte-zerg/footwork/internal/scheduler"
)

// DefaultStep matches one frame at 60 Hz.
const DefaultStep = time.Second / 60

// Entry is one fired cue in a simulated run.
type Entry struct {
	Index    int
	At       time.Duration
	Target   model.Target
	Interval time.Duration
	WarnAt   time.Duration
}

var (
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2828")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6478DC"))
)

// Simulate runs a scheduler on a synthetic clock advancing by step until
// cues have fired. Times are relative to the start of the run.
func Simulate(cfg model.ScheduleConfig, gen *generator.Generator, cues int, step time.Duration) ([]Entry, error) {
	if cues <= 0 {
		return nil, fmt.Errorf("--cues must be > 0")
	}
	if step <= 0 {
		step = DefaultStep
	}
	sched, err := scheduler.New(cfg, gen)
	if err != nil {
		return nil, err
	}

	start := time.Unix(0, 0)
	now := start
	sched.Start(now)
	warnAt := sched.PreCueAt().Sub(start)
	prev := time.Duration(0)

	entries := make([]Entry, 0, cues)
	for len(entries) < cues {
		now = now.Add(step)
		cue := sched.Advance(now)
		if !cue.Fired {
			continue
		}
		at := cue.At.Sub(start)
		entries = append(entries, Entry{
			Index:    len(entries) + 1,
			At:       at,
			Target:   cue.Target,
			Interval: at - prev,
			WarnAt:   warnAt,
		})
		prev = at
		warnAt = sched.PreCueAt().Sub(start)
	}
	return entries, nil
}

// Write prints one line per entry, styled when color is set.
func Write(w io.Writer, entries []Entry, color bool) error {
	style := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}
	for _, e := range entries {
		line := fmt.Sprintf("%3d  %s  %s  (gap %s, warn %s)",
			e.Index,
			style(timeStyle, formatOffset(e.At)),
			style(targetStyle, fmt.Sprintf("%-11s", e.Target)),
			e.Interval.Round(time.Millisecond),
			style(warnStyle, formatOffset(e.WarnAt)),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("%8.3fs", d.Seconds())
}
