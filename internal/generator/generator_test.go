package generator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/footwork/internal/model"
)

type fixedSource struct {
	idx int
	f   float64
}

func (s fixedSource) Intn(n int) int { return s.idx % n }

func (s fixedSource) Float64() float64 { return s.f }

func TestNextTargetSkipsLast(t *testing.T) {
	tests := []struct {
		name string
		idx  int
		last model.Target
		want model.Target
	}{
		{name: "no history", idx: 2, last: model.NoTarget, want: model.RearLeft},
		{name: "below last", idx: 0, last: model.FrontRight, want: model.FrontLeft},
		{name: "at last shifts up", idx: 1, last: model.FrontRight, want: model.RearLeft},
		{name: "top slot", idx: 2, last: model.RearRight, want: model.RearLeft},
		{name: "last is first", idx: 0, last: model.FrontLeft, want: model.FrontRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithSource(fixedSource{idx: tt.idx})
			got := g.NextTarget(model.TargetCount, tt.last)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNextTargetNeverRepeats(t *testing.T) {
	g := NewWithSource(rand.New(rand.NewSource(7)))
	last := model.NoTarget
	seen := map[model.Target]int{}
	for i := 0; i < 5000; i++ {
		next := g.NextTarget(model.TargetCount, last)
		if !next.Valid() {
			t.Fatalf("draw %d: invalid target %d", i, next)
		}
		if next == last {
			t.Fatalf("draw %d: repeated %v", i, next)
		}
		seen[next]++
		last = next
	}
	if len(seen) != model.TargetCount {
		t.Fatalf("expected every target to be drawn, got %v", seen)
	}
}

func TestNextTargetSingleCandidateIgnoresExclusion(t *testing.T) {
	g := NewWithSource(fixedSource{})
	if got := g.NextTarget(1, 0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := g.NextTarget(0, model.NoTarget); got != model.NoTarget {
		t.Fatalf("expected no target for empty set, got %v", got)
	}
}

func TestNextIntervalJitterDisabledIsExact(t *testing.T) {
	cfg := model.DefaultScheduleConfig()
	cfg.JitterEnabled = false
	cfg.BaseInterval = 1234 * time.Millisecond
	for _, f := range []float64{0, 0.25, 0.999} {
		g := NewWithSource(fixedSource{f: f})
		if got := g.NextInterval(cfg); got != cfg.BaseInterval {
			t.Fatalf("f=%v: expected %v, got %v", f, cfg.BaseInterval, got)
		}
	}
}

func TestNextIntervalRange(t *testing.T) {
	cfg := model.DefaultScheduleConfig()
	if got := NewWithSource(fixedSource{f: 0}).NextInterval(cfg); got != 2800*time.Millisecond {
		t.Fatalf("expected lower bound 2.8s, got %v", got)
	}
	if got := NewWithSource(fixedSource{f: 0.5}).NextInterval(cfg); got != 3*time.Second {
		t.Fatalf("expected midpoint 3s, got %v", got)
	}
	g := NewWithSource(rand.New(rand.NewSource(3)))
	for i := 0; i < 1000; i++ {
		got := g.NextInterval(cfg)
		if got < 2800*time.Millisecond || got > 3200*time.Millisecond {
			t.Fatalf("draw %d out of range: %v", i, got)
		}
	}
}

func TestNextIntervalFloor(t *testing.T) {
	cfg := model.ScheduleConfig{
		BaseInterval:  400 * time.Millisecond,
		Jitter:        300 * time.Millisecond,
		JitterEnabled: true,
		CueVisible:    100 * time.Millisecond,
	}
	if got := NewWithSource(fixedSource{f: 0}).NextInterval(cfg); got != MinInterval {
		t.Fatalf("expected floor %v, got %v", MinInterval, got)
	}
	g := NewWithSource(rand.New(rand.NewSource(11)))
	for i := 0; i < 1000; i++ {
		if got := g.NextInterval(cfg); got < MinInterval {
			t.Fatalf("draw %d below floor: %v", i, got)
		}
	}
}
