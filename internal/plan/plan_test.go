package plan

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/footwork/internal/generator"
	"github.com/verte-zerg/footwork/internal/model"
)

type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

func (zeroSource) Float64() float64 { return 0 }

func fixedConfig() model.ScheduleConfig {
	cfg := model.DefaultScheduleConfig()
	cfg.JitterEnabled = false
	return cfg
}

func TestSimulateFixedInterval(t *testing.T) {
	entries, err := Simulate(fixedConfig(), generator.NewWithSource(zeroSource{}), 3, time.Millisecond)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	wantAt := []time.Duration{3 * time.Second, 6 * time.Second, 9 * time.Second}
	wantTargets := []model.Target{model.FrontLeft, model.FrontRight, model.FrontLeft}
	for i, e := range entries {
		if e.Index != i+1 {
			t.Fatalf("entry %d: unexpected index %d", i, e.Index)
		}
		if e.At != wantAt[i] {
			t.Fatalf("entry %d: expected at %v, got %v", i, wantAt[i], e.At)
		}
		if e.Interval != 3*time.Second {
			t.Fatalf("entry %d: expected 3s gap, got %v", i, e.Interval)
		}
		if e.WarnAt != wantAt[i]-150*time.Millisecond {
			t.Fatalf("entry %d: expected warn at %v, got %v", i, wantAt[i]-150*time.Millisecond, e.WarnAt)
		}
		if e.Target != wantTargets[i] {
			t.Fatalf("entry %d: expected %v, got %v", i, wantTargets[i], e.Target)
		}
	}
}

func TestSimulateJitteredNeverRepeats(t *testing.T) {
	entries, err := Simulate(model.DefaultScheduleConfig(), generator.NewWithSource(rand.New(rand.NewSource(1))), 200, 0)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Target == entries[i-1].Target {
			t.Fatalf("cue %d repeats %v", entries[i].Index, entries[i].Target)
		}
		if entries[i].Interval < generator.MinInterval {
			t.Fatalf("cue %d gap below floor: %v", entries[i].Index, entries[i].Interval)
		}
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	if _, err := Simulate(fixedConfig(), nil, 0, 0); err == nil {
		t.Fatalf("expected error for zero cues")
	}
	cfg := fixedConfig()
	cfg.CueVisible = 0
	if _, err := Simulate(cfg, nil, 1, 0); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}
}

func TestWritePlain(t *testing.T) {
	entries := []Entry{
		{Index: 1, At: 3 * time.Second, Target: model.RearLeft, Interval: 3 * time.Second, WarnAt: 2850 * time.Millisecond},
	}
	var buf bytes.Buffer
	if err := Write(&buf, entries, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"1", "3.000s", "Rear-Left", "gap 3s", "warn    2.850s"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("output missing %q: %s", needle, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected one line, got %q", out)
	}
}
