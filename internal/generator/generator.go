// Package generator draws randomized cue targets and intervals.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/footwork/internal/model"
)

// MinInterval is the shortest gap ever drawn between two cues.
const MinInterval = 300 * time.Millisecond

// Source is the randomness a Generator draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Generator produces randomized cue decisions.
type Generator struct {
	rnd Source
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src Source) *Generator {
	return &Generator{rnd: src}
}

// NextTarget picks uniformly from n positions, never returning last when
// another choice exists.
func (g *Generator) NextTarget(n int, last model.Target) model.Target {
	if n <= 0 {
		return model.NoTarget
	}
	if n < 2 || last < 0 || int(last) >= n {
		return model.Target(g.rnd.Intn(n))
	}
	// Draw from the n-1 remaining slots and skip over last.
	idx := g.rnd.Intn(n - 1)
	if idx >= int(last) {
		idx++
	}
	return model.Target(idx)
}

// NextInterval returns the gap until the next cue.
func (g *Generator) NextInterval(cfg model.ScheduleConfig) time.Duration {
	if !cfg.JitterEnabled {
		return cfg.BaseInterval
	}
	offset := (g.rnd.Float64()*2 - 1) * float64(cfg.Jitter)
	return max(MinInterval, cfg.BaseInterval+time.Duration(offset))
}
