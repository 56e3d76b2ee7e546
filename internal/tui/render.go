package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/footwork/internal/model"
)

const warningText = "Split step!"

type cellKind int

const (
	kindBlank cellKind = iota
	kindGhost
	kindHighlight
	kindWarning
	// kindCont marks the trailing column of a double-width rune.
	kindCont
)

var (
	filledMarker  = []string{"▄███▄", "▀███▀"}
	outlineMarker = []string{"╭───╮", "╰───╯"}
)

type cell struct {
	r    rune
	kind cellKind
}

type point struct {
	x int
	y int
}

// positions maps each target to a point in a width x height area.
func positions(width, height int) [model.TargetCount]point {
	left := int(float64(width) * 0.25)
	right := int(float64(width) * 0.75)
	front := int(float64(height) * 0.25)
	rear := int(float64(height) * 0.75)
	return [model.TargetCount]point{
		model.FrontLeft:  {x: left, y: front},
		model.FrontRight: {x: right, y: front},
		model.RearLeft:   {x: left, y: rear},
		model.RearRight:  {x: right, y: rear},
	}
}

type canvas struct {
	width  int
	height int
	rows   [][]cell
}

func newCanvas(width, height int) *canvas {
	rows := make([][]cell, height)
	for y := range rows {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		rows[y] = row
	}
	return &canvas{width: width, height: height, rows: rows}
}

func (c *canvas) put(x, y int, text string, kind cellKind) {
	if y < 0 || y >= c.height {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= c.width {
			c.rows[y][x] = cell{r: r, kind: kind}
			for i := 1; i < w; i++ {
				c.rows[y][x+i] = cell{kind: kindCont}
			}
		}
		x += w
	}
}

func (c *canvas) putCentered(p point, lines []string, kind cellKind) {
	top := p.y - len(lines)/2
	for i, line := range lines {
		c.put(p.x-runewidth.StringWidth(line)/2, top+i, line, kind)
	}
}

func (c *canvas) String() string {
	lines := make([]string, 0, c.height)
	for _, row := range c.rows {
		lines = append(lines, renderRow(row))
	}
	return strings.Join(lines, "\n")
}

func renderRow(row []cell) string {
	var b strings.Builder
	var run []rune
	runKind := kindBlank
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runKind == kindBlank {
			b.WriteString(string(run))
		} else {
			b.WriteString(styleFor(runKind).Render(string(run)))
		}
		run = run[:0]
	}
	for _, c := range row {
		if c.kind == kindCont {
			continue
		}
		if c.kind != runKind {
			flush()
			runKind = c.kind
		}
		run = append(run, c.r)
	}
	flush()
	return b.String()
}

func styleFor(kind cellKind) lipgloss.Style {
	switch kind {
	case kindGhost:
		return ghostStyle
	case kindHighlight:
		return highlightStyle
	default:
		return warningStyle
	}
}

// renderFrame draws the court for one snapshot.
func renderFrame(width, height int, snap model.Snapshot) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	c := newCanvas(width, height)
	for i, p := range positions(width, height) {
		if model.Target(i) == snap.Highlighted {
			c.putCentered(p, filledMarker, kindHighlight)
			continue
		}
		c.putCentered(p, outlineMarker, kindGhost)
	}
	if snap.WarningVisible {
		c.putCentered(point{x: width / 2, y: height / 2}, []string{warningText}, kindWarning)
	}
	return c.String()
}
