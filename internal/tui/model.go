// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/footwork/internal/logging"
	"github.com/verte-zerg/footwork/internal/model"
	"github.com/verte-zerg/footwork/internal/scheduler"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

type frameMsg time.Time

// Model implements the Bubble Tea drill UI.
type Model struct {
	sched  *scheduler.Scheduler
	logger *slog.Logger
	fps    int
	clock  func() time.Time

	keys keyMap
	help help.Model

	width  int
	height int

	snap      model.Snapshot
	now       time.Time
	startedAt time.Time
	cues      int
}

var (
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2828"))
	ghostStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6478DC")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a drill TUI model around a stopped scheduler.
func NewModel(sched *scheduler.Scheduler, fps int, logger *slog.Logger) *Model {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Model{
		sched:  sched,
		logger: logger,
		fps:    fps,
		clock:  time.Now,
		keys:   defaultKeyMap(),
		help:   help.New(),
		snap:   model.Snapshot{Highlighted: model.NoTarget},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.toggle(m.clock())
		}
		return m, nil
	case frameMsg:
		m.frame(time.Time(msg))
		return m, m.tick()
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.height < 3 {
		return renderFrame(m.width, m.height, m.snap)
	}
	footer := m.renderFooter()
	body := renderFrame(m.width, m.height-1, m.snap)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) toggle(now time.Time) {
	m.now = now
	if m.sched.Running() {
		m.sched.Stop()
		m.logger.Info("drill stopped", "cues", m.cues, "elapsed", now.Sub(m.startedAt).Round(time.Millisecond))
	} else {
		m.sched.Start(now)
		m.startedAt = now
		m.cues = 0
		m.logger.Info("drill started", "next_cue_in", m.sched.NextCueAt().Sub(now).Round(time.Millisecond))
	}
	m.snap = m.sched.Snapshot(now)
}

func (m *Model) frame(now time.Time) {
	m.now = now
	cue := m.sched.Advance(now)
	if cue.Fired {
		m.cues++
		m.logger.Debug("cue fired", "target", cue.Target, "next_in", cue.Interval.Round(time.Millisecond))
	}
	m.snap = m.sched.Snapshot(now)
}

func (m *Model) renderFooter() string {
	segments := []string{"Stopped"}
	if m.sched.Running() {
		elapsed := m.now.Sub(m.startedAt)
		if elapsed < 0 {
			elapsed = 0
		}
		segments = []string{
			"Running",
			fmt.Sprintf("Cues %d", m.cues),
			formatElapsed(elapsed),
		}
	}
	status := footerStyle.Render(strings.Join(segments, " · "))
	return status + "  " + m.help.View(m.keys)
}

func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
