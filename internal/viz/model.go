package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/san-kum/trailfx/internal/fx"
	"github.com/san-kum/trailfx/internal/hotzone"
	"github.com/san-kum/trailfx/internal/session"
	"github.com/san-kum/trailfx/internal/trace"
)

const (
	statusLines     = 2
	historyCapacity = 120
)

var (
	statusStyle = lipgloss.NewStyle().Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)
)

type FrameMsg time.Time

type Option func(*Model)

func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithRecorder writes every input event the model sees to rec.
func WithRecorder(rec *trace.Recorder) Option {
	return func(m *Model) { m.rec = rec }
}

// WithClock replaces time.Now as the frame clock.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func WithTheme(t Theme) Option {
	return func(m *Model) { m.theme = t }
}

// Model hosts a session inside a Bubble Tea program.
type Model struct {
	s        *session.Session
	theme    Theme
	canvas   *Canvas
	cols     int
	rows     int
	zone     fx.Rect
	showZone bool
	frozen   bool
	showHelp bool

	now   func() time.Time
	start time.Time
	frame time.Duration

	log     *log.Logger
	rec     *trace.Recorder
	history []float64
}

func NewModel(s *session.Session, opts ...Option) Model {
	cfg := s.Config()
	th, ok := GetTheme(cfg.Render.Theme)
	m := Model{
		s:        s,
		theme:    th,
		canvas:   NewCanvas(0, 0),
		showZone: true,
		now:      time.Now,
		frame:    cfg.FramePeriod(),
		log:      log.New(io.Discard),
		history:  make([]float64, 0, historyCapacity),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if !ok {
		m.log.Warn("unknown theme, using default", "theme", cfg.Render.Theme, "default", th.Name)
	}
	m.start = m.now()
	return m
}

// Run starts a full-screen program with mouse motion reporting.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

func (m Model) elapsed() time.Duration { return m.now().Sub(m.start) }

// Update handles input events and advances the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.s.Close()
			return m, tea.Quit
		case " ":
			m.frozen = !m.frozen
		case "z":
			m.showZone = !m.showZone
			m.syncZone()
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height-statusLines)
	case tea.MouseMsg:
		m.mouse(msg)
	case FrameMsg:
		m.s.Frame(m.elapsed())
		m.history = append(m.history, float64(len(m.s.Snapshot().Particles)))
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	m.cols, m.rows = cols, rows
	m.canvas = NewCanvas(cols, rows)

	w, h := float64(cols*2), float64(rows*4)
	m.zone = fx.R(w/3, h/3, 2*w/3, 2*h/3)
	m.syncZone()
	m.log.Debug("resized", "cols", cols, "rows", rows, "zone", m.zone)
}

// syncZone mounts or unmounts the hot zone to match the display toggle.
func (m *Model) syncZone() {
	if m.showZone && m.cols > 0 {
		m.s.Attach(hotzone.Static(m.zone))
		m.record(trace.ZoneEvent(m.elapsed(), m.zone))
		return
	}
	m.s.Detach()
	m.record(trace.Event{T: m.elapsed(), Kind: trace.Unzone})
}

func (m *Model) mouse(msg tea.MouseMsg) {
	p := CellToSub(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionMotion:
		m.s.Move(p.X, p.Y)
		m.record(trace.Event{T: m.elapsed(), Kind: trace.Move, X: p.X, Y: p.Y})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.s.Move(p.X, p.Y)
		m.s.Click(p.X, p.Y)
		m.record(trace.Event{T: m.elapsed(), Kind: trace.Move, X: p.X, Y: p.Y})
		m.record(trace.Event{T: m.elapsed(), Kind: trace.Click, X: p.X, Y: p.Y})
	}
}

func (m *Model) record(ev trace.Event) {
	if m.rec == nil {
		return
	}
	if err := m.rec.Record(ev); err != nil {
		m.log.Error("recording stopped", "err", err)
		m.rec = nil
	}
}

// View renders the canvas and the status bar.
func (m Model) View() string {
	if m.showHelp {
		return helpStyle.Render(strings.Join([]string{
			"KEYBOARD SHORTCUTS",
			"",
			"Space  Freeze/unfreeze display",
			"Z      Toggle hot zone",
			"T      Cycle themes",
			"?      Toggle this help",
			"Q      Quit",
			"",
			"Move the mouse to draw a trail, click for ripples.",
		}, "\n"))
	}

	if !m.frozen {
		cfg := m.s.Config()
		Draw(m.canvas, m.s.Snapshot(), Style{
			Theme:        m.theme,
			EngagedScale: cfg.Render.EngagedScale,
			RippleRadius: cfg.Render.RippleRadius,
			Zone:         m.zone,
			ShowZone:     m.showZone,
		})
	}

	return m.canvas.Render() + "\n" + m.status()
}

func (m Model) status() string {
	snap := m.s.Snapshot()

	state := StatusLive.Render("LIVE")
	if m.frozen {
		state = StatusPaused.Render("FROZEN")
	}
	if m.rec != nil {
		state += " " + StatusRecording.Render(fmt.Sprintf("REC %d", m.rec.Count()))
	}
	engaged := MetricLabel.Render("idle")
	if snap.Engaged {
		engaged = lipgloss.NewStyle().Foreground(m.theme.Engaged).Bold(true).Render("ENGAGED")
	}

	line := strings.Join([]string{
		state,
		engaged,
		MetricLabel.Render("particles ") + MetricValue.Render(fmt.Sprintf("%2d", len(snap.Particles))),
		MetricLabel.Render("ripples ") + MetricValue.Render(fmt.Sprintf("%2d", len(snap.Ripples))),
		MetricLabel.Render("t ") + MetricValue.Render(fmt.Sprintf("%.1fs", snap.Elapsed.Seconds())),
		SparklineChart(m.history, 24),
		MetricLabel.Render("theme ") + m.theme.Name,
	}, "  ")
	hints := KeyHint.Render("SP:freeze Z:zone T:theme ?:help Q:quit")
	return statusStyle.Render(line) + "\n" + statusStyle.Render(hints)
}

// Session returns the hosted session.
func (m Model) Session() *session.Session { return m.s }

func (m Model) Theme() Theme { return m.theme }

// Zone returns the current hot-zone rectangle in sub-pixels.
func (m Model) Zone() fx.Rect { return m.zone }
