package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/lia-aerospace/trajsim/internal/metrics"
	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

const (
	canvasWidth  = 60
	canvasHeight = 16
	maxSpeed     = 32
	frameRate    = 30
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Replay plays back a finished run. It never integrates.
type Replay struct {
	name    string
	samples []trajectory.VehicleState
	summary metrics.Summary
	final   trajectory.Phase
	head    int
	speed   int // samples per tick
	running bool
	canvas  *Canvas
	frame   Frame
}

func NewReplay(name string, res *trajectory.Result) Replay {
	samples := res.History.Samples()
	c := NewCanvas(canvasWidth, canvasHeight)
	return Replay{
		name:    name,
		samples: samples,
		summary: metrics.Summarize(res),
		final:   res.Final,
		speed:   1,
		running: true,
		canvas:  c,
		frame:   NewFrame(samples, c),
	}
}

func (m Replay) Init() tea.Cmd { return tick() }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.head = 0
			m.running = true
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Replay) advance() {
	last := len(m.samples) - 1
	m.head = min(m.head+m.speed, max(last, 0))
	if m.head == last {
		m.running = false
	}
}

// Head is the index of the sample on screen.
func (m Replay) Head() int { return m.head }

func (m Replay) Done() bool { return m.head >= len(m.samples)-1 }

func (m Replay) View() string {
	if len(m.samples) == 0 {
		return "no samples\n"
	}
	shown := m.samples[:m.head+1]
	cur := shown[len(shown)-1]

	m.canvas.Clear()
	m.canvas.DrawProfile(m.frame, shown)

	status := StatusRunning.Render("PLAYING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.Done() {
		status = phaseLabel(m.final)
	}

	var b strings.Builder
	b.WriteString(Title.Render("TRAJSIM  "+m.name) + "  " + status + "\n\n")

	left := m.canvas.String()
	right := StatePanel(cur)
	if cur.Phase == trajectory.Coast && cur.Y <= 0 {
		right = StatePanel(cur) + "\n\n" + SummaryPanel("summary", m.summary)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right) + "\n")

	ys := make([]float64, len(shown))
	vys := make([]float64, len(shown))
	for i, s := range shown {
		ys[i] = s.Y
		vys[i] = s.Vy
	}
	if len(ys) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(ys,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth*2),
			asciigraph.Caption("altitude [m]"),
		)) + "\n")
		b.WriteString(MetricLabel.Render("vy") + " " + Sparkline(vys, canvasWidth) + "\n")
	}

	progress := float64(m.head) / float64(max(len(m.samples)-1, 1))
	b.WriteString(fmt.Sprintf("\n%s %3.0f%%  x%d\n", ProgressBar(progress, 40), progress*100, m.speed))
	b.WriteString(KeyHint.Render("space pause · r restart · +/- speed · q quit") + "\n")
	return b.String()
}

// RunReplay starts the replay in the alternate screen and blocks until quit.
func RunReplay(name string, res *trajectory.Result) error {
	_, err := tea.NewProgram(NewReplay(name, res), tea.WithAltScreen()).Run()
	return err
}
