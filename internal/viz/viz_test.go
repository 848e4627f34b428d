package viz

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lia-aerospace/trajsim/internal/config"
	"github.com/lia-aerospace/trajsim/internal/metrics"
	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

func referenceRun(t *testing.T) *trajectory.Result {
	t.Helper()
	in, err := trajectory.New(*config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := in.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestPlot(t *testing.T) {
	res := referenceRun(t)
	for _, s := range DefaultSeries {
		out, err := Plot(res.History, s, PlotOptions{Width: 60, Height: 8})
		if err != nil {
			t.Fatalf("Plot(%s): %v", s, err)
		}
		if !strings.Contains(out, seriesTable[s].caption) {
			t.Errorf("Plot(%s) missing caption", s)
		}
	}
}

func TestPlot_Errors(t *testing.T) {
	if _, err := Plot(trajectory.NewHistory(1), Altitude, PlotOptions{}); err == nil {
		t.Error("expected error for empty history")
	}
	if _, err := Plot(trajectory.HistoryOf(trajectory.VehicleState{}), Series("nope"), PlotOptions{}); err == nil {
		t.Error("expected error for unknown series")
	}
}

func TestParseSeries(t *testing.T) {
	if s, err := ParseSeries("altitude"); err != nil || s != Altitude {
		t.Errorf("ParseSeries(altitude) = %q, %v", s, err)
	}
	if _, err := ParseSeries("speed"); err == nil {
		t.Error("expected error for unknown series")
	}
	if len(SeriesNames()) != len(seriesTable) {
		t.Errorf("expected %d names, got %d", len(seriesTable), len(SeriesNames()))
	}
}

func TestSummaryPanel(t *testing.T) {
	out := SummaryPanel("reference", metrics.Summary{Termination: "impact", Apogee: 15563.9})
	for _, want := range []string{"reference", "impact", "apogee", "15563.9"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}
}

func TestCanvas_SetAndLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("expected dot 1 set, got %U", c.Grid[0][0])
	}
	c.Set(-1, 3)
	c.Set(100, 100)

	c.Clear()
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 2; i++ {
		if c.Grid[i][i*2] == brailleBlank {
			t.Errorf("expected diagonal cell (%d,%d) lit", i, i*2)
		}
	}
	if lines := strings.Count(c.String(), "\n"); lines != 2 {
		t.Errorf("expected 2 rows, got %d", lines)
	}
}

func TestFrame_GroundVisible(t *testing.T) {
	c := NewCanvas(10, 5)
	f := NewFrame([]trajectory.VehicleState{{X: 0, Y: 100}, {X: 50, Y: 200}}, c)
	_, gy := f.Point(0, 0)
	if gy != c.Height*4-1 {
		t.Errorf("expected ground on bottom row, got %d", gy)
	}
	px, py := f.Point(50, 200)
	if px != c.Width*2-1 || py != 0 {
		t.Errorf("expected top-right corner, got (%d, %d)", px, py)
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if utf8.RuneCountInString(out) != 8 {
		t.Errorf("expected 8 runes, got %q", out)
	}
	if !strings.HasPrefix(out, "▁") || !strings.HasSuffix(out, "█") {
		t.Errorf("unexpected sparkline %q", out)
	}
	if Sparkline(nil, 3) != "───" {
		t.Errorf("expected flat line for no data")
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0.5, 4); got != "██░░" {
		t.Errorf("ProgressBar(0.5, 4) = %q", got)
	}
	if got := ProgressBar(2, 2); got != "██" {
		t.Errorf("ProgressBar(2, 2) = %q", got)
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Replay, msg tea.Msg) Replay {
	next, _ := m.Update(msg)
	return next.(Replay)
}

func TestReplay_Playback(t *testing.T) {
	res := referenceRun(t)
	m := NewReplay("reference", res)
	if m.Init() == nil {
		t.Fatal("expected a tick command from Init")
	}

	m = update(m, TickMsg(time.Now()))
	if m.Head() != 1 {
		t.Errorf("expected head 1 after one tick, got %d", m.Head())
	}

	m = update(m, key("+"))
	m = update(m, TickMsg(time.Now()))
	if m.Head() != 3 {
		t.Errorf("expected head 3 at double speed, got %d", m.Head())
	}

	m = update(m, key(" "))
	m = update(m, TickMsg(time.Now()))
	if m.Head() != 3 {
		t.Errorf("expected paused head 3, got %d", m.Head())
	}

	m = update(m, key("r"))
	if m.Head() != 0 {
		t.Errorf("expected restart to rewind, got %d", m.Head())
	}

	for i := 0; i < 10 && !m.Done(); i++ {
		m = update(m, key("+"))
	}
	for i := 0; i < res.History.Len() && !m.Done(); i++ {
		m = update(m, TickMsg(time.Now()))
	}
	if !m.Done() || m.Head() != res.History.Len()-1 {
		t.Errorf("expected playback to stop at the last sample, head %d", m.Head())
	}
	if !strings.Contains(m.View(), "IMPACT") {
		t.Error("expected final view to show impact")
	}
}

func TestReplay_Quit(t *testing.T) {
	m := NewReplay("reference", referenceRun(t))
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestReplay_VelocitySparkline(t *testing.T) {
	m := NewReplay("reference", referenceRun(t))
	if strings.Contains(m.View(), "▁") {
		t.Error("expected no sparkline before the second sample")
	}

	m = update(m, key("+"))
	for i := 0; i < 20; i++ {
		m = update(m, TickMsg(time.Now()))
	}
	var row string
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.HasPrefix(line, "vy ") {
			row = line
		}
	}
	if row == "" {
		t.Fatal("expected a vy sparkline row")
	}
	if !strings.ContainsAny(row, "▁▂▃▄▅▆▇█") {
		t.Errorf("expected block characters in %q", row)
	}
}
