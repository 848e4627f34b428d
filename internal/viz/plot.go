package viz

import (
	"fmt"
	"sort"

	"github.com/guptarohit/asciigraph"

	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

type Series string

const (
	Altitude  Series = "altitude"
	Downrange Series = "x"
	VelocityY Series = "vy"
	AccelY    Series = "ay"
	Mass      Series = "mass"
	ThrustY   Series = "thrust_y"
	DragY     Series = "drag_y"
)

type seriesInfo struct {
	caption string
	value   func(trajectory.VehicleState) float64
}

var seriesTable = map[Series]seriesInfo{
	Altitude:  {"altitude [m] vs time", func(s trajectory.VehicleState) float64 { return s.Y }},
	Downrange: {"downrange [m] vs time", func(s trajectory.VehicleState) float64 { return s.X }},
	VelocityY: {"vertical velocity [m/s] vs time", func(s trajectory.VehicleState) float64 { return s.Vy }},
	AccelY:    {"vertical acceleration [m/s^2] vs time", func(s trajectory.VehicleState) float64 { return s.Ay }},
	Mass:      {"mass [kg] vs time", func(s trajectory.VehicleState) float64 { return s.Mass }},
	ThrustY:   {"vertical thrust [N] vs time", func(s trajectory.VehicleState) float64 { return s.Ty }},
	DragY:     {"vertical drag [N] vs time", func(s trajectory.VehicleState) float64 { return s.Dy }},
}

// DefaultSeries mirrors the kinematics and forces figures of a flight report.
var DefaultSeries = []Series{Altitude, VelocityY, AccelY, Mass, ThrustY, DragY}

func ParseSeries(name string) (Series, error) {
	s := Series(name)
	if _, ok := seriesTable[s]; !ok {
		return "", fmt.Errorf("unknown series %q (available: %v)", name, SeriesNames())
	}
	return s, nil
}

func SeriesNames() []string {
	names := make([]string, 0, len(seriesTable))
	for s := range seriesTable {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}

type PlotOptions struct {
	Width  int
	Height int
}

// Plot renders one series of the history as an ASCII chart.
func Plot(h *trajectory.History, series Series, opts PlotOptions) (string, error) {
	info, ok := seriesTable[series]
	if !ok {
		return "", fmt.Errorf("unknown series %q", series)
	}
	if h.Len() == 0 {
		return "", fmt.Errorf("plot %s: empty history", series)
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 10
	}

	data := h.Column(info.value)
	return asciigraph.Plot(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(info.caption),
	), nil
}
