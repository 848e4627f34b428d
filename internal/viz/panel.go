package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lia-aerospace/trajsim/internal/metrics"
	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

func row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

// SummaryPanel renders the headline figures of a run in a bordered block.
func SummaryPanel(title string, sum metrics.Summary) string {
	lines := []string{
		Title.Render(title),
		"",
		row("termination", sum.Termination),
		row("flight time", fmt.Sprintf("%.2f s", sum.FlightTime)),
		row("samples", fmt.Sprintf("%d", sum.Samples)),
		"",
		row("apogee", fmt.Sprintf("%.1f m @ %.2f s", sum.Apogee, sum.ApogeeTime)),
		row("downrange", fmt.Sprintf("%.1f m", sum.Downrange)),
		row("burnout", fmt.Sprintf("%.2f s, %.1f m, %.1f m/s", sum.BurnoutTime, sum.BurnoutAltitude, sum.BurnoutSpeed)),
		"",
		row("max q", fmt.Sprintf("%.1f kPa @ %.2f s", sum.MaxQ/1000, sum.MaxQTime)),
		row("max mach", fmt.Sprintf("%.2f", sum.MaxMach)),
		row("max accel", fmt.Sprintf("%.1f m/s^2 (%.1f g)", sum.MaxAcceleration, sum.MaxAcceleration/9.80665)),
	}
	return Panel.Render(strings.Join(lines, "\n"))
}

func phaseLabel(p trajectory.Phase) string {
	switch p {
	case trajectory.Burn:
		return PhaseBurn.Render("BURN")
	case trajectory.Coast:
		return PhaseCoast.Render("COAST")
	default:
		return PhaseImpact.Render("IMPACT")
	}
}

// StatePanel renders one sample.
func StatePanel(s trajectory.VehicleState) string {
	lines := []string{
		phaseLabel(s.Phase),
		"",
		row("t", fmt.Sprintf("%.2f s", s.Time)),
		row("altitude", fmt.Sprintf("%.1f m", s.Y)),
		row("downrange", fmt.Sprintf("%.1f m", s.X)),
		row("speed", fmt.Sprintf("%.1f m/s", s.Speed())),
		row("vx, vy", fmt.Sprintf("%.1f, %.1f", s.Vx, s.Vy)),
		row("gamma", fmt.Sprintf("%.1f deg", s.Gamma*180/math.Pi)),
		row("mass", fmt.Sprintf("%.2f kg", s.Mass)),
		row("thrust", fmt.Sprintf("%.0f N", s.Thrust())),
		row("drag x, y", fmt.Sprintf("%.0f, %.0f N", s.Dx, s.Dy)),
		row("density", fmt.Sprintf("%.4f kg/m^3", s.Ambient.Rho)),
	}
	return lipgloss.NewStyle().Width(40).Render(strings.Join(lines, "\n"))
}
