package metrics

import "github.com/lia-aerospace/trajsim/internal/trajectory"

// Metric accumulates a scalar over the samples of one run. Every Metric is
// also a trajectory.Observer.
type Metric interface {
	Name() string
	Observe(s trajectory.VehicleState)
	Value() float64
	Reset()
	OnSample(s trajectory.VehicleState)
}

// Standard returns one of each flight metric.
func Standard() []Metric {
	return []Metric{
		NewApogee(),
		NewDownrange(),
		NewFlightTime(),
		NewMaxAcceleration(),
		NewMaxDynamicPressure(),
		NewMaxMach(),
	}
}

func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

func ResetAll(ms []Metric) {
	for _, m := range ms {
		m.Reset()
	}
}
