package metrics

import (
	"math"

	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

type Apogee struct {
	name    string
	max     float64
	samples int
}

func NewApogee() *Apogee {
	return &Apogee{name: "apogee"}
}

func (a *Apogee) Name() string { return a.name }

func (a *Apogee) Observe(s trajectory.VehicleState) {
	if a.samples == 0 || s.Y > a.max {
		a.max = s.Y
	}
	a.samples++
}

func (a *Apogee) OnSample(s trajectory.VehicleState) { a.Observe(s) }

func (a *Apogee) Value() float64 { return a.max }

func (a *Apogee) Reset() {
	a.max = 0
	a.samples = 0
}

// Downrange is the horizontal distance at the latest sample.
type Downrange struct {
	name string
	x    float64
}

func NewDownrange() *Downrange {
	return &Downrange{name: "downrange"}
}

func (d *Downrange) Name() string                       { return d.name }
func (d *Downrange) Observe(s trajectory.VehicleState)  { d.x = s.X }
func (d *Downrange) OnSample(s trajectory.VehicleState) { d.Observe(s) }
func (d *Downrange) Value() float64                     { return d.x }
func (d *Downrange) Reset()                             { d.x = 0 }

type FlightTime struct {
	name string
	t    float64
}

func NewFlightTime() *FlightTime {
	return &FlightTime{name: "flight_time"}
}

func (f *FlightTime) Name() string                       { return f.name }
func (f *FlightTime) Observe(s trajectory.VehicleState)  { f.t = s.Time }
func (f *FlightTime) OnSample(s trajectory.VehicleState) { f.Observe(s) }
func (f *FlightTime) Value() float64                     { return f.t }
func (f *FlightTime) Reset()                             { f.t = 0 }

type MaxAcceleration struct {
	name string
	max  float64
}

func NewMaxAcceleration() *MaxAcceleration {
	return &MaxAcceleration{name: "max_acceleration"}
}

func (m *MaxAcceleration) Name() string { return m.name }

func (m *MaxAcceleration) Observe(s trajectory.VehicleState) {
	m.max = math.Max(m.max, s.Acceleration())
}

func (m *MaxAcceleration) OnSample(s trajectory.VehicleState) { m.Observe(s) }

func (m *MaxAcceleration) Value() float64 { return m.max }

func (m *MaxAcceleration) Reset() { m.max = 0 }
