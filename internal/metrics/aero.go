package metrics

import (
	"math"

	"github.com/lia-aerospace/trajsim/internal/atmosphere"
	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

// DynamicPressure returns 0.5*rho*v^2 with rho from the standard atmosphere.
// ok is false for samples outside the modeled band.
func DynamicPressure(s trajectory.VehicleState) (q float64, ok bool) {
	st, err := atmosphere.At(s.Y)
	if err != nil {
		return 0, false
	}
	v := s.Speed()
	return 0.5 * st.Rho * v * v, true
}

// MachNumber returns the sample's Mach number in the standard atmosphere.
func MachNumber(s trajectory.VehicleState) (float64, bool) {
	st, err := atmosphere.At(s.Y)
	if err != nil {
		return 0, false
	}
	m, err := atmosphere.Mach(s.Speed(), st.Vs)
	if err != nil {
		return 0, false
	}
	return m, true
}

type MaxDynamicPressure struct {
	name string
	max  float64
}

func NewMaxDynamicPressure() *MaxDynamicPressure {
	return &MaxDynamicPressure{name: "max_q"}
}

func (m *MaxDynamicPressure) Name() string { return m.name }

func (m *MaxDynamicPressure) Observe(s trajectory.VehicleState) {
	if q, ok := DynamicPressure(s); ok {
		m.max = math.Max(m.max, q)
	}
}

func (m *MaxDynamicPressure) OnSample(s trajectory.VehicleState) { m.Observe(s) }

func (m *MaxDynamicPressure) Value() float64 { return m.max }

func (m *MaxDynamicPressure) Reset() { m.max = 0 }

type MaxMach struct {
	name string
	max  float64
}

func NewMaxMach() *MaxMach {
	return &MaxMach{name: "max_mach"}
}

func (m *MaxMach) Name() string { return m.name }

func (m *MaxMach) Observe(s trajectory.VehicleState) {
	if mach, ok := MachNumber(s); ok {
		m.max = math.Max(m.max, mach)
	}
}

func (m *MaxMach) OnSample(s trajectory.VehicleState) { m.Observe(s) }

func (m *MaxMach) Value() float64 { return m.max }

func (m *MaxMach) Reset() { m.max = 0 }
