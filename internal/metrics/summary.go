package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

type Summary struct {
	Samples     int     `json:"samples"`
	Termination string  `json:"termination"`
	FlightTime  float64 `json:"flight_time"`
	Downrange   float64 `json:"downrange"`

	Apogee     float64 `json:"apogee"`
	ApogeeTime float64 `json:"apogee_time"`

	BurnoutTime     float64 `json:"burnout_time"`
	BurnoutAltitude float64 `json:"burnout_altitude"`
	BurnoutSpeed    float64 `json:"burnout_speed"`

	MaxQ            float64 `json:"max_q"`
	MaxQTime        float64 `json:"max_q_time"`
	MaxMach         float64 `json:"max_mach"`
	MaxAcceleration float64 `json:"max_acceleration"`
}

// Summarize reduces a finished run to its headline figures.
func Summarize(res *trajectory.Result) Summary {
	h := res.History
	sum := Summary{
		Samples:     h.Len(),
		Termination: res.Termination.String(),
	}
	if h.Len() == 0 {
		return sum
	}

	last := h.Last()
	sum.FlightTime = last.Time
	sum.Downrange = last.X

	ys := h.Column(func(s trajectory.VehicleState) float64 { return s.Y })
	i := floats.MaxIdx(ys)
	sum.Apogee, sum.ApogeeTime = ys[i], h.At(i).Time

	if res.BurnoutIndex < h.Len() {
		bo := h.At(res.BurnoutIndex)
		sum.BurnoutTime, sum.BurnoutAltitude, sum.BurnoutSpeed = bo.Time, bo.Y, bo.Speed()
	}

	qs := h.Column(func(s trajectory.VehicleState) float64 {
		q, _ := DynamicPressure(s)
		return q
	})
	i = floats.MaxIdx(qs)
	sum.MaxQ, sum.MaxQTime = qs[i], h.At(i).Time

	sum.MaxMach = floats.Max(h.Column(func(s trajectory.VehicleState) float64 {
		m, _ := MachNumber(s)
		return m
	}))
	sum.MaxAcceleration = floats.Max(h.Column(trajectory.VehicleState.Acceleration))

	return sum
}
