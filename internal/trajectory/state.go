package trajectory

import "math"

type Phase int

const (
	Burn Phase = iota
	Coast
	Impacted
)

func (p Phase) String() string {
	switch p {
	case Burn:
		return "burn"
	case Coast:
		return "coast"
	case Impacted:
		return "impacted"
	default:
		return "unknown"
	}
}

// Ambient is the output of the simplified lapse-rate atmosphere.
type Ambient struct {
	T   float64 // K
	P   float64 // Pa
	Rho float64 // kg/m^3
}

// VehicleState is one time sample. Dx and Dy are drag magnitudes per axis;
// the sign they enter the acceleration with depends on phase and drag model.
type VehicleState struct {
	Step    int
	Time    float64
	X, Y    float64
	Vx, Vy  float64
	Ax, Ay  float64
	Mass    float64
	Tx, Ty  float64
	Dx, Dy  float64
	Gamma   float64 // rad, flight-path angle
	Ambient Ambient
	Phase   Phase
}

func (s VehicleState) Speed() float64        { return math.Hypot(s.Vx, s.Vy) }
func (s VehicleState) Acceleration() float64 { return math.Hypot(s.Ax, s.Ay) }
func (s VehicleState) Thrust() float64       { return math.Hypot(s.Tx, s.Ty) }

type Termination int

const (
	Timeout Termination = iota
	Impact
)

func (t Termination) String() string {
	if t == Impact {
		return "impact"
	}
	return "timeout"
}

type Result struct {
	History      *History
	Termination  Termination
	BurnoutIndex int // index of the last Burn sample
	Final        Phase
}
