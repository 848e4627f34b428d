package trajectory

import (
	"context"
	"errors"
	"math"

	"github.com/lia-aerospace/trajsim/internal/atmosphere"
	"github.com/lia-aerospace/trajsim/internal/config"
)

const (
	// burnEps absorbs rounding in k*dt when comparing against the burn time.
	burnEps = 1e-9

	// historyPrealloc caps the up-front History allocation. Longer runs grow
	// by append.
	historyPrealloc = 1 << 14
)

type Integrator struct {
	cfg       config.Config
	cos, sin  float64
	mdot      float64
	ve        float64 // exhaust velocity giving the sea-level thrust
	observers []Observer
}

func New(cfg config.Config) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	v := cfg.Vehicle
	theta := cfg.LaunchAngleRad()
	in := &Integrator{
		cfg:       cfg,
		cos:       math.Cos(theta),
		sin:       math.Sin(theta),
		mdot:      cfg.MassFlow(),
		observers: make([]Observer, 0),
	}
	if in.mdot > 0 {
		in.ve = (v.SeaLevelThrust - (v.NozzleExitPressure-cfg.Environment.Pressure)*v.NozzleExitArea) / in.mdot
	}
	return in, nil
}

func (in *Integrator) AddObserver(o Observer) { in.observers = append(in.observers, o) }

// Initial returns the lift-off sample: at rest on the pad with full
// sea-level thrust along the launch angle.
func (in *Integrator) Initial() VehicleState {
	v := in.cfg.Vehicle
	m := in.cfg.InitialMass()
	tx, ty := v.SeaLevelThrust*in.cos, v.SeaLevelThrust*in.sin
	return VehicleState{
		Mass:    m,
		Tx:      tx,
		Ty:      ty,
		Ax:      tx / m,
		Ay:      ty/m - in.cfg.Environment.Gravity,
		Gamma:   in.cfg.LaunchAngleRad(),
		Ambient: SeaLevel(in.cfg.Environment),
		Phase:   Burn,
	}
}

// Step derives the next sample from prev. It never re-enters Burn once prev
// is coasting.
func (in *Integrator) Step(prev VehicleState) (VehicleState, error) {
	dt := in.cfg.Dt
	v := in.cfg.Vehicle

	next := VehicleState{Step: prev.Step + 1}
	next.Time = float64(next.Step) * dt

	next.X = prev.X + prev.Vx*dt + 0.5*prev.Ax*dt*dt
	next.Y = prev.Y + prev.Vy*dt + 0.5*prev.Ay*dt*dt
	next.Vx = prev.Vx + prev.Ax*dt
	next.Vy = prev.Vy + prev.Ay*dt

	next.Gamma = prev.Gamma
	gamma, err := FlightPathAngle(next.Vx, next.Vy)
	switch {
	case err == nil:
		next.Gamma = gamma
	case !errors.Is(err, ErrDivisionByZero):
		return VehicleState{}, err
	}

	amb, err := LapseAtmosphere(in.cfg.Environment, next.Y)
	if err != nil {
		return VehicleState{}, err
	}
	next.Ambient = amb
	next.Dx, next.Dy = in.drag(amb.Rho, next.Vx, next.Vy)

	if prev.Phase == Burn && next.Time <= v.BurnTime+burnEps {
		next.Phase = Burn
		next.Mass = v.DryMass + v.PropellantMass*(1-next.Time/v.BurnTime)
		next.Tx, next.Ty, err = in.thrust(prev)
		if err != nil {
			return VehicleState{}, err
		}
	} else {
		next.Phase = Coast
		next.Mass = prev.Mass
	}

	sx, sy := in.dragSigns(next)
	next.Ax = (next.Tx - sx*next.Dx) / next.Mass
	next.Ay = (next.Ty-sy*next.Dy)/next.Mass - in.cfg.Environment.Gravity

	return next, nil
}

// Run integrates from lift-off until the first coasting sample at or below
// ground level, or until the step bound derived from Duration is reached.
func (in *Integrator) Run(ctx context.Context) (*Result, error) {
	maxSteps := in.cfg.MaxSteps()
	res := &Result{
		History:     NewHistory(min(maxSteps+1, historyPrealloc)),
		Termination: Timeout,
	}

	s := in.Initial()
	in.record(res, s)

	for i := 0; i < maxSteps; i++ {
		select {
		case <-ctx.Done():
			res.Final = s.Phase
			return res, ctx.Err()
		default:
		}

		if impacted(s) {
			break
		}

		next, err := in.Step(s)
		if err != nil {
			res.Final = s.Phase
			step := s.Step + 1
			return res, &StepError{Step: step, Time: float64(step) * in.cfg.Dt, Wrapped: err}
		}
		s = next
		in.record(res, s)
	}

	res.Final = s.Phase
	if impacted(s) {
		res.Termination = Impact
		res.Final = Impacted
	}
	return res, nil
}

func (in *Integrator) record(res *Result, s VehicleState) {
	res.History.add(s)
	if s.Phase == Burn {
		res.BurnoutIndex = s.Step
	}
	for _, o := range in.observers {
		o.OnSample(s)
	}
}

func (in *Integrator) thrust(prev VehicleState) (tx, ty float64, err error) {
	v := in.cfg.Vehicle
	if in.cfg.ThrustModel == config.ThrustAccumulate {
		d := v.NozzleExitArea * (v.NozzleExitPressure - prev.Ambient.P)
		return prev.Tx + d*in.cos, prev.Ty + d*in.sin, nil
	}

	f, err := atmosphere.Thrust(in.mdot, in.ve, v.NozzleExitPressure, prev.Ambient.P, v.NozzleExitArea)
	if err != nil {
		return 0, 0, err
	}
	return f * in.cos, f * in.sin, nil
}

func (in *Integrator) drag(rho, vx, vy float64) (dx, dy float64) {
	k := 0.5 * rho * in.cfg.Vehicle.DragCoefficient * in.cfg.Vehicle.ReferenceArea
	if in.cfg.DragModel == config.DragVector {
		speed := math.Hypot(vx, vy)
		return k * speed * math.Abs(vx), k * speed * math.Abs(vy)
	}
	return k * vx * vx, k * vy * vy
}

// dragSigns gives the factor each drag magnitude is subtracted with.
// Horizontal drag opposes vx in both models. The axis model only flips
// vertically once coasting down, judged on the new vy.
func (in *Integrator) dragSigns(s VehicleState) (sx, sy float64) {
	if in.cfg.DragModel == config.DragVector {
		return sign(s.Vx), sign(s.Vy)
	}
	if s.Phase == Coast && s.Vy < 0 {
		return sign(s.Vx), -1
	}
	return sign(s.Vx), 1
}

func impacted(s VehicleState) bool {
	return s.Phase == Coast && s.Y <= 0
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
