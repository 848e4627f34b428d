package atmosphere

import "fmt"

// State is the full set of standard-atmosphere properties at one height.
type State struct {
	Z       float64 // m, geometric height
	Hz      float64 // km', geopotential height
	B       int     // band index
	T       float64 // K
	P       float64 // Pa
	Rho     float64 // kg/m^3
	Vs      float64 // m/s
	DynVisc float64 // N*s/m^2
	KinVisc float64 // m^2/s
	Gravity float64 // m/s^2
}

// At evaluates every property at geometric height Z [m].
func At(z float64) (State, error) {
	if err := checkFinite("at", z); err != nil {
		return State{}, err
	}
	if z < 0 || z > MaxGeometric {
		return State{}, fmt.Errorf("at: Z=%g m outside [0, %g]: %w", z, MaxGeometric, ErrOutOfRange)
	}

	band, err := Lookup(z)
	if err != nil {
		return State{}, err
	}
	t, err := Temperature(band.Tmb, band.Lmb, band.Hz, band.Hb)
	if err != nil {
		return State{}, err
	}
	p, err := Pressure(band.Tmb, band.Lmb, band.Hz, band.Hb, band.Pb)
	if err != nil {
		return State{}, err
	}
	rho, err := Density(p, t)
	if err != nil {
		return State{}, err
	}
	vs, err := SpeedOfSound(t)
	if err != nil {
		return State{}, err
	}
	mu, nu, err := Viscosity(t, rho)
	if err != nil {
		return State{}, err
	}
	g, err := Gravity(z)
	if err != nil {
		return State{}, err
	}

	return State{
		Z:       z,
		Hz:      band.Hz,
		B:       band.B,
		T:       t,
		P:       p,
		Rho:     rho,
		Vs:      vs,
		DynVisc: mu,
		KinVisc: nu,
		Gravity: g,
	}, nil
}
