package trajectory

import (
	"fmt"
	"math"

	"github.com/lia-aerospace/trajsim/internal/config"
)

// LapseAtmosphere evaluates the single-lapse-rate near-ground atmosphere at
// altitude y [m]. Negative altitudes are allowed so the impact sample can be
// computed.
func LapseAtmosphere(env config.Environment, y float64) (Ambient, error) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return Ambient{}, fmt.Errorf("lapse atmosphere: y=%g: %w", y, ErrInvalidInput)
	}

	t := env.Temperature - env.LapseRate*y
	if t <= 0 {
		return Ambient{}, fmt.Errorf("lapse atmosphere: T=%g K at y=%g m: %w", t, y, ErrOutOfRange)
	}

	var p float64
	if env.LapseRate == 0 {
		p = env.Pressure * math.Exp(-env.Gravity*env.MolarMass*y/(env.GasConstant*env.Temperature))
	} else {
		base := 1 - env.LapseRate*y/env.Temperature
		if base <= 0 {
			return Ambient{}, fmt.Errorf("lapse atmosphere: y=%g m above model ceiling: %w", y, ErrOutOfRange)
		}
		p = env.Pressure * math.Pow(base, env.Gravity*env.MolarMass/(env.GasConstant*env.LapseRate))
	}

	return Ambient{
		T:   t,
		P:   p,
		Rho: p * env.MolarMass / (env.GasConstant * t),
	}, nil
}

// SeaLevel returns the configured sea-level constants unchanged.
func SeaLevel(env config.Environment) Ambient {
	return Ambient{T: env.Temperature, P: env.Pressure, Rho: env.Density}
}
