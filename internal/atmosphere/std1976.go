package atmosphere

import (
	"fmt"
	"math"
)

const (
	EarthRadius = 6356766.0 // m, effective radius used for geopotential height
	G0          = 9.80665   // m/s^2, sea-level gravity
	GasConstant = 8314.32   // J/(kmol*K)
	MolarMass   = 28.9644   // kg/kmol, sea-level mean molecular weight
	Gamma       = 1.4       // ratio of specific heats

	SutherlandBeta = 1.458e-6 // kg/(s*m*K^0.5)
	SutherlandS    = 110.4    // K

	// MaxGeopotential is the top of band 7, inclusive.
	MaxGeopotential = 84852.0 // m'
	// MaxGeometric bounds the density, viscosity and sound-speed equations.
	MaxGeometric = 86000.0 // m

	// heights and lapse rates are per km' while g0 and R are per m
	metresPerKm = 1000.0
)

// LayerEntry is one row of the standard's layer table.
type LayerEntry struct {
	Hb  float64 // km', base geopotential height
	Lmb float64 // K/km', molecular-scale temperature gradient
	Tmb float64 // K, base temperature
	Pb  float64 // Pa, base pressure
}

var layers = [8]LayerEntry{
	{Hb: 0, Lmb: -6.5, Tmb: 288.15, Pb: 101325},
	{Hb: 11, Lmb: 0, Tmb: 216.65, Pb: 22632.06},
	{Hb: 20, Lmb: 1, Tmb: 216.65, Pb: 5474.889},
	{Hb: 32, Lmb: 2.8, Tmb: 228.65, Pb: 868.0187},
	{Hb: 47, Lmb: 0, Tmb: 270.65, Pb: 110.9063},
	{Hb: 51, Lmb: -2.8, Tmb: 270.65, Pb: 66.93887},
	{Hb: 71, Lmb: -2, Tmb: 214.65, Pb: 3.956420},
	{Hb: 84.852, Lmb: 0, Tmb: 186.946, Pb: 0.3733836},
}

// Table returns a copy of the layer table.
func Table() [8]LayerEntry {
	return layers
}

// Layer classifies a geopotential height H [m'] into its band. Bands are
// half-open except the top one, where H == MaxGeopotential maps to band 7.
func Layer(h float64) (int, error) {
	if err := checkFinite("layer", h); err != nil {
		return 0, err
	}
	if h < 0 || h > MaxGeopotential {
		return 0, fmt.Errorf("layer: H=%g m' outside [0, %g]: %w", h, MaxGeopotential, ErrOutOfRange)
	}
	if h == MaxGeopotential {
		return 7, nil
	}
	for b := 6; b > 0; b-- {
		if h >= layers[b].Hb*metresPerKm {
			return b, nil
		}
	}
	return 0, nil
}

// GeopotentialHeight converts geometric height Z [m] to geopotential height [m'].
func GeopotentialHeight(z float64) (float64, error) {
	if err := checkFinite("geopotential height", z); err != nil {
		return 0, err
	}
	if EarthRadius+z <= 0 {
		return 0, fmt.Errorf("geopotential height: Z=%g m below the earth's centre: %w", z, ErrInvalidInput)
	}
	return z * EarthRadius / (EarthRadius + z), nil
}

// Band holds the table constants of the band containing a geometric height,
// along with that height expressed in km'.
type Band struct {
	B   int
	Lmb float64 // K/km'
	Tmb float64 // K
	Hb  float64 // km'
	Hz  float64 // km'
	Pb  float64 // Pa
}

// Lookup returns the band constants for geometric height Z [m].
func Lookup(z float64) (Band, error) {
	h, err := GeopotentialHeight(z)
	if err != nil {
		return Band{}, err
	}
	b, err := Layer(h)
	if err != nil {
		return Band{}, fmt.Errorf("lookup Z=%g m: %w", z, err)
	}
	row := layers[b]
	return Band{
		B:   b,
		Lmb: row.Lmb,
		Tmb: row.Tmb,
		Hb:  row.Hb,
		Hz:  h / metresPerKm,
		Pb:  row.Pb,
	}, nil
}

// Temperature evaluates Tm = Tmb + Lmb*(Hz-Hb), heights in km'.
func Temperature(tmb, lmb, hz, hb float64) (float64, error) {
	if err := checkFinite("temperature", tmb, lmb, hz, hb); err != nil {
		return 0, err
	}
	return tmb + lmb*(hz-hb), nil
}

// Pressure evaluates the barometric formula inside one band, heights in km'.
// Both branches carry the same km'-to-m factor on g0*M0/R.
func Pressure(tmb, lmb, hz, hb, pb float64) (float64, error) {
	if err := checkFinite("pressure", tmb, lmb, hz, hb, pb); err != nil {
		return 0, err
	}
	if tmb <= 0 {
		return 0, fmt.Errorf("pressure: base temperature %g K: %w", tmb, ErrInvalidInput)
	}
	if lmb == 0 {
		return pb * math.Exp(-G0*MolarMass*(hz-hb)*metresPerKm/(GasConstant*tmb)), nil
	}
	tm := tmb + lmb*(hz-hb)
	if tm <= 0 {
		return 0, fmt.Errorf("pressure: temperature %g K at Hz=%g km': %w", tm, hz, ErrOutOfRange)
	}
	exp := G0 * MolarMass * metresPerKm / (GasConstant * lmb)
	return pb * math.Pow(tmb/tm, exp), nil
}

// Density applies the ideal gas law.
func Density(p, t float64) (float64, error) {
	if err := checkFinite("density", p, t); err != nil {
		return 0, err
	}
	if t <= 0 || p < 0 {
		return 0, fmt.Errorf("density: P=%g Pa, T=%g K: %w", p, t, ErrInvalidInput)
	}
	return p * MolarMass / (GasConstant * t), nil
}

// SpeedOfSound returns the small-perturbation speed of sound at temperature T.
func SpeedOfSound(t float64) (float64, error) {
	if err := checkFinite("speed of sound", t); err != nil {
		return 0, err
	}
	if t <= 0 {
		return 0, fmt.Errorf("speed of sound: T=%g K: %w", t, ErrInvalidInput)
	}
	return math.Sqrt(Gamma * GasConstant * t / MolarMass), nil
}

// Viscosity returns dynamic viscosity from Sutherland's law and the matching
// kinematic viscosity for density rho.
func Viscosity(t, rho float64) (dynamic, kinematic float64, err error) {
	if err := checkFinite("viscosity", t, rho); err != nil {
		return 0, 0, err
	}
	if t <= 0 {
		return 0, 0, fmt.Errorf("viscosity: T=%g K: %w", t, ErrInvalidInput)
	}
	if rho <= 0 {
		return 0, 0, fmt.Errorf("viscosity: density %g kg/m^3: %w", rho, ErrDivisionByZero)
	}
	dynamic = SutherlandBeta * math.Pow(t, 1.5) / (t + SutherlandS)
	return dynamic, dynamic / rho, nil
}

// Gravity returns the acceleration due to gravity at geometric height Z.
func Gravity(z float64) (float64, error) {
	if err := checkFinite("gravity", z); err != nil {
		return 0, err
	}
	if z < 0 {
		return 0, fmt.Errorf("gravity: Z=%g m is negative: %w", z, ErrInvalidInput)
	}
	r := EarthRadius / (EarthRadius + z)
	return G0 * r * r, nil
}
