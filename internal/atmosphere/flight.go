package atmosphere

import "fmt"

// Mach returns the local Mach number for flow speed v and speed of sound vs.
func Mach(v, vs float64) (float64, error) {
	if err := checkFinite("mach", v, vs); err != nil {
		return 0, err
	}
	if vs == 0 {
		return 0, fmt.Errorf("mach: zero speed of sound: %w", ErrDivisionByZero)
	}
	return v / vs, nil
}

// Reynolds returns the Reynolds number for speed v, kinematic viscosity kvisc
// and characteristic length l.
func Reynolds(v, kvisc, l float64) (float64, error) {
	if err := checkFinite("reynolds", v, kvisc, l); err != nil {
		return 0, err
	}
	if kvisc == 0 {
		return 0, fmt.Errorf("reynolds: zero kinematic viscosity: %w", ErrDivisionByZero)
	}
	return v * l / kvisc, nil
}

// Thrust returns momentum thrust plus the nozzle pressure correction
// (pe-po)*ae for exit area ae.
func Thrust(mdot, ve, pe, po, ae float64) (float64, error) {
	if err := checkFinite("thrust", mdot, ve, pe, po, ae); err != nil {
		return 0, err
	}
	if ae < 0 {
		return 0, fmt.Errorf("thrust: negative exit area %g m^2: %w", ae, ErrInvalidInput)
	}
	return mdot*ve + (pe-po)*ae, nil
}
