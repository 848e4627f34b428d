package epoch

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// J2000 is the Julian date of 2000-01-01 12:00 UT.
	J2000 = 2451545.0

	DaysPerCentury = 36525.0
	SecondsPerDay  = 86400.0

	// The Julian date algorithm holds from 1900-03-01 to 2100-02-28.
	MinYear = 1900
	MaxYear = 2100
)

var ErrOutOfRange = errors.New("epoch: date out of supported range")

// Parts is a calendar instant split into its fields, seconds included with
// their fraction.
type Parts struct {
	Year, Month, Day int
	Hour, Minute     int
	Second           float64
}

// PartsOf splits t, taken in UTC.
func PartsOf(t time.Time) Parts {
	t = t.UTC()
	return Parts{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
	}
}

// JulianDate is Vallado's algorithm 14. The integer divisions truncate, which
// is exact for the positive years it accepts.
func JulianDate(p Parts) (float64, error) {
	if p.Year < MinYear || p.Year > MaxYear {
		return 0, fmt.Errorf("julian date: year %d outside [%d, %d]: %w", p.Year, MinYear, MaxYear, ErrOutOfRange)
	}
	if p.Month < 1 || p.Month > 12 {
		return 0, fmt.Errorf("julian date: month %d: %w", p.Month, ErrOutOfRange)
	}

	yr, mo := p.Year, p.Month
	day := 367*yr - 7*(yr+(mo+9)/12)/4 + 275*mo/9 + p.Day
	frac := ((p.Second/60+float64(p.Minute))/60 + float64(p.Hour)) / 24
	return float64(day) + 1721013.5 + frac, nil
}

// TimeOf converts a Julian date back to a UTC instant.
func TimeOf(jd float64) (time.Time, error) {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return time.Time{}, fmt.Errorf("julian date %v: %w", jd, ErrOutOfRange)
	}
	return julian.JDToTime(jd).UTC(), nil
}

// JulianCenturies counts centuries elapsed since J2000.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// GMST returns Greenwich mean sidereal time for T Julian centuries past
// J2000, both unreduced in seconds and as an angle in [0, 360) degrees.
func GMST(t float64) (seconds, degrees float64) {
	seconds = 67310.54841 + (876600*3600+8640184.812866)*t + 0.093104*t*t - 6.2e-6*t*t*t
	degrees = math.Mod(seconds, SecondsPerDay) / 240
	if degrees < 0 {
		degrees += 360
	}
	return seconds, degrees
}

// Sidereal bundles the conversions for one instant.
type Sidereal struct {
	Time      time.Time
	JD        float64
	Centuries float64
	GMST      float64 // deg
}

func At(t time.Time) (Sidereal, error) {
	jd, err := JulianDate(PartsOf(t))
	if err != nil {
		return Sidereal{}, err
	}
	c := JulianCenturies(jd)
	_, deg := GMST(c)
	return Sidereal{Time: t.UTC(), JD: jd, Centuries: c, GMST: deg}, nil
}
