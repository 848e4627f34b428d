package epoch

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name string
		p    Parts
		want float64
	}{
		{"vallado 3.4", Parts{1996, 10, 26, 14, 20, 0}, 2450383.097222222},
		{"vallado 3.5", Parts{1992, 8, 20, 12, 14, 0}, 2448855.009722222},
		{"j2000", Parts{2000, 1, 1, 12, 0, 0}, J2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JulianDate(tt.p)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-8 {
				t.Errorf("JulianDate(%+v) = %.9f, want %.9f", tt.p, got, tt.want)
			}
		})
	}
}

func TestJulianDate_LeapDay(t *testing.T) {
	feb28, _ := JulianDate(Parts{Year: 2024, Month: 2, Day: 28})
	mar1, _ := JulianDate(Parts{Year: 2024, Month: 3, Day: 1})
	if mar1-feb28 != 2 {
		t.Errorf("expected two days across 2024-02-29, got %f", mar1-feb28)
	}
}

func TestJulianDate_OutOfRange(t *testing.T) {
	for _, p := range []Parts{
		{Year: 1899, Month: 6, Day: 1},
		{Year: 2101, Month: 6, Day: 1},
		{Year: 2000, Month: 13, Day: 1},
		{Year: 2000, Month: 0, Day: 1},
	} {
		if _, err := JulianDate(p); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("JulianDate(%+v): expected ErrOutOfRange, got %v", p, err)
		}
	}
}

func TestJulianCenturies(t *testing.T) {
	if got := JulianCenturies(J2000); got != 0 {
		t.Errorf("expected 0 at J2000, got %f", got)
	}
	if got := JulianCenturies(2448855.009722222); math.Abs(got-(-0.073647919)) > 1e-8 {
		t.Errorf("expected -0.073647919, got %.9f", got)
	}
}

func TestGMST(t *testing.T) {
	secs, deg := GMST(JulianCenturies(2448855.009722222))
	if math.Abs(secs-(-232984181.0909)) > 1e-2 {
		t.Errorf("expected unreduced -232984181.09 s, got %f", secs)
	}
	if math.Abs(deg-152.578787886) > 1e-6 {
		t.Errorf("expected 152.578787886 deg, got %.9f", deg)
	}

	if _, deg := GMST(0); math.Abs(deg-280.460618375) > 1e-9 {
		t.Errorf("expected 280.460618375 deg at J2000, got %.9f", deg)
	}
}

func TestAt_SiderealDay(t *testing.T) {
	start := time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC)
	a, err := At(start)
	if err != nil {
		t.Fatal(err)
	}
	b, err := At(start.Add(23*time.Hour + 56*time.Minute + 4090500*time.Microsecond))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(a.GMST-b.GMST) > 1e-4 {
		t.Errorf("expected the same GMST one sidereal day apart, got %f and %f", a.GMST, b.GMST)
	}
	if a.GMST < 0 || a.GMST >= 360 {
		t.Errorf("GMST %f outside [0, 360)", a.GMST)
	}
}

func TestPartsOf(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	p := PartsOf(time.Date(2024, 12, 31, 22, 30, 15, 500_000_000, loc))
	want := Parts{2025, 1, 1, 1, 30, 15.5}
	if p != want {
		t.Errorf("PartsOf = %+v, want %+v", p, want)
	}
}

func TestJulianDate_MatchesMeeus(t *testing.T) {
	for _, tm := range []time.Time{
		time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1957, 10, 4, 19, 28, 34, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
		time.Date(2100, 2, 28, 12, 0, 0, 0, time.UTC),
	} {
		got, err := JulianDate(PartsOf(tm))
		if err != nil {
			t.Fatal(err)
		}
		if want := julian.TimeToJD(tm); math.Abs(got-want) > 1e-8 {
			t.Errorf("%s: JulianDate = %.9f, meeus = %.9f", tm, got, want)
		}
	}
}

func TestTimeOf(t *testing.T) {
	got, err := TimeOf(2448855.009722222)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(1992, 8, 20, 12, 14, 0, 0, time.UTC)
	if d := got.Sub(want); d < -time.Millisecond || d > time.Millisecond {
		t.Errorf("TimeOf = %s, want %s", got, want)
	}
	if _, err := TimeOf(math.NaN()); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for NaN, got %v", err)
	}
}
