package trajectory

import "testing"

func TestHistory_CopiesOut(t *testing.T) {
	h := HistoryOf(VehicleState{Step: 0, Y: 1}, VehicleState{Step: 1, Y: 2})

	samples := h.Samples()
	samples[0].Y = 99
	if h.At(0).Y != 1 {
		t.Error("mutating Samples() changed the history")
	}

	last := h.Last()
	last.Y = 99
	if h.Last().Y != 2 {
		t.Error("mutating Last() changed the history")
	}
}

func TestHistoryOf_CopiesIn(t *testing.T) {
	in := []VehicleState{{Y: 1}}
	h := HistoryOf(in...)
	in[0].Y = 5
	if h.At(0).Y != 1 {
		t.Error("HistoryOf aliases its input")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(0)
	if h.Len() != 0 {
		t.Errorf("expected empty history, got %d", h.Len())
	}
	if h.Last() != (VehicleState{}) {
		t.Error("expected zero Last() on empty history")
	}
}

func TestHistory_Column(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 3; i++ {
		h.add(VehicleState{Step: i, Time: float64(i) * 0.5, Mass: float64(10 - i)})
	}

	mass := h.Column(func(s VehicleState) float64 { return s.Mass })
	want := []float64{10, 9, 8}
	for i := range want {
		if mass[i] != want[i] {
			t.Errorf("mass[%d] = %f, want %f", i, mass[i], want[i])
		}
	}
	if times := h.Times(); times[2] != 1.0 {
		t.Errorf("expected t=1.0 at index 2, got %f", times[2])
	}
}
