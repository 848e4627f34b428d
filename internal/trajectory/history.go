package trajectory

// History is the append-only sample sequence of one run. Accessors hand out
// copies, never references into the backing slice.
type History struct {
	samples []VehicleState
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{samples: make([]VehicleState, 0, capacity)}
}

// HistoryOf builds a History holding copies of samples.
func HistoryOf(samples ...VehicleState) *History {
	h := NewHistory(len(samples))
	h.samples = append(h.samples, samples...)
	return h
}

func (h *History) add(s VehicleState) { h.samples = append(h.samples, s) }

func (h *History) Len() int { return len(h.samples) }

func (h *History) At(i int) VehicleState { return h.samples[i] }

// Last returns the most recent sample, or the zero value if h is empty.
func (h *History) Last() VehicleState {
	if len(h.samples) == 0 {
		return VehicleState{}
	}
	return h.samples[len(h.samples)-1]
}

func (h *History) Samples() []VehicleState {
	out := make([]VehicleState, len(h.samples))
	copy(out, h.samples)
	return out
}

// Column extracts one value per sample.
func (h *History) Column(f func(VehicleState) float64) []float64 {
	out := make([]float64, len(h.samples))
	for i, s := range h.samples {
		out[i] = f(s)
	}
	return out
}

func (h *History) Times() []float64 {
	return h.Column(func(s VehicleState) float64 { return s.Time })
}
