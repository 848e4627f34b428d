package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/lia-aerospace/trajsim/internal/metrics"
	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	LaunchAngle float64            `json:"launch_angle"`
	ThrustModel string             `json:"thrust_model"`
	DragModel   string             `json:"drag_model"`
	Termination string             `json:"termination"`
	Summary     metrics.Summary    `json:"summary"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

// NewRunMetadata stamps a fresh run id and the current time.
func NewRunMetadata(name string) RunMetadata {
	return RunMetadata{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: time.Now().UTC(),
	}
}

type Sample struct {
	Step  int     `json:"step"`
	Time  float64 `json:"time"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Vx    float64 `json:"vx"`
	Vy    float64 `json:"vy"`
	Ax    float64 `json:"ax"`
	Ay    float64 `json:"ay"`
	Mass  float64 `json:"mass"`
	Tx    float64 `json:"thrust_x"`
	Ty    float64 `json:"thrust_y"`
	Dx    float64 `json:"drag_x"`
	Dy    float64 `json:"drag_y"`
	Gamma float64 `json:"gamma"`
	Phase string  `json:"phase"`
}

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Samples []Sample    `json:"samples"`
}

func WriteJSON(w io.Writer, meta RunMetadata, h *trajectory.History) error {
	data := ExportData{
		Run:     meta,
		Samples: make([]Sample, 0, h.Len()),
	}
	for _, s := range h.Samples() {
		data.Samples = append(data.Samples, Sample{
			Step:  s.Step,
			Time:  s.Time,
			X:     s.X,
			Y:     s.Y,
			Vx:    s.Vx,
			Vy:    s.Vy,
			Ax:    s.Ax,
			Ay:    s.Ay,
			Mass:  s.Mass,
			Tx:    s.Tx,
			Ty:    s.Ty,
			Dx:    s.Dx,
			Dy:    s.Dy,
			Gamma: s.Gamma,
			Phase: s.Phase.String(),
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
