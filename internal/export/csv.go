package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

var CSVHeader = []string{
	"step", "time", "x", "y", "vx", "vy", "ax", "ay", "mass",
	"thrust_x", "thrust_y", "drag_x", "drag_y", "gamma", "phase",
}

// WriteCSV writes one row per sample, floats with 6 decimals.
func WriteCSV(w io.Writer, h *trajectory.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, s := range h.Samples() {
		row := []string{
			strconv.Itoa(s.Step),
			f(s.Time),
			f(s.X), f(s.Y),
			f(s.Vx), f(s.Vy),
			f(s.Ax), f(s.Ay),
			f(s.Mass),
			f(s.Tx), f(s.Ty),
			f(s.Dx), f(s.Dy),
			f(s.Gamma),
			s.Phase.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
