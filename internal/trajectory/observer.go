package trajectory

import "github.com/rs/zerolog"

// Observer is notified of every sample appended to a run's History.
type Observer interface {
	OnSample(s VehicleState)
}

type ObserverFunc func(VehicleState)

func (f ObserverFunc) OnSample(s VehicleState) { f(s) }

// PhaseLogger logs flight events: burnout, apogee and impact. Every sample
// is logged at trace level.
type PhaseLogger struct {
	log  zerolog.Logger
	prev VehicleState
	seen bool
}

func NewPhaseLogger(log zerolog.Logger) *PhaseLogger {
	return &PhaseLogger{log: log}
}

func (p *PhaseLogger) OnSample(s VehicleState) {
	p.log.Trace().
		Int("step", s.Step).
		Float64("t", s.Time).
		Float64("x", s.X).
		Float64("y", s.Y).
		Float64("mass", s.Mass).
		Str("phase", s.Phase.String()).
		Msg("sample")

	if !p.seen {
		p.log.Info().Float64("mass", s.Mass).Float64("thrust", s.Thrust()).Msg("Lift-off")
		p.prev, p.seen = s, true
		return
	}

	if p.prev.Phase == Burn && s.Phase == Coast {
		p.log.Info().
			Float64("t", p.prev.Time).
			Float64("y", p.prev.Y).
			Float64("speed", p.prev.Speed()).
			Msg("Burnout")
	}
	if p.prev.Vy > 0 && s.Vy <= 0 {
		p.log.Info().Float64("t", s.Time).Float64("y", s.Y).Float64("x", s.X).Msg("Apogee")
	}
	if s.Phase == Coast && s.Y <= 0 {
		p.log.Info().Float64("t", s.Time).Float64("x", s.X).Float64("speed", s.Speed()).Msg("Impact")
	}
	p.prev = s
}
