package trajectory_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lia-aerospace/trajsim/internal/config"
	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

func mustRun(cfg *config.Config) *trajectory.Result {
	in, err := trajectory.New(*cfg)
	Expect(err).NotTo(HaveOccurred())
	res, err := in.Run(context.Background())
	Expect(err).NotTo(HaveOccurred())
	return res
}

var _ = Describe("Integrator", func() {
	Describe("New", func() {
		It("rejects an invalid configuration", func() {
			cfg := config.DefaultConfig()
			cfg.Dt = 0
			_, err := trajectory.New(*cfg)
			Expect(err).To(MatchError(config.ErrInvalidConfig))
		})
	})

	Describe("Initial", func() {
		It("starts at rest with full thrust along the launch angle", func() {
			cfg := config.DefaultConfig()
			in, err := trajectory.New(*cfg)
			Expect(err).NotTo(HaveOccurred())

			s := in.Initial()
			theta := cfg.LaunchAngleRad()
			Expect(s.Time).To(BeZero())
			Expect(s.X).To(BeZero())
			Expect(s.Y).To(BeZero())
			Expect(s.Mass).To(Equal(65.0))
			Expect(s.Phase).To(Equal(trajectory.Burn))
			Expect(s.Tx).To(BeNumerically("~", 5500*math.Cos(theta), 1e-9))
			Expect(s.Ty).To(BeNumerically("~", 5500*math.Sin(theta), 1e-9))
			Expect(s.Ay).To(BeNumerically("~", s.Ty/65-9.81, 1e-12))
			Expect(s.Ambient.Rho).To(Equal(1.225))
		})
	})

	Describe("ballistic flight", func() {
		It("follows the analytic parabola with thrust and drag at zero", func() {
			cfg := config.DefaultConfig()
			cfg.Vehicle.SeaLevelThrust = 0
			cfg.Vehicle.NozzleExitArea = 0
			cfg.Vehicle.DragCoefficient = 0
			cfg.Vehicle.BurnTime = 0.1
			in, err := trajectory.New(*cfg)
			Expect(err).NotTo(HaveOccurred())

			g := cfg.Environment.Gravity
			const vx0, vy0 = 10.0, 50.0
			s := trajectory.VehicleState{
				Vx: vx0, Vy: vy0, Ay: -g,
				Mass: 43, Phase: trajectory.Coast,
			}

			for s.Time < 10 {
				s, err = in.Step(s)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Phase).To(Equal(trajectory.Coast))

				t := s.Time
				Expect(s.Y).To(BeNumerically("~", vy0*t-0.5*g*t*t, cfg.Dt*cfg.Dt))
				Expect(s.X).To(BeNumerically("~", vx0*t, 1e-9))
				Expect(s.Vy).To(BeNumerically("~", vy0-g*t, 1e-9))
			}
		})
	})

	Describe("flight-path angle guard", func() {
		It("keeps the previous angle when the horizontal velocity is zero", func() {
			cfg := config.GetPreset("vertical")
			cfg.Vehicle.DragCoefficient = 0
			cfg.Vehicle.BurnTime = 0.1
			in, err := trajectory.New(*cfg)
			Expect(err).NotTo(HaveOccurred())

			prev := trajectory.VehicleState{
				Y: 100, Vy: 20, Ay: -9.81,
				Mass: 43, Gamma: math.Pi / 2, Phase: trajectory.Coast,
			}
			next, err := in.Step(prev)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Vx).To(BeZero())
			Expect(next.Gamma).To(Equal(math.Pi / 2))
		})
	})

	Describe("reference scenario", func() {
		var res *trajectory.Result
		var samples []trajectory.VehicleState

		BeforeEach(func() {
			res = mustRun(config.DefaultConfig())
			samples = res.History.Samples()
		})

		It("spaces samples by exactly dt", func() {
			for i, s := range samples {
				Expect(s.Step).To(Equal(i))
				Expect(s.Time).To(BeNumerically("~", float64(i)*0.25, 1e-12))
				if i > 0 {
					Expect(s.Time).To(BeNumerically(">", samples[i-1].Time))
				}
			}
		})

		It("burns out at t = 10 s with only dry mass left", func() {
			Expect(res.BurnoutIndex).To(Equal(40))
			burnout := samples[40]
			Expect(burnout.Phase).To(Equal(trajectory.Burn))
			Expect(burnout.Time).To(Equal(10.0))
			Expect(burnout.Mass).To(BeNumerically("~", 43, 1e-12))

			first := samples[41]
			Expect(first.Phase).To(Equal(trajectory.Coast))
			Expect(first.Time).To(Equal(10.25))
			Expect(first.Tx).To(BeZero())
			Expect(first.Ty).To(BeZero())
			Expect(first.Mass).To(Equal(burnout.Mass))
		})

		It("loses propellant linearly while burning", func() {
			for _, s := range samples[:41] {
				Expect(s.Mass).To(BeNumerically("~", 65-2.2*s.Time, 1e-9))
			}
		})

		It("never re-enters burn", func() {
			for _, s := range samples[41:] {
				Expect(s.Phase).To(Equal(trajectory.Coast))
			}
		})

		It("terminates at the first coasting sample at or below ground", func() {
			Expect(res.Termination).To(Equal(trajectory.Impact))
			Expect(res.Final).To(Equal(trajectory.Impacted))

			last := res.History.Last()
			Expect(last.Phase).To(Equal(trajectory.Coast))
			Expect(last.Y).To(BeNumerically("<=", 0))
			Expect(last.Time).To(BeNumerically("<", 130))

			for _, s := range samples[41 : len(samples)-1] {
				Expect(s.Y).To(BeNumerically(">", 0))
			}
		})

		It("reaches an apogee above 10 km", func() {
			apogee := 0.0
			for _, s := range samples {
				apogee = math.Max(apogee, s.Y)
			}
			Expect(apogee).To(BeNumerically(">", 10000))
			Expect(apogee).To(BeNumerically("<", 44000))
		})
	})

	Describe("accumulating thrust", func() {
		It("stays airborne until the step bound", func() {
			cfg := config.DefaultConfig()
			cfg.ThrustModel = config.ThrustAccumulate
			res := mustRun(cfg)

			Expect(res.Termination).To(Equal(trajectory.Timeout))
			Expect(res.Final).To(Equal(trajectory.Coast))
			Expect(res.History.Len()).To(Equal(cfg.MaxSteps() + 1))
			Expect(res.History.Last().Time).To(BeNumerically("<=", 130))
		})
	})

	Describe("vector drag", func() {
		It("still impacts before the step bound", func() {
			cfg := config.DefaultConfig()
			cfg.DragModel = config.DragVector
			res := mustRun(cfg)
			Expect(res.Termination).To(Equal(trajectory.Impact))
		})
	})

	Describe("vertical launch", func() {
		It("completes without faulting", func() {
			res := mustRun(config.GetPreset("vertical"))
			Expect(res.Termination).To(Equal(trajectory.Impact))
			Expect(math.Abs(res.History.Last().X)).To(BeNumerically("<", 1))
		})
	})

	Describe("launch past the vertical", func() {
		It("mirrors the same flight at the supplementary angle", func() {
			cfg := config.DefaultConfig()
			cfg.LaunchAngle = 60
			forward := mustRun(cfg).History.Samples()
			cfg.LaunchAngle = 120
			res := mustRun(cfg)
			backward := res.History.Samples()

			Expect(res.Termination).To(Equal(trajectory.Impact))
			Expect(backward).To(HaveLen(len(forward)))
			for i := range backward {
				Expect(backward[i].X).To(BeNumerically("~", -forward[i].X, 1e-6*math.Max(1, math.Abs(forward[i].X))))
				Expect(backward[i].Y).To(BeNumerically("~", forward[i].Y, 1e-6*math.Max(1, math.Abs(forward[i].Y))))
			}
		})

		It("never lets horizontal drag push along the motion", func() {
			cfg := config.DefaultConfig()
			cfg.LaunchAngle = 120
			for _, s := range mustRun(cfg).History.Samples() {
				if s.Phase == trajectory.Coast && s.Vx < 0 {
					Expect(s.Ax).To(BeNumerically(">=", 0), "t=%.2f vx=%.2f", s.Time, s.Vx)
				}
			}
		})
	})

	Describe("atmosphere ceiling", func() {
		It("aborts with a StepError wrapping ErrOutOfRange", func() {
			cfg := config.DefaultConfig()
			cfg.Vehicle.SeaLevelThrust = 50000
			cfg.Vehicle.DragCoefficient = 0
			cfg.LaunchAngle = 90
			cfg.Duration = 400

			in, err := trajectory.New(*cfg)
			Expect(err).NotTo(HaveOccurred())
			res, err := in.Run(context.Background())

			var stepErr *trajectory.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Step).To(Equal(res.History.Len()))
			Expect(res.Final).To(Equal(res.History.Last().Phase))
			Expect(err).To(MatchError(trajectory.ErrOutOfRange))
		})
	})

	Describe("cancellation", func() {
		It("stops with the context error", func() {
			in, err := trajectory.New(*config.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			res, err := in.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.History.Len()).To(Equal(1))
		})

		It("reports the phase reached when cancelled mid-flight", func() {
			in, err := trajectory.New(*config.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			in.AddObserver(trajectory.ObserverFunc(func(s trajectory.VehicleState) {
				if s.Step == 50 {
					cancel()
				}
			}))

			res, err := in.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.History.Len()).To(Equal(51))
			Expect(res.Final).To(Equal(trajectory.Coast))
		})
	})

	Describe("observers", func() {
		It("sees every appended sample in order", func() {
			in, err := trajectory.New(*config.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			var times []float64
			in.AddObserver(trajectory.ObserverFunc(func(s trajectory.VehicleState) {
				times = append(times, s.Time)
			}))
			res, err := in.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(times).To(Equal(res.History.Times()))
		})
	})
})
