package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lia-aerospace/trajsim/internal/atmosphere"
	"github.com/lia-aerospace/trajsim/internal/config"
	"github.com/lia-aerospace/trajsim/internal/epoch"
	"github.com/lia-aerospace/trajsim/internal/export"
	"github.com/lia-aerospace/trajsim/internal/metrics"
	"github.com/lia-aerospace/trajsim/internal/optim"
	"github.com/lia-aerospace/trajsim/internal/trajectory"
	"github.com/lia-aerospace/trajsim/internal/viz"
)

var (
	logLevel string
	log      zerolog.Logger

	configFile  string
	preset      string
	angle       float64
	dt          float64
	duration    float64
	thrustModel string
	dragModel   string

	plotSeries string
	format     string
	outFile    string

	altFrom    float64
	altTo      float64
	altStep    float64
	showLayers bool

	sweepAngles []float64
	workers     int

	gridParams []string
	objective  string

	launchAt string
	launchJD float64
)

// main registers the commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "trajsim",
		Short:         "standard atmosphere and launch trajectory simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = newLogger(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, off)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a trajectory and report it",
		RunE:  runTrajectory,
	}
	addVehicleFlags(runCmd)
	runCmd.Flags().StringVar(&plotSeries, "plot", "", "comma-separated series to plot, or \"all\"")
	runCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json, svg)")
	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "write output to file instead of stdout")

	atmosphereCmd := &cobra.Command{
		Use:   "atmosphere",
		Short: "tabulate the 1976 standard atmosphere",
		RunE:  tabulateAtmosphere,
	}
	atmosphereCmd.Flags().Float64Var(&altFrom, "from", 0, "start altitude [m]")
	atmosphereCmd.Flags().Float64Var(&altTo, "to", 84000, "end altitude [m]")
	atmosphereCmd.Flags().Float64Var(&altStep, "step", 4000, "altitude step [m]")
	atmosphereCmd.Flags().BoolVar(&showLayers, "layers", false, "print the layer base table instead")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare launch angles in parallel",
		RunE:  sweepAnglesCmd,
	}
	addVehicleFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepAngles, "angles", []float64{70, 75, 80, 85, 90}, "launch angles [deg]")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 = one per CPU)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list vehicle presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s angle=%5.1f deg  dry=%5.1f kg  prop=%5.1f kg  F0=%6.0f N  Pe=%6.0f Pa\n",
					name, p.LaunchAngle, p.Vehicle.DryMass, p.Vehicle.PropellantMass,
					p.Vehicle.SeaLevelThrust, p.Vehicle.NozzleExitPressure)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay a trajectory in the terminal",
		RunE:  runLive,
	}
	addVehicleFlags(liveCmd)

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid-search vehicle parameters for the best objective",
		RunE:  optimize,
	}
	addVehicleFlags(optimizeCmd)
	optimizeCmd.Flags().StringArrayVar(&gridParams, "param", []string{"launch_angle=60:90:1"}, "parameter grid as name=start:stop:step (repeatable)")
	optimizeCmd.Flags().StringVar(&objective, "maximize", "downrange",
		"metric to maximize ("+strings.Join(optim.ObjectiveNames(), ", ")+")")

	siderealCmd := &cobra.Command{
		Use:   "sidereal",
		Short: "Julian date and Greenwich mean sidereal time of a launch instant",
		RunE:  siderealTime,
	}
	siderealCmd.Flags().StringVar(&launchAt, "at", "", "instant as RFC 3339 (default now)")
	siderealCmd.Flags().Float64Var(&launchJD, "jd", 0, "instant as a Julian date")
	siderealCmd.MarkFlagsMutuallyExclusive("at", "jd")

	rootCmd.AddCommand(runCmd, atmosphereCmd, sweepCmd, presetsCmd, liveCmd, optimizeCmd, siderealCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addVehicleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml, json or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&angle, "angle", config.DefaultLaunchAngle, "launch angle [deg]")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep [s]")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "maximum simulated time [s]")
	cmd.Flags().StringVar(&thrustModel, "thrust-model", config.ThrustNozzle, "thrust model (nozzle, accumulate)")
	cmd.Flags().StringVar(&dragModel, "drag-model", config.DragAxis, "drag model (axis, vector)")
}

// resolveConfig picks the config file, else the preset, else defaults with
// environment overrides. Explicitly set flags win over all of them.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	default:
		loaded, err := config.Load("")
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("angle") {
		cfg.LaunchAngle = angle
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("thrust-model") {
		cfg.ThrustModel = thrustModel
	}
	if cmd.Flags().Changed("drag-model") {
		cfg.DragModel = dragModel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug().
		Str("name", cfg.Name).
		Float64("angle", cfg.LaunchAngle).
		Float64("dt", cfg.Dt).
		Str("thrust_model", cfg.ThrustModel).
		Str("drag_model", cfg.DragModel).
		Msg("Resolved config")
	return cfg, nil
}

func integrate(ctx context.Context, cfg *config.Config, observers ...trajectory.Observer) (*trajectory.Result, error) {
	in, err := trajectory.New(*cfg)
	if err != nil {
		return nil, err
	}
	for _, o := range observers {
		in.AddObserver(o)
	}
	return in.Run(ctx)
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ms := metrics.Standard()
	observers := []trajectory.Observer{trajectory.NewPhaseLogger(log)}
	for _, m := range ms {
		observers = append(observers, m)
	}

	res, err := integrate(cmd.Context(), cfg, observers...)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	log.Info().
		Str("termination", res.Termination.String()).
		Int("samples", res.History.Len()).
		Msg("Run complete")

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	sum := metrics.Summarize(res)
	meta := export.NewRunMetadata(cfg.Name)
	meta.Dt, meta.Duration, meta.LaunchAngle = cfg.Dt, cfg.Duration, cfg.LaunchAngle
	meta.ThrustModel, meta.DragModel = cfg.ThrustModel, cfg.DragModel
	meta.Termination = res.Termination.String()
	meta.Summary = sum
	meta.Metrics = metrics.Values(ms)

	switch format {
	case "csv":
		return export.WriteCSV(w, res.History)
	case "json":
		return export.WriteJSON(w, meta, res.History)
	case "svg":
		return export.WriteSVG(w, res.History, 800, 400, "#00ff88")
	case "table":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Fprintln(w, viz.SummaryPanel(cfg.Name, sum))
	fmt.Fprintln(w)

	series, err := selectSeries(plotSeries)
	if err != nil {
		return err
	}
	for _, s := range series {
		graph, err := viz.Plot(res.History, s, viz.PlotOptions{Width: 80, Height: 10})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}
	return nil
}

func selectSeries(list string) ([]viz.Series, error) {
	switch list {
	case "":
		return nil, nil
	case "all":
		return viz.DefaultSeries, nil
	}
	var out []viz.Series
	for _, name := range strings.Split(list, ",") {
		s, err := viz.ParseSeries(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func tabulateAtmosphere(cmd *cobra.Command, args []string) error {
	if showLayers {
		writeLayerTable(os.Stdout)
		return nil
	}
	if altStep <= 0 {
		return fmt.Errorf("step must be positive, got %f", altStep)
	}

	fmt.Printf("%9s %9s %2s %8s %12s %12s %8s %12s %12s %8s\n",
		"Z [m]", "H [km']", "b", "T [K]", "P [Pa]", "rho", "Vs [m/s]", "mu", "nu", "g")
	for z := altFrom; z <= altTo+1e-9; z += altStep {
		s, err := atmosphere.At(z)
		if err != nil {
			return fmt.Errorf("at %g m: %w", z, err)
		}
		fmt.Printf("%9.0f %9.3f %2d %8.2f %12.4e %12.4e %8.2f %12.4e %12.4e %8.4f\n",
			s.Z, s.Hz, s.B, s.T, s.P, s.Rho, s.Vs, s.DynVisc, s.KinVisc, s.Gravity)
	}
	return nil
}

func siderealTime(cmd *cobra.Command, args []string) error {
	t := time.Now()
	switch {
	case cmd.Flags().Changed("jd"):
		var err error
		if t, err = epoch.TimeOf(launchJD); err != nil {
			return err
		}
	case launchAt != "":
		var err error
		if t, err = time.Parse(time.RFC3339, launchAt); err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}
	sd, err := epoch.At(t)
	if err != nil {
		return err
	}
	log.Debug().Time("at", sd.Time).Float64("jd", sd.JD).Msg("Sidereal time")

	writeSidereal(os.Stdout, sd)
	return nil
}

func writeSidereal(w io.Writer, sd epoch.Sidereal) {
	fmt.Fprintf(w, "UTC        %s\n", sd.Time.Format(time.RFC3339Nano))
	fmt.Fprintf(w, "JD         %.6f\n", sd.JD)
	fmt.Fprintf(w, "T (J2000)  %.9f centuries\n", sd.Centuries)
	fmt.Fprintf(w, "GMST       %.6f deg\n", sd.GMST)
}

func writeLayerTable(w io.Writer) {
	fmt.Fprintf(w, "%2s %10s %12s %10s %14s\n", "b", "Hb [km']", "Lmb [K/km']", "Tmb [K]", "Pb [Pa]")
	for b, l := range atmosphere.Table() {
		fmt.Fprintf(w, "%2d %10.3f %12.1f %10.3f %14.7g\n", b, l.Hb, l.Lmb, l.Tmb, l.Pb)
	}
}

func sweepAnglesCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log.Info().Int("runs", len(sweepAngles)).Int("workers", workers).Msg("Starting sweep")
	results, err := trajectory.Sweep(cmd.Context(), *cfg, sweepAngles, workers)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	apogees := make([]float64, len(results))
	fmt.Printf("%8s %12s %12s %10s %10s %8s\n", "angle", "apogee [m]", "range [m]", "time [s]", "max mach", "end")
	for i, res := range results {
		sum := metrics.Summarize(res)
		apogees[i] = sum.Apogee
		fmt.Printf("%8.1f %12.1f %12.1f %10.2f %10.2f %8s\n",
			sweepAngles[i], sum.Apogee, sum.Downrange, sum.FlightTime, sum.MaxMach, sum.Termination)
	}

	if len(apogees) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(apogees,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("apogee [m] by launch angle (input order)"),
		))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	res, err := integrate(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return viz.RunReplay(cfg.Name, res)
}

func optimize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(gridParams))
	ranges := make([][]float64, 0, len(gridParams))
	for _, p := range gridParams {
		name, rng, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q, want name=start:stop:step", p)
		}
		vals, err := optim.ParseRange(rng)
		if err != nil {
			return err
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, vals)
	}

	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	best, err := g.Search(cmd.Context(), *cfg, objective)
	if err != nil {
		return err
	}
	log.Info().
		Int("evaluated", best.Evaluated).
		Int("skipped", best.Skipped).
		Msg("Grid search complete")

	fmt.Printf("best %s: %.3f\n", objective, best.Value)
	for _, name := range names {
		fmt.Printf("  %-18s %g\n", name, best.Params[name])
	}
	for _, name := range optim.ObjectiveNames() {
		if name != objective {
			fmt.Printf("  %-18s %.3f\n", name, best.Metrics[name])
		}
	}
	fmt.Println()
	fmt.Println(viz.SummaryPanel("best candidate", metrics.Summarize(best.Result)))
	return nil
}
