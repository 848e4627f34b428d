package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.25
	DefaultDuration    = 130.0
	DefaultLaunchAngle = 85.0

	EnvPrefix = "TRAJSIM"

	// MaxStepCount bounds Duration/Dt.
	MaxStepCount = 1_000_000
)

const (
	ThrustNozzle     = "nozzle"
	ThrustAccumulate = "accumulate"

	DragAxis   = "axis"
	DragVector = "vector"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name        string      `yaml:"name" mapstructure:"name"`
	Vehicle     Vehicle     `yaml:"vehicle" mapstructure:"vehicle"`
	Environment Environment `yaml:"environment" mapstructure:"environment"`
	LaunchAngle float64     `yaml:"launch_angle" mapstructure:"launch_angle"` // deg above horizontal
	Dt          float64     `yaml:"dt" mapstructure:"dt"`
	Duration    float64     `yaml:"duration" mapstructure:"duration"`
	ThrustModel string      `yaml:"thrust_model" mapstructure:"thrust_model"`
	DragModel   string      `yaml:"drag_model" mapstructure:"drag_model"`
}

type Vehicle struct {
	DryMass            float64 `yaml:"dry_mass" mapstructure:"dry_mass"`                         // kg
	PropellantMass     float64 `yaml:"propellant_mass" mapstructure:"propellant_mass"`           // kg
	DragCoefficient    float64 `yaml:"drag_coefficient" mapstructure:"drag_coefficient"`         // adim
	ReferenceArea      float64 `yaml:"reference_area" mapstructure:"reference_area"`             // m^2
	BurnTime           float64 `yaml:"burn_time" mapstructure:"burn_time"`                       // s
	SeaLevelThrust     float64 `yaml:"sea_level_thrust" mapstructure:"sea_level_thrust"`         // N
	NozzleExitArea     float64 `yaml:"nozzle_exit_area" mapstructure:"nozzle_exit_area"`         // m^2
	NozzleExitPressure float64 `yaml:"nozzle_exit_pressure" mapstructure:"nozzle_exit_pressure"` // Pa
}

// Environment holds the sea-level constants of the simplified lapse-rate
// atmosphere the integrator flies through. Gas constant and molar mass are
// per mol, not per kmol.
type Environment struct {
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`   // K
	Pressure    float64 `yaml:"pressure" mapstructure:"pressure"`         // Pa
	Density     float64 `yaml:"density" mapstructure:"density"`           // kg/m^3
	LapseRate   float64 `yaml:"lapse_rate" mapstructure:"lapse_rate"`     // K/m
	GasConstant float64 `yaml:"gas_constant" mapstructure:"gas_constant"` // J/(mol*K)
	MolarMass   float64 `yaml:"molar_mass" mapstructure:"molar_mass"`     // kg/mol
	Gravity     float64 `yaml:"gravity" mapstructure:"gravity"`           // m/s^2
}

func DefaultVehicle() Vehicle {
	return Vehicle{
		DryMass:            43,
		PropellantMass:     22,
		DragCoefficient:    0.35,
		ReferenceArea:      math.Pi * 0.1 * 0.1,
		BurnTime:           10,
		SeaLevelThrust:     5500,
		NozzleExitArea:     0.0059,
		NozzleExitPressure: 101325,
	}
}

func DefaultEnvironment() Environment {
	return Environment{
		Temperature: 288.15,
		Pressure:    101325,
		Density:     1.225,
		LapseRate:   0.0065,
		GasConstant: 8.31447,
		MolarMass:   0.0289654,
		Gravity:     9.81,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "reference",
		Vehicle:     DefaultVehicle(),
		Environment: DefaultEnvironment(),
		LaunchAngle: DefaultLaunchAngle,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		ThrustModel: ThrustNozzle,
		DragModel:   DragAxis,
	}
}

// InitialMass is the lift-off mass.
func (c *Config) InitialMass() float64 {
	return c.Vehicle.DryMass + c.Vehicle.PropellantMass
}

// MassFlow is the constant propellant mass flow during the burn.
func (c *Config) MassFlow() float64 {
	return c.Vehicle.PropellantMass / c.Vehicle.BurnTime
}

func (c *Config) LaunchAngleRad() float64 {
	return c.LaunchAngle * math.Pi / 180
}

// MaxSteps is the hard bound on integration steps for the configured run.
func (c *Config) MaxSteps() int {
	return int(math.Floor(c.Duration/c.Dt + 1e-9))
}

func (c *Config) Validate() error {
	v, e := c.Vehicle, c.Environment

	positive := []struct {
		name string
		val  float64
	}{
		{"dt", c.Dt},
		{"duration", c.Duration},
		{"vehicle.dry_mass", v.DryMass},
		{"vehicle.burn_time", v.BurnTime},
		{"environment.temperature", e.Temperature},
		{"environment.pressure", e.Pressure},
		{"environment.density", e.Density},
		{"environment.gas_constant", e.GasConstant},
		{"environment.molar_mass", e.MolarMass},
		{"environment.gravity", e.Gravity},
	}
	for _, p := range positive {
		if !finite(p.val) || p.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConfig, p.name, p.val)
		}
	}

	nonNegative := []struct {
		name string
		val  float64
	}{
		{"vehicle.propellant_mass", v.PropellantMass},
		{"vehicle.drag_coefficient", v.DragCoefficient},
		{"vehicle.reference_area", v.ReferenceArea},
		{"vehicle.sea_level_thrust", v.SeaLevelThrust},
		{"vehicle.nozzle_exit_area", v.NozzleExitArea},
		{"vehicle.nozzle_exit_pressure", v.NozzleExitPressure},
		{"environment.lapse_rate", e.LapseRate},
	}
	for _, p := range nonNegative {
		if !finite(p.val) || p.val < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalidConfig, p.name, p.val)
		}
	}

	if c.Dt > c.Duration {
		return fmt.Errorf("%w: dt %g exceeds duration %g", ErrInvalidConfig, c.Dt, c.Duration)
	}
	if steps := c.Duration / c.Dt; steps > MaxStepCount {
		return fmt.Errorf("%w: duration/dt is %g steps, limit %d", ErrInvalidConfig, steps, MaxStepCount)
	}
	if !finite(c.LaunchAngle) || c.LaunchAngle <= 0 || c.LaunchAngle >= 180 {
		return fmt.Errorf("%w: launch_angle must be in (0, 180) deg, got %g", ErrInvalidConfig, c.LaunchAngle)
	}

	if v.SeaLevelThrust > 0 && v.PropellantMass == 0 {
		return fmt.Errorf("%w: sea_level_thrust %g needs propellant_mass > 0", ErrInvalidConfig, v.SeaLevelThrust)
	}

	switch c.ThrustModel {
	case ThrustNozzle, ThrustAccumulate:
	default:
		return fmt.Errorf("%w: unknown thrust_model %q", ErrInvalidConfig, c.ThrustModel)
	}
	switch c.DragModel {
	case DragAxis, DragVector:
	default:
		return fmt.Errorf("%w: unknown drag_model %q", ErrInvalidConfig, c.DragModel)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("name", d.Name)
	v.SetDefault("launch_angle", d.LaunchAngle)
	v.SetDefault("dt", d.Dt)
	v.SetDefault("duration", d.Duration)
	v.SetDefault("thrust_model", d.ThrustModel)
	v.SetDefault("drag_model", d.DragModel)

	v.SetDefault("vehicle.dry_mass", d.Vehicle.DryMass)
	v.SetDefault("vehicle.propellant_mass", d.Vehicle.PropellantMass)
	v.SetDefault("vehicle.drag_coefficient", d.Vehicle.DragCoefficient)
	v.SetDefault("vehicle.reference_area", d.Vehicle.ReferenceArea)
	v.SetDefault("vehicle.burn_time", d.Vehicle.BurnTime)
	v.SetDefault("vehicle.sea_level_thrust", d.Vehicle.SeaLevelThrust)
	v.SetDefault("vehicle.nozzle_exit_area", d.Vehicle.NozzleExitArea)
	v.SetDefault("vehicle.nozzle_exit_pressure", d.Vehicle.NozzleExitPressure)

	v.SetDefault("environment.temperature", d.Environment.Temperature)
	v.SetDefault("environment.pressure", d.Environment.Pressure)
	v.SetDefault("environment.density", d.Environment.Density)
	v.SetDefault("environment.lapse_rate", d.Environment.LapseRate)
	v.SetDefault("environment.gas_constant", d.Environment.GasConstant)
	v.SetDefault("environment.molar_mass", d.Environment.MolarMass)
	v.SetDefault("environment.gravity", d.Environment.Gravity)
}

// Load builds a Config from defaults, an optional file (yaml, json or toml by
// extension) and TRAJSIM_* environment overrides, in increasing priority. A
// .env file in the working directory is read first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
