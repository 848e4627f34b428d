package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"vertical": {
		Name: "vertical", Vehicle: DefaultVehicle(), Environment: DefaultEnvironment(),
		LaunchAngle: 90, Dt: DefaultDt, Duration: DefaultDuration,
		ThrustModel: ThrustNozzle, DragModel: DragAxis,
	},
	"lofted": {
		Name: "lofted", Vehicle: DefaultVehicle(), Environment: DefaultEnvironment(),
		LaunchAngle: 80, Dt: DefaultDt, Duration: DefaultDuration,
		ThrustModel: ThrustNozzle, DragModel: DragAxis,
	},
	"heavy": {
		Name: "heavy", Vehicle: heavyVehicle(), Environment: DefaultEnvironment(),
		LaunchAngle: DefaultLaunchAngle, Dt: DefaultDt, Duration: DefaultDuration,
		ThrustModel: ThrustNozzle, DragModel: DragAxis,
	},
	"vacuum-nozzle": {
		Name: "vacuum-nozzle", Vehicle: vacuumNozzleVehicle(), Environment: DefaultEnvironment(),
		LaunchAngle: DefaultLaunchAngle, Dt: DefaultDt, Duration: DefaultDuration,
		ThrustModel: ThrustNozzle, DragModel: DragAxis,
	},
}

func heavyVehicle() Vehicle {
	v := DefaultVehicle()
	v.DryMass = 60
	return v
}

// vacuumNozzleVehicle is over-expanded at sea level and gains thrust with
// altitude.
func vacuumNozzleVehicle() Vehicle {
	v := DefaultVehicle()
	v.NozzleExitPressure = 50000
	v.NozzleExitArea = 0.0059
	return v
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
