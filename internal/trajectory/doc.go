// Package trajectory integrates the planar flight of a single-stage launch
// vehicle with a fixed time step.
//
// A run is a Burn -> Coast -> Impacted state machine. Each Step derives a new
// VehicleState from the previous one using a forward Euler scheme with a
// second-order position term, a single-lapse-rate ambient model and per-axis
// drag. Runs end at the first coasting sample at or below ground level, or
// after Duration/Dt steps.
//
// A single Run is sequential. Sweep parallelizes independent runs.
package trajectory
