package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lia-aerospace/trajsim/internal/config"
	"github.com/lia-aerospace/trajsim/internal/metrics"
	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

var ErrNoCandidates = errors.New("no candidate produced a trajectory")

// ObjectiveNames lists the metric names a search can maximise.
func ObjectiveNames() []string {
	names := make([]string, 0, 6)
	for _, m := range metrics.Standard() {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

func objectiveIndex(ms []metrics.Metric, name string) (int, error) {
	for i, m := range ms {
		if m.Name() == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown objective %q (available: %s)", name, strings.Join(ObjectiveNames(), ", "))
}

var setters = map[string]func(*config.Config, float64){
	"launch_angle":     func(c *config.Config, v float64) { c.LaunchAngle = v },
	"dry_mass":         func(c *config.Config, v float64) { c.Vehicle.DryMass = v },
	"propellant_mass":  func(c *config.Config, v float64) { c.Vehicle.PropellantMass = v },
	"burn_time":        func(c *config.Config, v float64) { c.Vehicle.BurnTime = v },
	"sea_level_thrust": func(c *config.Config, v float64) { c.Vehicle.SeaLevelThrust = v },
	"drag_coefficient": func(c *config.Config, v float64) { c.Vehicle.DragCoefficient = v },
}

func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for n := range setters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseRange expands "start:stop:step" (inclusive) or a single value.
func ParseRange(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", s, err)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 1:
		return vals, nil
	case 3:
		start, stop, step := vals[0], vals[1], vals[2]
		if step <= 0 || stop < start {
			return nil, fmt.Errorf("range %q: need start <= stop and step > 0", s)
		}
		n := int(math.Floor((stop-start)/step+1e-9)) + 1
		out := make([]float64, n)
		for i := range out {
			out[i] = start + float64(i)*step
		}
		return out, nil
	default:
		return nil, fmt.Errorf("range %q: expected value or start:stop:step", s)
	}
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("grid search: %d params for %d ranges", len(params), len(ranges))
	}
	for i, p := range params {
		if _, ok := setters[p]; !ok {
			return nil, fmt.Errorf("unknown parameter %q (available: %s)", p, strings.Join(ParamNames(), ", "))
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("parameter %q has an empty range", p)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

type Best struct {
	Params    map[string]float64
	Value     float64
	Metrics   map[string]float64
	Result    *trajectory.Result
	Evaluated int
	Skipped   int // candidates rejected by validation or aborted mid-run
}

// Search runs every grid point sequentially and keeps the candidate with the
// highest value of the named metric.
func (g *GridSearch) Search(ctx context.Context, base config.Config, objective string) (*Best, error) {
	e := &evaluator{ms: metrics.Standard()}
	idx, err := objectiveIndex(e.ms, objective)
	if err != nil {
		return nil, err
	}
	e.objective = e.ms[idx]

	best := &Best{Value: math.Inf(-1)}
	if err := g.searchRecursive(ctx, 0, base, make(map[string]float64), e, best); err != nil {
		return nil, err
	}
	if best.Result == nil {
		return best, ErrNoCandidates
	}
	return best, nil
}

// evaluator reuses one metric set across candidates.
type evaluator struct {
	ms        []metrics.Metric
	objective metrics.Metric
}

func (e *evaluator) run(ctx context.Context, cfg config.Config) (*trajectory.Result, error) {
	in, err := trajectory.New(cfg)
	if err != nil {
		return nil, err
	}
	metrics.ResetAll(e.ms)
	for _, m := range e.ms {
		in.AddObserver(m)
	}
	return in.Run(ctx)
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	cfg config.Config,
	current map[string]float64,
	e *evaluator,
	best *Best,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		res, err := e.run(ctx, cfg)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			best.Skipped++
			return nil
		}

		best.Evaluated++
		if val := e.objective.Value(); val > best.Value {
			best.Value = val
			best.Result = res
			best.Metrics = metrics.Values(e.ms)
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	name := g.paramNames[depth]
	set := setters[name]
	for _, val := range g.ranges[depth] {
		next := cfg
		set(&next, val)
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, next, current, e, best); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}
