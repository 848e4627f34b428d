package trajectory

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lia-aerospace/trajsim/internal/config"
)

// Sweep runs one independent integration per launch angle [deg] with at most
// limit runs in flight. Results are in the order of angles. limit <= 0 means
// one run per CPU.
func Sweep(ctx context.Context, base config.Config, angles []float64, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	results := make([]*Result, len(angles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, angle := range angles {
		g.Go(func() error {
			cfg := base
			cfg.LaunchAngle = angle

			in, err := New(cfg)
			if err != nil {
				return err
			}
			res, err := in.Run(gctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
