package gen

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"reflect-registry/internal/plan"
)

// ErrPlan is returned by GenerateAll when a plan has error diagnostics.
var ErrPlan = errors.New("plan has errors")

// Result is the outcome for one config.
type Result struct {
	// Config is the config path.
	Config string
	Plan   *plan.Plan
	// File is nil when planning failed.
	File *GeneratedFile
	Err  error
}

// GenerateAll plans and generates every config concurrently, at most limit at
// a time (no limit when limit <= 0). Results keep the order of configs. The
// returned error joins the per-config errors.
func GenerateAll(ctx context.Context, g *Generator, configs []string, limit int) ([]Result, error) {
	results := make([]Result, len(configs))

	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for i, path := range configs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Config: path, Err: err}
				return nil
			}

			results[i] = generateOne(g, path)

			return nil
		})
	}

	_ = eg.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Config, r.Err))
		}
	}

	return results, errors.Join(errs...)
}

func generateOne(g *Generator, path string) Result {
	p, err := plan.FromConfigFile(path)
	if err != nil {
		return Result{Config: path, Err: err}
	}

	return generatePlan(g, path, p)
}

// generatePlan sets File only when generation succeeded, so a file that
// failed to format is never written.
func generatePlan(g *Generator, path string, p *plan.Plan) Result {
	res := Result{Config: path, Plan: p}

	if p.Diagnostics.HasErrors() {
		res.Err = fmt.Errorf("%w: %w", ErrPlan, p.Diagnostics.Error())
		return res
	}

	file, err := g.Generate(p)
	if err != nil {
		res.Err = err
		return res
	}

	res.File = file

	return res
}
