package equation

import (
	"context"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ProcessAll processes each infix expression concurrently and returns the
// equations in input order.
func ProcessAll(ctx context.Context, infixes []string) ([]*Equation, error) {
	equations := make([]*Equation, len(infixes))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, infix := range infixes {
		i := i
		infix := infix
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			equations[i] = Process(infix)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return equations, nil
}

// Invalid returns the equations that failed validation.
func Invalid(equations []*Equation) []*Equation {
	return lo.Filter(equations, func(eq *Equation, _ int) bool {
		return !eq.Valid
	})
}
