package bridge

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"hostbridge/internal/vfs"
)

// CompileAll runs independent requests concurrently, each with its own
// host group. provider must tolerate concurrent reads (vfs.MemProvider does).
// Outcomes keep the order of reqs; the first fatal error cancels the rest.
func CompileAll(ctx context.Context, provider vfs.Provider, reqs []Request, opts Options) ([]Outcome, error) {
	outs := make([]Outcome, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := Compile(gctx, provider, req, opts)
			if err != nil {
				return fmt.Errorf("compile %s: %w", req.InputPath, err)
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}
