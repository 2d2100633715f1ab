package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"
)

// ErrLoadTimeout is recorded for a plugin whose loader did not return within
// the per-plugin timeout.
var ErrLoadTimeout = errors.New("plugin load timed out")

// loaded is the outcome of loading one Entry.
type loaded struct {
	entry   Entry
	variant manifest.Variant
	err     error
}

// loadAll loads entries concurrently. Each worker writes only its own slot of
// the result slice. The returned error is non-nil only when ctx is done;
// individual load failures are reported through loaded.err.
func loadAll(ctx context.Context, entries []Entry, opts Options) ([]loaded, error) {
	results := make([]loaded, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())

	timeout := opts.loadTimeout()
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := loadOne(gctx, e, timeout)
			results[i] = loaded{entry: e, variant: v, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// loadOne runs e.Load under a timeout and converts a panicking loader into
// an error. A loader that never returns leaks its goroutine.
func loadOne(ctx context.Context, e Entry, timeout time.Duration) (manifest.Variant, error) {
	if e.Load == nil {
		return nil, fmt.Errorf("no loader for %s", e.Path)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   manifest.Variant
		err error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("loader panicked: %v", r)}
			}
		}()
		v, err := e.Load()
		done <- result{v: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err == nil && r.v == nil {
			return nil, fmt.Errorf("loader for %s returned no manifest", e.Path)
		}
		return r.v, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrLoadTimeout, timeout)
		}
		return nil, ctx.Err()
	}
}
