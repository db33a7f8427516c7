package colortrack

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// UnitFunc processes one chunk. Implementations open their own decoder.
type UnitFunc func(ctx context.Context, chunk Chunk) ([]SampledColor, error)

// Executor runs one unit per chunk with bounded concurrency and returns the
// union of their results in no particular order. If any unit fails the
// executor returns that error and no results.
type Executor interface {
	Execute(ctx context.Context, chunks []Chunk, unit UnitFunc) ([]SampledColor, error)
}

// Executor kinds accepted by NewExecutor.
const (
	ExecutorPool     = "pool"
	ExecutorForkJoin = "forkjoin"
)

// NewExecutor returns the executor registered under kind.
func NewExecutor(kind string, workers int) (Executor, error) {
	switch kind {
	case ExecutorPool, "":
		return &PoolExecutor{Workers: workers}, nil
	case ExecutorForkJoin:
		return &ForkJoinExecutor{Workers: workers}, nil
	default:
		return nil, fmt.Errorf("%w: unknown executor %q (valid: %s, %s)", ErrConfig, kind, ExecutorPool, ExecutorForkJoin)
	}
}

func workerCount(n, chunks int) int {
	if n <= 0 {
		n = DefaultWorkers()
	}
	return max(1, min(n, chunks))
}

type chunkResult struct {
	chunk Chunk
	pairs []SampledColor
	err   error
}

// PoolExecutor feeds chunks to a fixed set of goroutines over a channel and
// merges their results through a single collector channel. The first failure
// cancels the units still running.
type PoolExecutor struct {
	Workers int
}

func (e *PoolExecutor) Execute(ctx context.Context, chunks []Chunk, unit UnitFunc) ([]SampledColor, error) {
	if len(chunks) == 0 {
		return nil, ctx.Err()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan Chunk)
	results := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for w := 0; w < workerCount(e.Workers, len(chunks)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				pairs, err := unit(ctx, c)
				results <- chunkResult{chunk: c, pairs: pairs, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, c := range chunks {
			select {
			case jobs <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		out      []SampledColor
		firstErr error
		done     int
	)
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		if firstErr == nil {
			out = append(out, r.pairs...)
			done++
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	// A cancelled parent stops dispatch without any unit reporting an error.
	if done != len(chunks) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("colortrack: %d of %d chunks completed", done, len(chunks))
	}
	return out, nil
}

// ForkJoinExecutor forks one goroutine per chunk, limited to Workers running
// at once, and joins their per-chunk results after all have returned.
type ForkJoinExecutor struct {
	Workers int
}

func (e *ForkJoinExecutor) Execute(ctx context.Context, chunks []Chunk, unit UnitFunc) ([]SampledColor, error) {
	if len(chunks) == 0 {
		return nil, ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(e.Workers, len(chunks)))

	parts := make([][]SampledColor, len(chunks))
	for i, c := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pairs, err := unit(gctx, c)
			if err != nil {
				return err
			}
			parts[i] = pairs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]SampledColor, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}
