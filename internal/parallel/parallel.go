// Package parallel provides the execution backend for fieldkit passes.
package parallel

import (
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/fieldkit/internal/envconfig"
	"github.com/born-ml/fieldkit/internal/field"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of concurrent lanes.
	MinChunkSize int  // Minimum items per lane to avoid overhead.
}

// DefaultConfig returns defaults from the environment and CPU count.
func DefaultConfig() Config {
	n := envconfig.NumThreads()
	return Config{
		Enabled:      n > 1 && !envconfig.Serial(),
		NumWorkers:   n,
		MinChunkSize: max(int(envconfig.MinChunk()), 1),
	}
}

// Sequential returns a config that runs every pass on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// ForEach executes f for every index of seq with optional parallelism.
//
// Indices are copied into chunks of MinChunkSize and each chunk runs on
// its own lane, at most NumWorkers at a time. A sequence shorter than one
// chunk runs on the calling goroutine. f must not retain the Index it
// receives.
func ForEach(seq iter.Seq[field.Index], f func(idx field.Index), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 {
		for idx := range seq {
			f(idx)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	chunkSize := max(cfg.MinChunkSize, 1)

	var (
		cur      *chunk
		launched bool
	)
	for idx := range seq {
		if cur == nil {
			cur = newChunk(len(idx), chunkSize)
		}
		cur.push(idx)
		if cur.count == chunkSize {
			c := cur
			g.Go(func() error {
				c.run(f)
				return nil
			})
			cur = nil
			launched = true
		}
	}

	if cur != nil {
		if launched {
			c := cur
			g.Go(func() error {
				c.run(f)
				return nil
			})
		} else {
			cur.run(f)
		}
	}
	_ = g.Wait()
}

// chunk holds copies of consecutive indices in one flat slice.
type chunk struct {
	rank  int
	count int
	flat  []int
}

func newChunk(rank, capacity int) *chunk {
	return &chunk{rank: rank, flat: make([]int, 0, rank*capacity)}
}

func (c *chunk) push(idx field.Index) {
	c.flat = append(c.flat, idx...)
	c.count++
}

func (c *chunk) run(f func(field.Index)) {
	idx := make(field.Index, c.rank)
	for k := 0; k < c.count; k++ {
		copy(idx, c.flat[k*c.rank:(k+1)*c.rank])
		f(idx)
	}
}
