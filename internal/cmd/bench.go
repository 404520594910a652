package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lrucache/internal/cache"
	"lrucache/internal/config"
)

// zipfSkew shapes the workload: a few hot keys, a long cold tail.
const zipfSkew = 1.1

type benchOptions struct {
	Capacity   int
	Operations int
	Keyspace   int
	Workers    int
	Seed       int64
}

type benchReport struct {
	Operations      int
	Hits            int
	ReferenceHits   int
	ConcurrentStats cache.Stats
	Elapsed         time.Duration
}

func NewBenchCommand(conf *config.Config) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "bench",
		Short:   "Replay a skewed workload and compare hit ratios",
		Example: "lrucache bench --capacity=512 --operations=200000 --keyspace=8192",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := benchOptions{
				Capacity:   conf.CacheCapacity(),
				Operations: conf.BenchOperations(),
				Keyspace:   conf.BenchKeyspace(),
				Workers:    conf.BenchWorkers(),
				Seed:       conf.BenchSeed(),
			}
			report, err := runBench(cmd.Context(), opts)
			if err != nil {
				return err
			}
			report.print(cmd.OutOrStdout())
			return nil
		},
	}

	if err := conf.BindFlags(cmd.Flags(), config.BenchOptions); err != nil {
		return nil, err
	}

	return cmd, nil
}

func (o benchOptions) validate() error {
	switch {
	case o.Operations <= 0:
		return fmt.Errorf("operations must be positive, got %d", o.Operations)
	case o.Keyspace <= 0:
		return fmt.Errorf("keyspace must be positive, got %d", o.Keyspace)
	case o.Workers <= 0:
		return fmt.Errorf("workers must be positive, got %d", o.Workers)
	}
	return nil
}

// trace returns a seeded Zipf-distributed key sequence.
func (o benchOptions) trace() []int {
	rng := rand.New(rand.NewSource(o.Seed))
	zipf := rand.NewZipf(rng, zipfSkew, 1, uint64(o.Keyspace-1))

	keys := make([]int, o.Operations)
	for i := range keys {
		keys[i] = int(zipf.Uint64())
	}
	return keys
}

// runBench replays the trace single-threaded through LRU and the
// reference implementation, then concurrently through a Synced cache.
func runBench(ctx context.Context, opts benchOptions) (benchReport, error) {
	if err := opts.validate(); err != nil {
		return benchReport{}, err
	}
	keys := opts.trace()
	report := benchReport{Operations: len(keys)}

	c, err := cache.New[int, int](opts.Capacity)
	if err != nil {
		return benchReport{}, fmt.Errorf("failed to create cache: %w", err)
	}
	ref, err := lru.New[int, int](opts.Capacity)
	if err != nil {
		return benchReport{}, fmt.Errorf("failed to create reference cache: %w", err)
	}

	for i, k := range keys {
		if _, ok := c.Get(k); ok {
			report.Hits++
		} else {
			c.Set(k, i)
		}
		if _, ok := ref.Get(k); ok {
			report.ReferenceHits++
		} else {
			ref.Add(k, i)
		}
	}
	if report.Hits != report.ReferenceHits {
		return report, fmt.Errorf("hit count diverged from reference: %d != %d", report.Hits, report.ReferenceHits)
	}

	start := time.Now()
	stats, err := runConcurrent(ctx, opts, keys)
	if err != nil {
		return report, err
	}
	report.ConcurrentStats = stats
	report.Elapsed = time.Since(start)

	slog.Debug("bench finished", "operations", report.Operations, "elapsed", report.Elapsed)
	return report, nil
}

// runConcurrent splits the trace across workers sharing one Synced cache.
func runConcurrent(ctx context.Context, opts benchOptions, keys []int) (cache.Stats, error) {
	c, err := cache.NewSynced[int, int](cache.SyncedConfig{Capacity: opts.Capacity})
	if err != nil {
		return cache.Stats{}, fmt.Errorf("failed to create shared cache: %w", err)
	}
	defer c.Close()

	eg, egCtx := errgroup.WithContext(ctx)
	chunk := (len(keys) + opts.Workers - 1) / opts.Workers

	for w := 0; w < opts.Workers; w++ {
		lo := min(w*chunk, len(keys))
		hi := min(lo+chunk, len(keys))
		shard := keys[lo:hi]

		eg.Go(func() error {
			for i, k := range shard {
				if i%1024 == 0 {
					if err := egCtx.Err(); err != nil {
						return err
					}
				}
				_, err := c.GetOrLoad(egCtx, k, func(context.Context) (int, error) {
					return k * 2, nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return cache.Stats{}, err
	}
	return c.Stats(), nil
}

func (r benchReport) print(out io.Writer) {
	ratio := func(hits int) float64 {
		if r.Operations == 0 {
			return 0
		}
		return float64(hits) / float64(r.Operations)
	}

	fmt.Fprintf(out, "operations:          %d\n", r.Operations)
	fmt.Fprintf(out, "lru hit ratio:       %.4f (%d hits)\n", ratio(r.Hits), r.Hits)
	fmt.Fprintf(out, "reference hit ratio: %.4f (%d hits)\n", ratio(r.ReferenceHits), r.ReferenceHits)
	fmt.Fprintf(out, "shared hit ratio:    %.4f (%d evictions)\n", r.ConcurrentStats.HitRatio(), r.ConcurrentStats.Evictions)
	fmt.Fprintf(out, "shared elapsed:      %s\n", r.Elapsed)
}
