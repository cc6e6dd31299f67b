// Command rangecache-bench times cached against uncached execution of a
// synthetic range-sum/update workload and reports the speedup.
//
// Two copies of the same random array process the same operation
// sequence: one through rangecache.Cache, one by direct recomputation.
// With -verify the two result streams are cross-checked instead of timed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/rangekit/rangecache"
	"github.com/rangekit/rangecache/workload"
)

func main() {
	var (
		n           = flag.Int("n", 100_000, "array size")
		q           = flag.Int("q", 50_000, "number of queries")
		seed        = flag.Int64("seed", 42, "seed for reproducibility")
		capacity    = flag.Int("capacity", 1000, "LRU cache capacity")
		maxval      = flag.Int64("maxval", 100, "max value of array elements")
		verify      = flag.Bool("verify", false, "cross-check cached results against uncached instead of timing")
		metricsAddr = flag.String("metrics", "", "serve Prometheus metrics on this address (e.g. :9090) and wait after the run")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *n, *q, *seed, *capacity, *maxval, *verify, *metricsAddr); err != nil {
		logger.Error("bench failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, n, q int, seed int64, capacity int, maxval int64, verify bool, metricsAddr string) error {
	rng := rand.New(rand.NewSource(seed))
	array := workload.Array(rng, n, maxval)
	ops := workload.Generate(rng, workload.Config{N: n, NumOps: q, MaxValue: maxval})
	logger.Info("workload ready", "n", n, "ops", len(ops), "capacity", capacity, "seed", seed)

	var cacheOpts []rangecache.Option
	if metricsAddr != "" {
		collector := rangecache.NewPrometheusCollector("rangecache", nil)
		cacheOpts = append(cacheOpts, rangecache.WithMetrics(collector))

		go func() {
			logger.Info("serving metrics", "addr", metricsAddr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	arr1 := append([]int64(nil), array...) // uncached run
	arr2 := append([]int64(nil), array...) // cached run

	cache, err := rangecache.New(arr2, capacity, cacheOpts...)
	if err != nil {
		return err
	}

	if verify {
		if err := runVerify(logger, arr1, cache, ops); err != nil {
			return err
		}
		fmt.Printf("verify: %d operations, cached and uncached results identical\n", len(ops))
	} else {
		noCacheTime := timeRun(func() { runUncached(arr1, ops) })

		var runErr error
		withCacheTime := timeRun(func() { _, runErr = runCached(cache, ops) })
		if runErr != nil {
			return runErr
		}

		speedup := float64(noCacheTime) / float64(withCacheTime)
		fmt.Printf("Without cache: %8.3fs\n", noCacheTime.Seconds())
		fmt.Printf("LRU cache:     %8.3fs  (speedup x%.1f)\n", withCacheTime.Seconds(), speedup)
	}

	if metricsAddr != "" {
		logger.Info("run complete, waiting for scrape (ctrl-c to exit)")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
	}
	return nil
}

func timeRun(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

func runUncached(array []int64, ops []workload.Op) []int64 {
	sums := make([]int64, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case workload.Range:
			sums = append(sums, workload.Sum(array, op.Left, op.Right))
		case workload.Update:
			array[op.Index] = op.Value
		}
	}
	return sums
}

func runCached(cache *rangecache.Cache, ops []workload.Op) ([]int64, error) {
	sums := make([]int64, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case workload.Range:
			sum, err := cache.RangeSum(op.Left, op.Right)
			if err != nil {
				return nil, err
			}
			sums = append(sums, sum)
		case workload.Update:
			if err := cache.Update(op.Index, op.Value); err != nil {
				return nil, err
			}
		}
	}
	return sums, nil
}

// runVerify executes both variants concurrently on their own array
// copies and compares the produced sums position by position.
func runVerify(logger *slog.Logger, array []int64, cache *rangecache.Cache, ops []workload.Op) error {
	var uncachedSums, cachedSums []int64

	var g errgroup.Group
	g.Go(func() error {
		uncachedSums = runUncached(array, ops)
		return nil
	})
	g.Go(func() error {
		var err error
		cachedSums, err = runCached(cache, ops)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if len(uncachedSums) != len(cachedSums) {
		return fmt.Errorf("result count mismatch: uncached %d, cached %d", len(uncachedSums), len(cachedSums))
	}
	for i := range uncachedSums {
		if uncachedSums[i] != cachedSums[i] {
			return fmt.Errorf("result %d mismatch: uncached %d, cached %d", i, uncachedSums[i], cachedSums[i])
		}
	}
	logger.Debug("verified", "results", len(cachedSums))
	return nil
}
