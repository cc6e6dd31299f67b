package rangecache

import (
	"math/rand"
	"testing"

	"github.com/rangekit/rangecache/workload"
)

const (
	benchmarkArrayLen = 100_000
	benchmarkCapacity = 1024
)

func benchmarkCache(b *testing.B) *Cache {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	cache, err := New(workload.Array(rng, benchmarkArrayLen, 100), benchmarkCapacity)
	if err != nil {
		b.Fatalf("err: %v", err)
	}
	return cache
}

// BenchmarkRangeSum_Hit measures the cost of a memoized query.
// This represents the most common and performance-critical path.
func BenchmarkRangeSum_Hit(b *testing.B) {
	cache := benchmarkCache(b)

	// Pre-fill the store to ensure all queries are hits.
	for i := 0; i < benchmarkCapacity; i++ {
		if _, err := cache.RangeSum(i, i+1000); err != nil {
			b.Fatalf("err: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		left := i % benchmarkCapacity
		if _, err := cache.RangeSum(left, left+1000); err != nil {
			b.Fatalf("err: %v", err)
		}
	}
}

// BenchmarkRangeSum_Miss measures the cost of computing and memoizing
// a sum when every query is distinct.
func BenchmarkRangeSum_Miss(b *testing.B) {
	cache := benchmarkCache(b)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		left := i % (benchmarkArrayLen - 1000)
		cache.Purge()
		if _, err := cache.RangeSum(left, left+1000); err != nil {
			b.Fatalf("err: %v", err)
		}
	}
}

// BenchmarkUpdate measures a point write plus its invalidation sweep
// over a full store.
func BenchmarkUpdate(b *testing.B) {
	cache := benchmarkCache(b)

	for i := 0; i < benchmarkCapacity; i++ {
		if _, err := cache.RangeSum(i, i+1000); err != nil {
			b.Fatalf("err: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		// write past every cached range so the sweep scans but removes nothing
		if err := cache.Update(benchmarkArrayLen-1, int64(i)); err != nil {
			b.Fatalf("err: %v", err)
		}
	}
}

// BenchmarkWorkload runs the mixed hot-range workload end to end.
func BenchmarkWorkload(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	array := workload.Array(rng, benchmarkArrayLen, 100)
	ops := workload.Generate(rng, workload.Config{N: benchmarkArrayLen, NumOps: 10_000})

	cache, err := New(array, benchmarkCapacity)
	if err != nil {
		b.Fatalf("err: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		op := ops[i%len(ops)]
		switch op.Kind {
		case workload.Range:
			if _, err := cache.RangeSum(op.Left, op.Right); err != nil {
				b.Fatalf("err: %v", err)
			}
		case workload.Update:
			if err := cache.Update(op.Index, op.Value); err != nil {
				b.Fatalf("err: %v", err)
			}
		}
	}
}
