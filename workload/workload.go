// Package workload generates range-sum/update operation sequences for
// benchmarking and equivalence testing.
//
// The generated traffic is skewed the way real query logs are: most
// queries hit a small pool of "hot" ranges, a small fraction are point
// updates, and the rest are uniformly random ranges.
package workload

import (
	"math/rand"
)

// Kind tags an operation.
type Kind uint8

const (
	// Range is a range-sum query over [Left, Right].
	Range Kind = iota
	// Update is a point write of Value at Index.
	Update
)

// Op is a single tagged operation.
type Op struct {
	Kind  Kind
	Left  int   // Range only
	Right int   // Range only
	Index int   // Update only
	Value int64 // Update only
}

// Config controls the shape of a generated sequence.
type Config struct {
	N        int     // backing array length
	NumOps   int     // number of operations to generate
	HotPool  int     // number of hot ranges, default 30
	PHot     float64 // probability a query draws from the hot pool, default 0.95
	PUpdate  float64 // probability an operation is an update, default 0.03
	MaxValue int64   // update values are drawn from [1, MaxValue], default 100
}

func (c Config) withDefaults() Config {
	if c.HotPool == 0 {
		c.HotPool = 30
	}
	if c.PHot == 0 {
		c.PHot = 0.95
	}
	if c.PUpdate == 0 {
		c.PUpdate = 0.03
	}
	if c.MaxValue == 0 {
		c.MaxValue = 100
	}
	return c
}

// Array builds a backing array of length n with values drawn uniformly
// from [1, maxValue].
func Array(rng *rand.Rand, n int, maxValue int64) []int64 {
	array := make([]int64, n)
	for i := range array {
		array[i] = 1 + rng.Int63n(maxValue)
	}
	return array
}

// Generate builds an operation sequence per cfg. The same rng seed
// yields the same sequence.
func Generate(rng *rand.Rand, cfg Config) []Op {
	cfg = cfg.withDefaults()

	hot := make([][2]int, cfg.HotPool)
	for i := range hot {
		hot[i] = [2]int{rng.Intn(cfg.N/2 + 1), cfg.N/2 + rng.Intn(cfg.N-cfg.N/2)}
	}

	ops := make([]Op, 0, cfg.NumOps)
	for i := 0; i < cfg.NumOps; i++ {
		if rng.Float64() < cfg.PUpdate {
			ops = append(ops, Op{
				Kind:  Update,
				Index: rng.Intn(cfg.N),
				Value: 1 + rng.Int63n(cfg.MaxValue),
			})
			continue
		}

		var left, right int
		if rng.Float64() < cfg.PHot {
			r := hot[rng.Intn(len(hot))]
			left, right = r[0], r[1]
		} else {
			left = rng.Intn(cfg.N)
			right = left + rng.Intn(cfg.N-left)
		}
		ops = append(ops, Op{Kind: Range, Left: left, Right: right})
	}
	return ops
}

// Sum is the uncached reference: the sum of array over [left, right]
// inclusive.
func Sum(array []int64, left, right int) int64 {
	var sum int64
	for _, v := range array[left : right+1] {
		sum += v
	}
	return sum
}
