// Package aco - RNG utilities.
//
// This file centralizes deterministic random generation for the colony.
//
// Goals:
//   - Determinism: same seed ⇒ identical results across platforms and worker counts.
//   - Encapsulation: a single RNG factory; the only time-based source is the
//     explicit fallback in resolveSeed, whose value is reported back to callers.
//   - Performance: streams are created once per run, never inside hot loops.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use antStreams to create one independent stream per ant.
package aco

import (
	"math/rand"
	"time"
)

// resolveSeed returns *seed when set, otherwise a clock-derived seed.
//
// Complexity: O(1).
func resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}

	return time.Now().UnixNano()
}

// rngFromSeed returns a deterministic *rand.Rand seeded verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
// SplitMix64-style finalizer: small input changes spread over all output bits,
// so neighbouring stream ids do not yield correlated generators.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG creates an independent deterministic stream from base and a
// stream identifier. base.Int63() is consumed once so that reusing a stream
// id by mistake still yields distinct children.
//
// Complexity: O(1).
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	return rand.New(rand.NewSource(deriveSeed(base.Int63(), stream)))
}

// antStreams derives one stream per ant from the run seed, in ant order.
// Stream k is owned by ant k for the whole run.
//
// Complexity: O(ants).
func antStreams(seed int64, ants int) []*rand.Rand {
	var (
		base = rngFromSeed(seed)
		out  = make([]*rand.Rand, ants)
		k    int
	)
	for k = 0; k < ants; k++ {
		out[k] = deriveRNG(base, uint64(k))
	}

	return out
}
