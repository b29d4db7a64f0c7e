// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package builder implements the suffix-sharded parallel bulk
// construction pipeline (spec §4.5 BulkBuilder): partition input
// sequences' (k+1)-mers by a shared suffix, sort and deduplicate each
// shard with label-multiset union, derive that shard's W/L/F in one
// pass, then stack shards into the finished graph.
package builder

import (
	"math"
	"runtime"
)

// BuildConfig mirrors the CLI surface's `build -k K [--canonical]
// [-p P] [--mem-cap-gb G]` flags (spec §6).
type BuildConfig struct {
	// K is the node length (k-mer size).
	K int

	// Canonical, when true, also feeds each input sequence's reverse
	// complement into the same build pass, so edges from both DNA
	// strands are represented.
	Canonical bool

	// Parallelism is the number of suffix shards' worth of
	// concurrency to use; <= 0 defaults to runtime.NumCPU().
	Parallelism int

	// MemCapGB is the soft cap on staging-vector memory; 0 (or
	// negative) disables the cap. Build enforces it as a semaphore
	// bounding how many sequences' (k+1)-mer rows may be staged in
	// shardBufs at once, rather than an out-of-memory failure (spec
	// §5).
	MemCapGB float64
}

// resolveParallelism fills in Parallelism's default.
func (c BuildConfig) resolveParallelism() int {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	return runtime.NumCPU()
}

// memCapWeight converts MemCapGB into a semaphore.Weighted capacity
// in bytes; <=0 means unbounded (a cap no real corpus's per-sequence
// weight could reach, rather than a literal math.MaxInt64 that would
// overflow once added to an in-flight weight).
func (c BuildConfig) memCapWeight() int64 {
	if c.MemCapGB <= 0 {
		return math.MaxInt64 / 2
	}
	return int64(c.MemCapGB * float64(1<<30))
}
