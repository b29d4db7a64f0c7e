// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package builder

import "github.com/bossgraph/boss"

// shardSuffixLen computes s ~= ceil(log_sigma(parallelism)), the
// suffix length whose sigma^s enumerated values gives at least
// parallelism shards (spec §4.5 step 1).
func shardSuffixLen(sigma, parallelism int) int {
	if parallelism <= 1 || sigma <= 1 {
		return 0
	}
	s, size := 0, 1
	for size < parallelism {
		size *= sigma
		s++
	}
	return s
}

// shardIndex evaluates the last s symbols of codes as a mixed-radix
// base-sigma number, the shard a (k+1)-mer belongs to. Enumerating
// shards in increasing index order is the same as enumerating their
// suffixes in lexicographic order.
func shardIndex(codes []int, s, sigma int) int {
	if s == 0 {
		return 0
	}
	idx := 0
	for _, c := range codes[len(codes)-s:] {
		idx = idx*sigma + c
	}
	return idx
}

// padded prepends k sentinel symbols (front dummy) and appends one
// trailing sentinel (sink dummy), matching add_sequence's dummy
// padding and the sink-padding variant spec §4.5 names.
func padded(codes []int, k int) []int {
	out := make([]int, 0, k+len(codes)+1)
	for i := 0; i < k; i++ {
		out = append(out, 0)
	}
	out = append(out, codes...)
	out = append(out, 0)
	return out
}

// dnaComplement is A<->T, C<->G, $ and N self-complementary, under
// the boss.DNA alphabet's own code assignment ($=0,A=1,C=2,G=3,T=4,
// N=5). Only boss.DNA is given a concrete complement table; any other
// alphabet's --canonical request degrades to a no-op complement
// (documented in DESIGN.md), since the spec does not define a general
// complement relation for arbitrary alphabets.
var dnaComplement = map[int]int{0: 0, 1: 4, 2: 3, 3: 2, 4: 1, 5: 5}

func complement(alphabet *boss.Alphabet, code int) int {
	if alphabet == boss.DNA {
		if c, ok := dnaComplement[code]; ok {
			return c
		}
	}
	return code
}

// reverseComplement reverses codes and complements each symbol.
func reverseComplement(alphabet *boss.Alphabet, codes []int) []int {
	out := make([]int, len(codes))
	n := len(codes)
	for i, c := range codes {
		out[n-1-i] = complement(alphabet, c)
	}
	return out
}

// sequenceWeight estimates the staging-buffer bytes one sequence's
// emission adds: one (k+1)-mer row of int codes per padded position,
// at 8 bytes per int (the kmerEntry.codes backing array), doubled
// when Canonical also emits the reverse complement. This is what
// Build's worker pool weighs against BuildConfig.MemCapGB.
func sequenceWeight(cfg BuildConfig, seq string) int64 {
	rows := int64(len(seq) + cfg.K + 1)
	weight := rows * int64(cfg.K+1) * 8
	if cfg.Canonical {
		weight *= 2
	}
	return weight
}

// kmerEntry is one deduplicated (k+1)-mer: its encoded symbols in the
// regular alphabet (the choice between c and c+sigma for the label
// happens later, during derivation) and the union of label ids seen
// across every occurrence.
type kmerEntry struct {
	codes  []int
	labels []int
}
