// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitset

import (
	"math/rand/v2"
	"testing"
)

func buildRandom(n int, density float64) (BitSet, []uint) {
	var b BitSet
	var set []uint
	for i := 0; i < n; i++ {
		if rand.Float64() < density {
			b.Set(uint(i))
			set = append(set, uint(i))
		}
	}
	// ensure capacity extends to n even if the tail is all zero.
	b.Set(uint(n))
	b.Clear(uint(n))
	return b, set
}

func TestStaticMatchesDynamic(t *testing.T) {
	dyn, set := buildRandom(2000, 0.3)
	st := NewStatic(dyn)

	if st.Count() != len(set) {
		t.Fatalf("Count() = %d, want %d", st.Count(), len(set))
	}

	for i := uint(0); i < dyn.Len(); i++ {
		if st.Test(i) != dyn.Test(i) {
			t.Fatalf("Test(%d) mismatch", i)
		}
		if st.Rank1(i) != dyn.Rank1(i) {
			t.Fatalf("Rank1(%d) = %d, want %d", i, st.Rank1(i), dyn.Rank1(i))
		}
	}

	for j := 1; j <= len(set); j++ {
		if got, want := st.Select1(j), dyn.Select1(j); got != want {
			t.Fatalf("Select1(%d) = %d, want %d", j, got, want)
		}
	}
}

func TestStaticOutOfRange(t *testing.T) {
	dyn, set := buildRandom(100, 0.2)
	st := NewStatic(dyn)

	if got := st.Select1(0); got != 0 {
		t.Errorf("Select1(0) = %d, want 0", got)
	}
	if got, want := st.Select1(len(set)+1), st.Len(); got != want {
		t.Errorf("Select1(overflow) = %d, want %d", got, want)
	}
	if st.Test(st.Len() + 1000) {
		t.Error("Test past the end must be false")
	}
}

func TestStaticRoundTripToDynamic(t *testing.T) {
	dyn, _ := buildRandom(500, 0.4)
	st := NewStatic(dyn)
	back := st.ToDynamic()

	for i := uint(0); i < dyn.Len(); i++ {
		if back.Test(i) != dyn.Test(i) {
			t.Fatalf("round trip mismatch at %d", i)
		}
	}
}
