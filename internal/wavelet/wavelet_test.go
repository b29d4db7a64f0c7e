// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wavelet

import (
	"math/rand/v2"
	"testing"
)

func randomSymbols(n, sigma int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rand.IntN(sigma)
	}
	return out
}

func TestDynamicGetRankSelect(t *testing.T) {
	const sigma = 12
	symbols := randomSymbols(500, sigma)

	d := NewDynamic(sigma)
	for i, c := range symbols {
		d.Insert(c, i)
	}

	if d.Len() != len(symbols) {
		t.Fatalf("Len() = %d, want %d", d.Len(), len(symbols))
	}

	counts := make([]int, sigma)
	for i, c := range symbols {
		if got := d.Get(i); got != c {
			t.Fatalf("Get(%d) = %d, want %d", i, got, c)
		}
		counts[c]++
		if got := d.Rank(c, i); got != counts[c] {
			t.Fatalf("Rank(%d,%d) = %d, want %d", c, i, got, counts[c])
		}
	}

	occur := make(map[int][]int)
	for i, c := range symbols {
		occur[c] = append(occur[c], i)
	}
	for c, positions := range occur {
		for j, pos := range positions {
			if got := d.Select(c, j+1); got != pos {
				t.Fatalf("Select(%d,%d) = %d, want %d", c, j+1, got, pos)
			}
		}
	}
}

func TestDynamicInsertDelete(t *testing.T) {
	const sigma = 6
	d := NewDynamic(sigma)
	symbols := []int{1, 3, 2, 5, 0, 4, 3, 1}
	for i, c := range symbols {
		d.Insert(c, i)
	}

	d.Delete(3) // remove the 5
	symbols = append(symbols[:3], symbols[4:]...)

	for i, c := range symbols {
		if got := d.Get(i); got != c {
			t.Fatalf("after delete, Get(%d) = %d, want %d", i, got, c)
		}
	}

	d.Set(0, 5)
	symbols[0] = 5
	for i, c := range symbols {
		if got := d.Get(i); got != c {
			t.Fatalf("after set, Get(%d) = %d, want %d", i, got, c)
		}
	}
}

func TestStaticMatchesDynamic(t *testing.T) {
	const sigma = 9
	symbols := randomSymbols(300, sigma)

	d := NewDynamic(sigma)
	for i, c := range symbols {
		d.Insert(c, i)
	}
	st := BuildStatic(symbols, sigma)

	for i := range symbols {
		if st.Get(i) != d.Get(i) {
			t.Fatalf("Get(%d) mismatch", i)
		}
		for c := 0; c < sigma; c++ {
			if st.Rank(c, i) != d.Rank(c, i) {
				t.Fatalf("Rank(%d,%d) mismatch: static=%d dynamic=%d", c, i, st.Rank(c, i), d.Rank(c, i))
			}
		}
	}
}

func TestSmallMatchesStatic(t *testing.T) {
	const sigma = 9
	symbols := randomSymbols(800, sigma)

	st := BuildStatic(symbols, sigma)
	sm := BuildSmall(symbols, sigma)

	for i := range symbols {
		if sm.Get(i) != st.Get(i) {
			t.Fatalf("Get(%d) mismatch", i)
		}
	}
	for c := 0; c < sigma; c++ {
		count := 0
		for _, s := range symbols {
			if s == c {
				count++
			}
		}
		for j := 1; j <= count; j++ {
			if sm.Select(c, j) != st.Select(c, j) {
				t.Fatalf("Select(%d,%d) mismatch: small=%d static=%d", c, j, sm.Select(c, j), st.Select(c, j))
			}
		}
	}
}

func TestSuccPred(t *testing.T) {
	const sigma = 5
	symbols := []int{0, 1, 2, 1, 3, 1, 4, 2, 0}
	d := NewDynamic(sigma)
	for i, c := range symbols {
		d.Insert(c, i)
	}

	if got := d.Succ(0, 1); got != 1 {
		t.Errorf("Succ(0,1) = %d, want 1", got)
	}
	if got := d.Succ(2, 1); got != 3 {
		t.Errorf("Succ(2,1) = %d, want 3", got)
	}
	if got := d.Succ(7, 1); got != -1 {
		t.Errorf("Succ(7,1) = %d, want -1", got)
	}
	if got := d.Pred(8, 1); got != 5 {
		t.Errorf("Pred(8,1) = %d, want 5", got)
	}
	if got := d.Pred(0, 1); got != -1 {
		t.Errorf("Pred(0,1) = %d, want -1", got)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	const sigma = 20
	bits := BitsForAlphabet(sigma)
	symbols := randomSymbols(200, sigma)

	packed := PackSymbols(symbols, bits)
	back := UnpackSymbols(packed, len(symbols), bits)

	for i := range symbols {
		if back[i] != symbols[i] {
			t.Fatalf("round trip mismatch at %d: got %d, want %d", i, back[i], symbols[i])
		}
	}
}
