// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitset implements the dynamic variant of the engine's
// BitSequence contract: rank1/select1 plus insert/delete/set, backed
// by a growable slice of words.
//
// This started life as a simplified and stripped down version of:
//
//	github.com/bits-and-blooms/bitset
//
// and has been extended with select1 and shifting insert/delete so it
// can serve as the dynamic representation of a graph's L array and as
// the per-level bitmap of a dynamic wavelet tree. All bugs belong to us.
package bitset

import (
	"math/bits"
)

// the wordSize of a bit set
const wordSize = 64

// log2WordSize is lg(wordSize)
const log2WordSize = 6

// A BitSet is a slice of words. This is an internal package
// with a wide open public API.
type BitSet []uint64

// extendSet adds additional words to incorporate new bits if needed.
func (b *BitSet) extendSet(i uint) {
	nsize := wordsNeeded(i)
	if b == nil {
		*b = make([]uint64, nsize)
	} else if len(*b) < nsize {
		newset := make([]uint64, nsize)
		copy(newset, *b)
		*b = newset
	}
}

// bitsCapacity returns the number of possible bits in the current set.
func (b BitSet) bitsCapacity() uint {
	return uint(len(b) * 64)
}

// wordsNeeded calculates the number of words needed for i bits.
func wordsNeeded(i uint) int {
	return int(i+wordSize) >> log2WordSize
}

// bitsIndex calculates the index of i in a `uint64`
func bitsIndex(i uint) uint {
	return i & (wordSize - 1) // (i % 64) but faster
}

// Len returns the number of bits currently addressable (the capacity,
// not the population count).
func (b BitSet) Len() uint {
	return b.bitsCapacity()
}

// Test whether bit i is set.
func (b BitSet) Test(i uint) bool {
	if i >= b.bitsCapacity() {
		return false
	}
	return b[i>>log2WordSize]&(1<<bitsIndex(i)) != 0
}

// Set bit i to 1, the capacity of the bitset is increased accordingly.
func (b *BitSet) Set(i uint) {
	if i >= b.bitsCapacity() {
		b.extendSet(i)
	}
	(*b)[i>>log2WordSize] |= (1 << bitsIndex(i))
}

// Clear bit i to 0.
func (b *BitSet) Clear(i uint) {
	if i >= b.bitsCapacity() {
		return
	}
	(*b)[i>>log2WordSize] &^= (1 << bitsIndex(i))
}

// Put sets bit i to the given value, extending capacity if needed.
func (b *BitSet) Put(i uint, v bool) {
	if v {
		b.Set(i)
	} else {
		b.Clear(i)
	}
}

// Clone this BitSet, returning a new BitSet that has the same bits set.
func (b BitSet) Clone() BitSet {
	c := BitSet(make([]uint64, len(b)))
	copy(c, b)
	return c
}

// Compact shrinks BitSet so that we preserve all set bits, while minimizing
// memory usage. A new slice is allocated to store the new bits.
func (b *BitSet) Compact() {
	idx := len(*b) - 1

	// find last word with at least one bit set.
	for ; idx >= 0; idx-- {
		if (*b)[idx] != 0 {
			newset := make([]uint64, idx+1)
			copy(newset, (*b)[:idx+1])
			*b = newset
			return
		}
	}

	// not found
	*b = nil
}

// NextSet returns the next bit set from the specified index,
// including possibly the current index along with an ok code.
func (b BitSet) NextSet(i uint) (uint, bool) {
	x := int(i >> log2WordSize)
	if x >= len(b) {
		return 0, false
	}
	word := b[x]
	word = word >> bitsIndex(i)
	if word != 0 {
		return i + uint(bits.TrailingZeros64(word)), true
	}
	x++
	if x < 0 {
		return 0, false
	}
	for x < len(b) {
		if b[x] != 0 {
			return uint(x*wordSize + bits.TrailingZeros64(b[x])), true
		}
		x++
	}
	return 0, false
}

// NextSetMany returns many next bit sets from the specified index,
// including possibly the current index and up to cap(buffer).
func (b BitSet) NextSetMany(i uint, buffer []uint) (uint, []uint) {
	myanswer := buffer
	capacity := cap(buffer)
	x := int(i >> log2WordSize)
	if x >= len(b) || capacity == 0 {
		return 0, myanswer[:0]
	}
	word := b[x] >> bitsIndex(i)
	myanswer = myanswer[:capacity]
	size := int(0)
	for word != 0 {
		r := uint(bits.TrailingZeros64(word))
		t := word & ((^word) + 1)
		myanswer[size] = r + i
		size++
		if size == capacity {
			goto End
		}
		word = word ^ t
	}
	x++
	for idx, word := range b[x:] {
		for word != 0 {
			r := uint(bits.TrailingZeros64(word))
			t := word & ((^word) + 1)
			myanswer[size] = r + (uint(x+idx) << 6)
			size++
			if size == capacity {
				goto End
			}
			word = word ^ t
		}
	}
End:
	if size > 0 {
		return myanswer[size-1], myanswer[:size]
	}
	return 0, myanswer[:0]
}

// Count (number of set bits).
// Also known as "popcount" or "population count".
func (b BitSet) Count() int {
	return popcntSlice(b)
}

// Rank1 returns the number of set bits in [0, i] (inclusive, 0-based),
// i.e. the number of set bits up to and including index i.
func (b BitSet) Rank1(index uint) int {
	wordIdx := int((index + 1) >> log2WordSize)

	if wordIdx >= len(b) {
		return popcntSlice(b)
	}

	answer := popcntSlice(b[:wordIdx])

	bitsIdx := bitsIndex(index + 1)
	if bitsIdx == 0 {
		return answer
	}

	return answer + bits.OnesCount64(b[wordIdx]<<(64-bitsIdx))
}

// Rank keeps the teacher's original 0-based-inclusive name as an alias of
// Rank1, for callers ported straight from the popcount-compressed sparse
// array idiom (internal/sparse).
func (b BitSet) Rank(index uint) int { return b.Rank1(index) }

// Rank0 returns the 0-based rank of bit i among the set bits, i.e. the
// slot internal/sparse.Array[T] stores bit i's payload at. Only
// meaningful when Test(i) is true; Rank0(i) == Rank1(i)-1.
func (b BitSet) Rank0(i uint) int { return b.Rank1(i) - 1 }

// Select1 returns the 0-based index of the j-th set bit (1-based count j),
// i.e. the smallest i with Rank1(i) == j. If fewer than j bits are set,
// it returns the bitset's capacity (by convention, "one past the end").
func (b BitSet) Select1(j int) uint {
	if j <= 0 {
		return 0
	}

	total := popcntSlice(b)
	if j > total {
		return b.bitsCapacity()
	}

	// linear scan over words using a running prefix popcount, then
	// a bit-scan within the winning word.
	remaining := j
	for wIdx, word := range b {
		c := bits.OnesCount64(word)
		if remaining <= c {
			// the j-th set bit is in this word
			w := word
			for {
				tz := bits.TrailingZeros64(w)
				remaining--
				if remaining == 0 {
					return uint(wIdx)*wordSize + uint(tz)
				}
				w &= w - 1
			}
		}
		remaining -= c
	}

	return b.bitsCapacity()
}

// Select0 returns the 0-based index of the j-th unset bit (1-based count
// j) within [0, Len()). If fewer than j bits are unset, it returns Len().
// The wavelet tree descends into its "left child" via Select0 the same
// way it uses Select1 for the "right child".
func (b BitSet) Select0(j int) uint {
	if j <= 0 {
		return 0
	}

	cap := b.bitsCapacity()
	total := int(cap) - popcntSlice(b)
	if j > total {
		return cap
	}

	remaining := j
	for wIdx, word := range b {
		w := ^word
		c := bits.OnesCount64(w)
		if remaining <= c {
			for {
				tz := bits.TrailingZeros64(w)
				pos := uint(wIdx)*wordSize + uint(tz)
				if pos >= cap {
					return cap
				}
				remaining--
				if remaining == 0 {
					return pos
				}
				w &= w - 1
			}
		}
		remaining -= c
	}

	return cap
}

// Insert inserts a bit with value v at position i, shifting every bit at
// or after i one place to the right (toward higher indices). This is an
// O(n) operation; see the dynamic BitSequence's documented complexity
// deviation in DESIGN.md.
func (b *BitSet) Insert(i uint, v bool) {
	n := b.bitsCapacity()
	if i > n {
		i = n
	}
	b.extendSet(n) // grow by one conceptual bit

	// shift everything from the top down to i one place up.
	for pos := n; pos > i; pos-- {
		b.Put(pos, b.Test(pos-1))
	}
	b.Put(i, v)
}

// Delete removes the bit at position i, shifting every later bit one
// place to the left (toward lower indices).
func (b *BitSet) Delete(i uint) {
	n := b.bitsCapacity()
	if i >= n {
		return
	}
	for pos := i; pos+1 < n; pos++ {
		b.Put(pos, b.Test(pos+1))
	}
	b.Clear(n - 1)
}

// IntersectionCardinality computes the cardinality of the intersection
func (b BitSet) IntersectionCardinality(c BitSet) int {
	if len(b) <= len(c) {
		return popcntAndSlice(b, c)
	}
	return popcntAndSlice(c, b)
}

// InPlaceIntersection overwrites and computes the intersection of
// base set with the compare set.
func (b *BitSet) InPlaceIntersection(c BitSet) {
	bLen := len(*b)
	cLen := len(c)

	if bLen >= cLen {
		if cLen > 0 {
			_ = (*b)[cLen-1]
			_ = c[cLen-1]
		}

		for i := range cLen {
			(*b)[i] &= c[i]
		}
		for i := cLen; i < bLen; i++ {
			(*b)[i] = 0
		}
		return
	}

	if bLen > 0 {
		_ = (*b)[bLen-1]
		_ = c[bLen-1]
	}

	for i := range bLen {
		(*b)[i] &= c[i]
	}

	newset := make([]uint64, cLen)
	copy(newset, *b)
	*b = newset
}

// InPlaceUnion creates the destructive union of base set with compare set.
func (b *BitSet) InPlaceUnion(c BitSet) {
	bLen := len(*b)
	cLen := len(c)

	if bLen >= cLen {
		if cLen > 0 {
			_ = (*b)[cLen-1]
			_ = c[cLen-1]
		}

		for i := range cLen {
			(*b)[i] |= c[i]
		}
		return
	}

	newset := make([]uint64, cLen)
	copy(newset, *b)
	*b = newset
	_ = (*b)[cLen-1]
	_ = c[cLen-1]

	for i := range cLen {
		(*b)[i] |= c[i]
	}
}

func popcntSlice(s []uint64) int {
	var cnt int
	for _, x := range s {
		cnt += bits.OnesCount64(x)
	}
	return cnt
}

func popcntAndSlice(s, m []uint64) int {
	var cnt int
	for i := range s {
		cnt += bits.OnesCount64(s[i] & m[i])
	}
	return cnt
}
