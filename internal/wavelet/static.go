// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wavelet

import "github.com/bossgraph/boss/internal/bitset"

// snode is one node of the immutable Static wavelet tree. Built once
// from a finished symbol sequence; no insert/delete/set.
type snode struct {
	lo, hi int
	bits   *bitset.Static
	left   *snode
	right  *snode
}

func (n *snode) isLeaf() bool { return n.hi-n.lo <= 1 }
func (n *snode) mid() int     { return (n.lo + n.hi) / 2 }

// Static is the immutable WaveletString variant: O(log sigma) get,
// O(log sigma) rank (each level is an O(1)-rank Static BitSequence),
// O(log sigma) select, minimum space, built in a single top-to-bottom
// pass (spec's "build-from-packed-bits" operation).
type Static struct {
	root  *snode
	sigma int
	n     int
}

// BuildStatic constructs a Static wavelet tree from a slice of symbols
// in [0, sigma) in a single recursive pass: each level partitions its
// input stably by one comparison against the node's alphabet midpoint,
// exactly the construction spec.md §4.2 calls for, generalized from
// "packed bits" to a plain symbol slice (the packing itself is the
// caller's concern -- see internal/wavelet/build.go).
func BuildStatic(symbols []int, sigma int) *Static {
	return &Static{root: buildSnode(symbols, 0, sigma), sigma: sigma, n: len(symbols)}
}

func buildSnode(symbols []int, lo, hi int) *snode {
	n := &snode{lo: lo, hi: hi}
	if n.isLeaf() {
		return n
	}
	mid := n.mid()

	var dyn bitset.BitSet
	left := make([]int, 0, len(symbols))
	right := make([]int, 0, len(symbols))
	for i, c := range symbols {
		if c >= mid {
			dyn.Set(uint(i))
			right = append(right, c)
		} else {
			left = append(left, c)
		}
	}
	// extend to len(symbols) bits even if the tail is all zero/unset.
	if len(symbols) > 0 {
		dyn.Put(uint(len(symbols)-1), dyn.Test(uint(len(symbols)-1)))
	}

	n.bits = bitset.NewStatic(dyn)
	n.left = buildSnode(left, lo, mid)
	n.right = buildSnode(right, mid, hi)
	return n
}

// Len reports the number of symbols stored.
func (s *Static) Len() int { return s.n }

// Sigma reports the alphabet size the tree was built for.
func (s *Static) Sigma() int { return s.sigma }

// Get returns the symbol at 0-based position i.
func (s *Static) Get(i int) int {
	node := s.root
	for !node.isLeaf() {
		if node.bits.Test(uint(i)) {
			i = node.bits.Rank1(uint(i)) - 1
			node = node.right
		} else {
			i = i - node.bits.Rank1(uint(i))
			node = node.left
		}
	}
	return node.lo
}

// Rank returns the number of occurrences of symbol c in positions
// [0,i] (0-based, inclusive).
func (s *Static) Rank(c, i int) int {
	if i < 0 || c < 0 || c >= s.sigma {
		return 0
	}
	p := i + 1
	node := s.root
	for !node.isLeaf() {
		if c < node.mid() {
			p = p - staticCountOnes(node.bits, p)
			node = node.left
		} else {
			p = staticCountOnes(node.bits, p)
			node = node.right
		}
	}
	return p
}

func staticCountOnes(b *bitset.Static, p int) int {
	if p <= 0 {
		return 0
	}
	return b.Rank1(uint(p - 1))
}

// Select returns the 0-based position of the j-th occurrence (1-based
// count j) of symbol c, or Len() if fewer than j occurrences exist.
func (s *Static) Select(c, j int) int {
	if j <= 0 || c < 0 || c >= s.sigma {
		return s.n
	}

	var ancestors []*snode
	var wentRight []bool
	node := s.root
	for !node.isLeaf() {
		right := c >= node.mid()
		ancestors = append(ancestors, node)
		wentRight = append(wentRight, right)
		if right {
			node = node.right
		} else {
			node = node.left
		}
	}

	p := j
	for k := len(ancestors) - 1; k >= 0; k-- {
		nd := ancestors[k]
		var pos uint
		if wentRight[k] {
			pos = nd.bits.Select1(p)
		} else {
			pos = nd.bits.Select0(p)
		}
		if pos >= nd.bits.Len() {
			return s.n
		}
		p = int(pos) + 1
	}
	if p > s.n {
		return s.n
	}
	return p - 1
}

// staticScanLimit is larger than the dynamic variant's: Static's Rank1
// is O(1) and its words are contiguous, so a longer linear scan still
// beats the binary-search Select1 fallback more often in practice.
const staticScanLimit = 1000

// Succ finds the smallest position >= i holding symbol c, or -1 if none.
func (s *Static) Succ(i, c int) int {
	if i < 0 {
		i = 0
	}
	limit := i + staticScanLimit
	if limit > s.n {
		limit = s.n
	}
	for p := i; p < limit; p++ {
		if s.Get(p) == c {
			return p
		}
	}
	r := s.Rank(c, i-1)
	pos := s.Select(c, r+1)
	if pos >= s.n {
		return -1
	}
	return pos
}

// Pred finds the largest position <= i holding symbol c, or -1 if none.
func (s *Static) Pred(i, c int) int {
	if i >= s.n {
		i = s.n - 1
	}
	limit := i - staticScanLimit
	if limit < 0 {
		limit = 0
	}
	for p := i; p >= limit; p-- {
		if p < 0 {
			break
		}
		if s.Get(p) == c {
			return p
		}
	}
	r := s.Rank(c, i)
	if r == 0 {
		return -1
	}
	return s.Select(c, r)
}
