// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wavelet

import "github.com/bossgraph/boss/internal/bitset"

// xnode is one node of the immutable Small wavelet tree -- same shape
// as snode, backed by the coarser-grained bitset.Small instead of
// bitset.Static.
type xnode struct {
	lo, hi int
	bits   *bitset.Small
	left   *xnode
	right  *xnode
}

func (n *xnode) isLeaf() bool { return n.hi-n.lo <= 1 }
func (n *xnode) mid() int     { return (n.lo + n.hi) / 2 }

// Small is the minimum-space immutable WaveletString variant: the same
// shape as Static, but each level's BitSequence samples its rank
// directory every 8 words instead of every word, per spec §4.1's
// "smaller space at higher query constant" requirement.
type Small struct {
	root  *xnode
	sigma int
	n     int
}

// BuildSmall constructs a Small wavelet tree from a slice of symbols in
// [0, sigma), the same single-pass partition BuildStatic uses.
func BuildSmall(symbols []int, sigma int) *Small {
	return &Small{root: buildXnode(symbols, 0, sigma), sigma: sigma, n: len(symbols)}
}

func buildXnode(symbols []int, lo, hi int) *xnode {
	n := &xnode{lo: lo, hi: hi}
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
	if len(symbols) > 0 {
		dyn.Put(uint(len(symbols)-1), dyn.Test(uint(len(symbols)-1)))
	}

	n.bits = bitset.NewSmall(dyn)
	n.left = buildXnode(left, lo, mid)
	n.right = buildXnode(right, mid, hi)
	return n
}

// Len reports the number of symbols stored.
func (s *Small) Len() int { return s.n }

// Sigma reports the alphabet size the tree was built for.
func (s *Small) Sigma() int { return s.sigma }

// Get returns the symbol at 0-based position i.
func (s *Small) Get(i int) int {
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
func (s *Small) Rank(c, i int) int {
	if i < 0 || c < 0 || c >= s.sigma {
		return 0
	}
	p := i + 1
	node := s.root
	for !node.isLeaf() {
		if c < node.mid() {
			p = p - smallCountOnes(node.bits, p)
			node = node.left
		} else {
			p = smallCountOnes(node.bits, p)
			node = node.right
		}
	}
	return p
}

func smallCountOnes(b *bitset.Small, p int) int {
	if p <= 0 {
		return 0
	}
	return b.Rank1(uint(p - 1))
}

// Select returns the 0-based position of the j-th occurrence (1-based
// count j) of symbol c, or Len() if fewer than j occurrences exist.
func (s *Small) Select(c, j int) int {
	if j <= 0 || c < 0 || c >= s.sigma {
		return s.n
	}

	var ancestors []*xnode
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

// smallScanLimit matches Static's: Small is also immutable with
// contiguous words, just a coarser rank directory.
const smallScanLimit = 1000

// Succ finds the smallest position >= i holding symbol c, or -1 if none.
func (s *Small) Succ(i, c int) int {
	if i < 0 {
		i = 0
	}
	limit := i + smallScanLimit
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
func (s *Small) Pred(i, c int) int {
	if i >= s.n {
		i = s.n - 1
	}
	limit := i - smallScanLimit
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
