// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package wavelet

import "github.com/bossgraph/boss/internal/bitset"

// dnode is one node of the dynamic wavelet tree, covering the alphabet
// half-open range [lo, hi). Internal nodes hold a dynamic bit sequence
// routing each element left (bit 0) or right (bit 1) according to
// whether its symbol falls below or at/above mid(); leaves cover
// exactly one symbol value and store nothing.
type dnode struct {
	lo, hi int
	bits   bitset.BitSet
	left   *dnode
	right  *dnode
}

func (n *dnode) isLeaf() bool { return n.hi-n.lo <= 1 }
func (n *dnode) mid() int     { return (n.lo + n.hi) / 2 }

func buildDnode(lo, hi int) *dnode {
	n := &dnode{lo: lo, hi: hi}
	if n.isLeaf() {
		return n
	}
	mid := n.mid()
	n.left = buildDnode(lo, mid)
	n.right = buildDnode(mid, hi)
	return n
}

// countOnes reports the number of 1-bits among the first p elements
// (positions [0,p)) of a node's local sequence.
func countOnes(b bitset.BitSet, p int) int {
	if p <= 0 {
		return 0
	}
	return b.Rank1(uint(p - 1))
}

// countZeros is countOnes's complement over the same prefix.
func countZeros(b bitset.BitSet, p int) int {
	return p - countOnes(b, p)
}

// Dynamic is the mutable WaveletString variant (spec's "dynamic"
// BitSequence-backed sequence): get/rank/select plus insert/delete/set,
// all O(log sigma) bit-sequence operations per tree level.
type Dynamic struct {
	root  *dnode
	sigma int // symbols are drawn from [0, sigma)
	n     int
}

// NewDynamic builds an empty Dynamic wavelet tree over the alphabet
// [0, sigma).
func NewDynamic(sigma int) *Dynamic {
	return &Dynamic{root: buildDnode(0, sigma), sigma: sigma}
}

// Len reports the number of symbols currently stored.
func (d *Dynamic) Len() int { return d.n }

// Sigma reports the alphabet size the tree was built for.
func (d *Dynamic) Sigma() int { return d.sigma }

// Get returns the symbol at 0-based position i.
func (d *Dynamic) Get(i int) int {
	node := d.root
	for !node.isLeaf() {
		if node.bits.Test(uint(i)) {
			i = countOnes(node.bits, i)
			node = node.right
		} else {
			i = countZeros(node.bits, i)
			node = node.left
		}
	}
	return node.lo
}

// Rank returns the number of occurrences of symbol c among the first
// i+1 elements (positions [0,i], 0-based, inclusive) -- the same
// 0-based-inclusive convention internal/bitset uses for Rank1.
func (d *Dynamic) Rank(c, i int) int {
	if i < 0 || c < 0 || c >= d.sigma {
		return 0
	}
	p := i + 1
	node := d.root
	for !node.isLeaf() {
		if c < node.mid() {
			p = countZeros(node.bits, p)
			node = node.left
		} else {
			p = countOnes(node.bits, p)
			node = node.right
		}
	}
	return p
}

// Select returns the 0-based position of the j-th occurrence (1-based
// count j) of symbol c. If fewer than j occurrences exist, it returns
// Len() (one past the end), mirroring BitSequence.Select1's convention.
func (d *Dynamic) Select(c, j int) int {
	if j <= 0 || c < 0 || c >= d.sigma {
		return d.n
	}

	var ancestors []*dnode
	var wentRight []bool
	node := d.root
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
			return d.n
		}
		p = int(pos) + 1
	}
	if p > d.n {
		return d.n
	}
	return p - 1
}

// Insert places symbol c at position i, shifting every element at or
// after i one place to the right.
func (d *Dynamic) Insert(c, i int) {
	node := d.root
	for !node.isLeaf() {
		right := c >= node.mid()
		var childI int
		if right {
			childI = countOnes(node.bits, i)
		} else {
			childI = countZeros(node.bits, i)
		}
		node.bits.Insert(uint(i), right)
		i = childI
		if right {
			node = node.right
		} else {
			node = node.left
		}
	}
	d.n++
}

// Delete removes the element at position i, shifting every later
// element one place to the left.
func (d *Dynamic) Delete(i int) {
	node := d.root
	for !node.isLeaf() {
		right := node.bits.Test(uint(i))
		var childI int
		if right {
			childI = countOnes(node.bits, i)
		} else {
			childI = countZeros(node.bits, i)
		}
		node.bits.Delete(uint(i))
		i = childI
		if right {
			node = node.right
		} else {
			node = node.left
		}
	}
	d.n--
}

// Set overwrites the element at position i with symbol c. Implemented
// as delete-then-insert: the tree has no faster in-place relabel
// because a symbol change can move an element across every level whose
// routing bit differs between the old and new value.
func (d *Dynamic) Set(i, c int) {
	d.Delete(i)
	d.Insert(c, i)
}

// dynamicScanLimit: Succ and Pred try a short linear scan before falling
// back to rank/select, per spec's locality-exploiting heuristic for the
// dynamic variant.
const dynamicScanLimit = 10

// Succ finds the smallest position >= i holding symbol c, or -1 if none.
func (d *Dynamic) Succ(i, c int) int {
	if i < 0 {
		i = 0
	}
	limit := i + dynamicScanLimit
	if limit > d.n {
		limit = d.n
	}
	for p := i; p < limit; p++ {
		if d.Get(p) == c {
			return p
		}
	}
	r := d.Rank(c, i-1)
	pos := d.Select(c, r+1)
	if pos >= d.n {
		return -1
	}
	return pos
}

// Pred finds the largest position <= i holding symbol c, or -1 if none.
func (d *Dynamic) Pred(i, c int) int {
	if i >= d.n {
		i = d.n - 1
	}
	limit := i - dynamicScanLimit
	if limit < 0 {
		limit = 0
	}
	for p := i; p >= limit; p-- {
		if p < 0 {
			break
		}
		if d.Get(p) == c {
			return p
		}
	}
	r := d.Rank(c, i)
	if r == 0 {
		return -1
	}
	return d.Select(c, r)
}
