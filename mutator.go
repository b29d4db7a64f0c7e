// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import (
	"github.com/bossgraph/boss/internal/bitset"
	"github.com/bossgraph/boss/internal/wavelet"
)

// This file implements GraphMutator: append_pos, erase_edges,
// erase_redundant_dummy_edges and add_sequence. append_pos (and so
// add_sequence) requires DYN state; erase_edges reads any
// representation and leaves the graph in STAT.

func (g *Graph) requireDyn(op string) {
	if g.state != DYN {
		invariantViolation(op, "mutation requires the DYN representation")
	}
}

// nodeKmer decodes the k-symbol suffix identifying node n, walking
// backward through canonical incoming edges. Positions preceding the
// root dummy are filled with the sentinel (dummy-padded prefix).
func (g *Graph) nodeKmer(n uint64) []int {
	out := make([]int, g.k)
	cur := n
	for i := g.k - 1; i >= 0; i-- {
		if cur == 1 {
			for j := i; j >= 0; j-- {
				out[j] = 0
			}
			return out
		}
		out[i] = g.GetNodeLastValue(cur)
		e := g.incomingEdge(cur)
		if e == npos {
			for j := i; j >= 0; j-- {
				out[j] = 0
			}
			return out
		}
		cur = g.GetSourceNode(e)
	}
	return out
}

// incomingEdge returns the canonical edge targeting n, or npos.
func (g *Graph) incomingEdge(n uint64) uint64 {
	c := g.GetNodeLastValue(n)
	base := g.rankL(uint64(g.F[c]))
	if n <= base {
		return npos
	}
	return g.selectW(c, n-base)
}

func suffixEqual(a, b []int, length int) bool {
	if len(a) < length || len(b) < length {
		return false
	}
	for i := 0; i < length; i++ {
		if a[len(a)-length+i] != b[len(b)-length+i] {
			return false
		}
	}
	return true
}

func (g *Graph) sharesSuffix(edge uint64, kmer []int) bool {
	if edge == 0 || edge == npos {
		return false
	}
	other := g.nodeKmer(g.GetSourceNode(edge))
	return suffixEqual(other, kmer, g.k-1)
}

// AppendPos implements §4.4.1: resolve or create the edge labelled c
// leaving the node identified by sourceEdge/sourceKmer, returning
// the target edge index.
func (g *Graph) AppendPos(c int, sourceEdge uint64, sourceKmer []int) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requireDyn("append_pos")

	sigma := g.Sigma()
	begin := g.predL(sourceEdge-1) + 1
	end := g.succL(sourceEdge) + 1

	// step 2: an edge with this label already leaves the source.
	for _, label := range [2]int{c, c + sigma} {
		j := g.predW(end-1, label)
		if j >= begin && j < end {
			return g.Fwd(j)
		}
	}

	// step 3: decide the label.
	targetKmer := append(append([]int{}, sourceKmer[1:]...), c)
	targetExisted := g.index(targetKmer) != npos

	label := c
	prevC := g.predW(begin-1, c)
	if prevC > 0 && g.sharesSuffix(prevC, sourceKmer) {
		label = c + sigma
	} else {
		firstC := g.succW(end, c)
		if firstC <= g.n() && g.sharesSuffix(firstC, sourceKmer) {
			g.relabel(firstC, c+sigma)
		}
	}

	pos := g.insertEdge(label, begin, end)
	target := g.Fwd(pos)

	if label == c && !targetExisted {
		g.p = g.insertDeadEnd(c)
		return g.p
	}
	return target
}

// relabel changes W[i] (spec index) to the given value without
// moving it.
func (g *Graph) relabel(i uint64, value int) {
	g.wdyn.Set(int(i-1), value)
}

// insertEdge performs §4.4.1 step 4: overwrite a dead-end sentinel
// in place, or shift-insert a new position preserving I3. begin/end
// and the returned index are all spec (1-based) indices; the
// internal wavelet/bitset calls translate to the 0-based position
// pos-1.
func (g *Graph) insertEdge(label int, begin, end uint64) uint64 {
	if g.getW(begin) == 0 {
		g.wdyn.Set(int(begin-1), label)
		return begin
	}

	sigma := g.Sigma()
	base := label % sigma
	pos := end
	for i := begin; i < end; i++ {
		if g.alphabet.Base(g.getW(i)) > base {
			pos = i
			break
		}
	}

	for cc := base + 1; cc < len(g.F); cc++ {
		g.F[cc]++
	}

	g.wdyn.Insert(label, int(pos-1))
	g.ldyn.Insert(uint(pos-1), false)
	if g.p >= pos {
		g.p++
	}
	return pos
}

// insertDeadEnd creates the placeholder outgoing-range entry for a
// brand-new node whose last symbol is c, at the position its F/rank_L
// offset dictates, and returns its (spec) index.
func (g *Graph) insertDeadEnd(c int) uint64 {
	rankAtC := g.rankL(uint64(g.F[c])) + g.rankW(g.n(), c)
	pos := g.selectL(rankAtC) + 1
	if pos > g.n()+1 {
		pos = g.n() + 1
	}

	for cc := c + 1; cc < len(g.F); cc++ {
		g.F[cc]++
	}

	g.wdyn.Insert(0, int(pos-1))
	g.ldyn.Insert(uint(pos-1), true)
	if g.p >= pos {
		g.p++
	}
	return pos
}

// EraseEdges implements §4.4.2: a bulk, linear-pass rebuild of
// W, L, F given a per-edge removal mask (indexed like W/L, 0 and 1
// both reserved/never removed). Switches representation to STAT.
func (g *Graph) EraseEdges(mask []bool) {
	g.mu.Lock()

	n := g.n()
	sigma := g.Sigma()
	masked := func(i uint64) bool { return i >= 2 && i < uint64(len(mask)) && mask[i] }

	newF := make([]int, len(g.F))
	copy(newF, g.F)

	// relabelToCanonical holds original indices of surviving c+sigma
	// edges whose canonical partner is being removed; they inherit
	// first-incoming (I7).
	relabelToCanonical := make(map[uint64]bool)

	for i := uint64(2); i <= n; i++ {
		if !masked(i) {
			continue
		}
		w := g.getW(i)
		base := g.alphabet.Base(w)
		for cc := base + 1; cc < len(newF); cc++ {
			newF[cc]--
		}
		if g.alphabet.IsExtended(w) {
			continue
		}

		off := g.rankW(i, base)
		hi := g.n()
		if total := g.rankW(g.n(), base); off+1 <= total {
			hi = g.selectW(base, off+1) - 1
		}
		if partner := g.succW(i+1, base+sigma); partner <= hi {
			relabelToCanonical[partner] = true
		}
	}

	newW := make([]int, 0, n+1)
	newL := make([]bool, 0, n+1)
	lastKeptSource := npos

	for i := uint64(1); i <= n; i++ {
		if masked(i) {
			if g.testL(i) && lastKeptSource == g.GetSourceNode(i) && len(newL) > 0 {
				newL[len(newL)-1] = true
			}
			continue
		}

		w := g.getW(i)
		if relabelToCanonical[i] {
			w = g.alphabet.Base(w)
		}
		newW = append(newW, w)
		newL = append(newL, g.testL(i))
		lastKeptSource = g.GetSourceNode(i)
	}

	var ldyn bitset.BitSet
	for i, b := range newL {
		ldyn.Put(uint(i), b)
	}
	wdyn := wavelet.NewDynamic(g.alphabet.ExtendedSize())
	for i, c := range newW {
		wdyn.Insert(c, i)
	}

	g.ldyn = &ldyn
	g.wdyn = wdyn
	g.lstat, g.lsmall = nil, nil
	g.wstat, g.wsmall = nil, nil
	g.state = DYN
	g.F = newF
	g.mu.Unlock()

	g.Transform(STAT)
}

// EraseRedundantDummyEdges walks the dummy source chain (the linear
// run of edges labelled the sentinel, reachable from the root -- at
// most one per node by I6) and marks any step whose target already
// has more than one incoming edge, since that dummy prefix is no
// longer the only way to reach it. Marked edges are erased via
// EraseEdges; the mask is returned for inspection.
func (g *Graph) EraseRedundantDummyEdges() []bool {
	g.mu.RLock()
	n := g.n()
	mask := make([]bool, n+1)
	node := uint64(1)
	for depth := 0; depth < g.k; depth++ {
		edge := g.outgoingEdge(node, 0)
		if edge == npos {
			break
		}
		target := g.GetSourceNode(g.Fwd(edge))
		if !g.IsSingleIncoming(edge) {
			mask[edge] = true
		}
		node = target
	}
	g.mu.RUnlock()

	for _, removed := range mask {
		if removed {
			g.EraseEdges(mask)
			break
		}
	}
	return mask
}

// Merge folds every sequence spelled out by other into g, via
// AddSequence(seq, true) (dbg_succinct.cpp's DBG_succ::merge). It is
// the composition primitive for recombining per-shard graphs a
// caller built separately and now wants as one.
func (g *Graph) Merge(other *Graph) {
	other.CallSequences(func(seq string) bool {
		g.AddSequence(seq, true)
		return true
	}, nil)
}

// AddSequence encodes seq and calls AppendPos for each successive
// edge, optionally treating the first k symbols as an existing
// source rather than prepending k sentinel symbols. Matching the
// source's add_sequence (original_source/metagraph/dbg_succinct.cpp),
// the sentinel-padding fallback fires whenever tryExtend is false OR
// the sequence's leading k-mer isn't actually in the graph yet --
// not just on !tryExtend -- since falling through with sourceKmer set
// to the real leading symbols while sourceEdge still points at the
// dummy edge p (whose node is all-sentinel) would feed AppendPos a
// kmer that doesn't describe p, corrupting I7 bookkeeping for the
// rest of the sequence.
func (g *Graph) AddSequence(seq string, tryExtend bool) {
	codes, bad := g.alphabet.Encode(seq)
	if bad > 0 {
		g.badInput.Add(int64(bad))
	}
	if len(codes) < g.k+1 {
		return
	}

	var extendFrom uint64 = npos
	if tryExtend && len(codes) >= g.k {
		extendFrom = g.index(codes[:g.k])
	}
	extend := extendFrom != npos

	padded := codes
	if !extend {
		padded = make([]int, g.k+len(codes))
		for i := 0; i < g.k; i++ {
			padded[i] = 0
		}
		copy(padded[g.k:], codes)
	}
	if len(padded) <= g.k {
		return
	}

	sourceKmer := append([]int{}, padded[:g.k]...)
	sourceEdge := g.p
	if extend {
		sourceEdge = extendFrom
	}

	for i := g.k; i < len(padded); i++ {
		c := padded[i]
		target := g.AppendPos(c, sourceEdge, sourceKmer)
		sourceKmer = append(append([]int{}, sourceKmer[1:]...), c)
		sourceEdge = target
	}
}
