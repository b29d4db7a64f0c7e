// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

// This file implements Traverser: call_paths, call_unitigs,
// call_sequences, call_kmers, call_source_nodes and find. All of it
// requires only shared (read) access; callbacks follow the same
// yield-returns-false-to-stop idiom core.go's MapToNodes/MapToEdges
// already use.

// Path is one maximal edge-disjoint walk emitted by CallPaths: the
// edge indices making up the walk plus the decoded k-mer sequence
// spelled out along it (the k symbols of the starting node followed
// by one symbol per traversed edge).
type Path struct {
	Edges  []uint64
	Symbol []int
}

// CallPaths decomposes the edge set into edge-disjoint maximal
// directed paths. Every edge whose source node has out-degree >= 2
// starts a fresh path at each of its branches; a path ends at a dead
// end or at an edge already claimed by another path. Every edge is
// visited in exactly one emitted path.
//
// cb is invoked once per path; returning false stops the walk early.
// stop, if non-nil, is consulted once per emitted path too.
func (g *Graph) CallPaths(cb func(Path) bool, stop func() bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := g.n()
	if n == 0 {
		return
	}

	visited := make([]bool, n+1)

	emit := func(start uint64) bool {
		edges := []uint64{start}
		visited[start] = true
		cur := start
		for {
			node := g.GetSourceNode(g.Fwd(cur))
			var next uint64 = npos
			for c := 0; c < g.Sigma(); c++ {
				if e := g.outgoingEdge(node, c); e != npos {
					next = e
					break
				}
			}
			if next == npos || visited[next] {
				break
			}
			visited[next] = true
			edges = append(edges, next)
			cur = next
		}
		return cb(Path{Edges: edges, Symbol: g.pathSymbols(edges)})
	}

	for i := uint64(1); i <= n; i++ {
		if visited[i] {
			continue
		}
		if stop != nil && stop() {
			return
		}
		if !emit(i) {
			return
		}
	}
}

// pathSymbols decodes the starting node's k-mer followed by one
// symbol per edge in the walk.
func (g *Graph) pathSymbols(edges []uint64) []int {
	src := g.GetSourceNode(edges[0])
	out := append([]int{}, g.nodeKmer(src)...)
	for _, e := range edges {
		out = append(out, g.alphabet.Base(g.getW(e)))
	}
	return out
}

// CallUnitigs restricts CallPaths to unitigs: maximal paths whose
// interior nodes have both in-degree 1 and out-degree 1. Tips (paths
// touching the root dummy or a dead end) shorter than minTipSize
// symbols are dropped. When kmersSingleForm is true, a k-mer already
// emitted under its canonical form is skipped when later seen under
// its reverse-complement form.
func (g *Graph) CallUnitigs(minTipSize int, kmersSingleForm bool, cb func(Path) bool, stop func() bool) {
	seen := make(map[string]bool)

	g.CallPaths(func(p Path) bool {
		unitig := g.trimToUnitig(p)
		if len(unitig.Symbol) < g.k+minTipSize {
			return true
		}
		if kmersSingleForm {
			key := canonicalKey(g.alphabet, unitig.Symbol)
			if seen[key] {
				return true
			}
			seen[key] = true
		}
		return cb(unitig)
	}, stop)
}

// trimToUnitig drops the leading and trailing edges of p whose source
// (respectively target) node has out-degree/in-degree != 1, leaving
// only the maximal interior run where both hold.
func (g *Graph) trimToUnitig(p Path) Path {
	lo, hi := 0, len(p.Edges)
	for lo < hi {
		src := g.GetSourceNode(p.Edges[lo])
		if g.Indegree(src) == 1 || src == 1 {
			break
		}
		lo++
	}
	for hi > lo {
		tgt := g.GetSourceNode(g.Fwd(p.Edges[hi-1]))
		if g.Outdegree(tgt) == 1 {
			break
		}
		hi--
	}
	if lo >= hi {
		return Path{}
	}
	edges := p.Edges[lo:hi]
	return Path{Edges: edges, Symbol: g.pathSymbols(edges)}
}

// canonicalKey returns whichever of symbols or its reverse complement
// sorts first, as a map key; non-DNA alphabets fall back to symbols
// itself since no general complement relation is defined for them.
func canonicalKey(alphabet *Alphabet, symbols []int) string {
	if alphabet != DNA {
		return alphabet.Decode(symbols)
	}
	rc := make([]int, len(symbols))
	for i, c := range symbols {
		rc[len(symbols)-1-i] = dnaComplementCode(c)
	}
	fwd := alphabet.Decode(symbols)
	bwd := alphabet.Decode(rc)
	if fwd < bwd {
		return fwd
	}
	return bwd
}

func dnaComplementCode(c int) int {
	switch c {
	case 1:
		return 4
	case 2:
		return 3
	case 3:
		return 2
	case 4:
		return 1
	default:
		return c
	}
}

// CallSequences decodes every path emitted by CallPaths, skipping the
// sentinel symbol, into the printable strings it spells out.
func (g *Graph) CallSequences(cb func(string) bool, stop func() bool) {
	g.CallPaths(func(p Path) bool {
		filtered := make([]int, 0, len(p.Symbol))
		for _, c := range p.Symbol {
			if c != 0 {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) == 0 {
			return true
		}
		return cb(g.alphabet.Decode(filtered))
	}, stop)
}

// CallKmers visits every non-dummy node exactly once, passing its
// node index and decoded k-mer.
func (g *Graph) CallKmers(cb func(node uint64, kmer []int) bool, stop func() bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := g.NumNodes()
	for node := uint64(2); node <= n; node++ {
		if stop != nil && stop() {
			return
		}
		kmer := g.nodeKmer(node)
		if isAllSentinel(kmer) {
			continue
		}
		if !cb(node, kmer) {
			return
		}
	}
}

func isAllSentinel(kmer []int) bool {
	for _, c := range kmer {
		if c != 0 {
			return false
		}
	}
	return true
}

// CallSourceNodes visits every node with indegree 0.
func (g *Graph) CallSourceNodes(cb func(node uint64) bool, stop func() bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := g.NumNodes()
	for node := uint64(1); node <= n; node++ {
		if stop != nil && stop() {
			return
		}
		if g.Indegree(node) == 0 {
			if !cb(node) {
				return
			}
		}
	}
}

// Find returns true iff at least discoveryFraction of seq's (k+1)-mers
// resolve to an edge in the graph, short-circuiting as soon as the
// pass/fail verdict is forced regardless of the remaining (k+1)-mers.
func (g *Graph) Find(seq string, discoveryFraction float64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	codes, bad := g.alphabet.Encode(seq)
	if bad > 0 {
		g.badInput.Add(int64(bad))
	}
	total := len(codes) - g.k
	if total <= 0 {
		return false
	}

	need := discoveryFraction * float64(total)
	hits, misses := 0, 0

	for i := 0; i+g.k+1 <= len(codes); i++ {
		if float64(hits) >= need {
			return true
		}
		if float64(misses) > float64(total)-need {
			return false
		}
		node := g.index(codes[i : i+g.k])
		found := node != npos && g.outgoingEdge(node, codes[i+g.k]) != npos
		if found {
			hits++
		} else {
			misses++
		}
	}
	return float64(hits) >= need
}
