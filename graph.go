// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import (
	"sync"
	"sync/atomic"

	"github.com/bossgraph/boss/internal/bitset"
	"github.com/bossgraph/boss/internal/wavelet"
)

// BitSeq is the read-only capability set all three internal/bitset
// variants share -- the "capability set" spec §9's design notes call
// for in place of the source's virtual-dispatch polymorphism across
// representations.
type BitSeq interface {
	Len() uint
	Test(i uint) bool
	Rank1(i uint) int
	Select1(j int) uint
	Select0(j int) uint
}

// SymSeq is the read-only capability set all three internal/wavelet
// variants share.
type SymSeq interface {
	Len() int
	Get(i int) int
	Rank(c, i int) int
	Select(c, j int) int
}

var (
	_ BitSeq = bitset.BitSet(nil)
	_ BitSeq = (*bitset.Static)(nil)
	_ BitSeq = (*bitset.Small)(nil)

	_ SymSeq = (*wavelet.Dynamic)(nil)
	_ SymSeq = (*wavelet.Static)(nil)
	_ SymSeq = (*wavelet.Small)(nil)
)

// Graph is the succinct de Bruijn graph: the arrays W, L, F and the
// distinguished terminal index p (spec §3). Exactly one of the three
// representation trios below is populated at a time, selected by
// state; Static vs dynamic vs small is a construction-time/Transform-
// time choice, never a per-call dynamic cast (spec §9).
//
// The Graph is single-writer/multi-reader (spec §5): mutation
// operations (append_pos, erase_edges, add_sequence) take mu for
// writing; queries take it for reading and are safe to call
// concurrently with one another.
type Graph struct {
	alphabet *Alphabet
	k        int
	state    State

	ldyn *bitset.BitSet
	wdyn *wavelet.Dynamic

	lstat *bitset.Static
	wstat *wavelet.Static

	lsmall *bitset.Small
	wsmall *wavelet.Small

	// F[c] is the largest edge index whose target's last symbol < c
	// (I4), length sigma, F[0]=0.
	F []int

	// p is the distinguished "current" edge index for incremental
	// construction; W[p] is always 0 (I8).
	p uint64

	badInput atomic.Int64

	mu sync.RWMutex
}

// NewGraph builds an empty graph over the given alphabet and k-mer
// size: just the root dummy edge (I1), W[1]=0, L[1]=1. Spec index 0
// is reserved and never materialized: spec index i is stored at
// internal position i-1 throughout (see rankL/selectL/rankW/selectW),
// so the internal sequences hold exactly n elements, not n+1.
func NewGraph(alphabet *Alphabet, k int) *Graph {
	g := &Graph{
		alphabet: alphabet,
		k:        k,
		state:    DYN,
		F:        make([]int, alphabet.Sigma()),
		p:        1,
	}

	var l bitset.BitSet
	l.Put(0, true) // spec index 1, L[1]=1, root dummy is a dead-end
	g.ldyn = &l

	g.wdyn = wavelet.NewDynamic(alphabet.ExtendedSize())
	g.wdyn.Insert(0, 0) // spec index 1, W[1]=0

	return g
}

// FromArrays builds a Graph directly from already-derived W, L, F
// arrays and a terminal pointer, the finalizer-side primitive
// BulkBuilder's shard-stacking step (spec §4.5 step 6) needs once it
// has concatenated its shards' streams and summed their F vectors.
func FromArrays(alphabet *Alphabet, k int, symbols []int, bits []bool, f []int, p uint64) *Graph {
	if len(symbols) != len(bits) {
		invariantViolation("I1", "FromArrays: W and L length mismatch")
	}

	g := &Graph{
		alphabet: alphabet,
		k:        k,
		state:    DYN,
		F:        f,
		p:        p,
	}

	dw := wavelet.NewDynamic(alphabet.ExtendedSize())
	for i, c := range symbols {
		dw.Insert(c, i)
	}
	var dl bitset.BitSet
	for i, b := range bits {
		dl.Put(uint(i), b)
	}
	g.wdyn = dw
	g.ldyn = &dl

	return g
}

// Alphabet returns the graph's symbol alphabet.
func (g *Graph) Alphabet() *Alphabet { return g.alphabet }

// K returns the k-mer size (node length).
func (g *Graph) K() int { return g.k }

// State returns the current representation.
func (g *Graph) State() State { return g.state }

// BadInputCount returns the number of non-alphabet bytes silently
// remapped since the graph was created (spec §7 BadInput handling).
func (g *Graph) BadInputCount() int64 { return g.badInput.Load() }

func (g *Graph) lseq() BitSeq {
	switch g.state {
	case DYN:
		return *g.ldyn
	case STAT:
		return g.lstat
	case SMALL:
		return g.lsmall
	default:
		invariantViolation("state", "unknown graph representation state")
		return nil
	}
}

func (g *Graph) wseq() SymSeq {
	switch g.state {
	case DYN:
		return g.wdyn
	case STAT:
		return g.wstat
	case SMALL:
		return g.wsmall
	default:
		invariantViolation("state", "unknown graph representation state")
		return nil
	}
}

// n returns spec's "n": the largest valid array index. The internal
// sequences store exactly n elements at positions [0,n), one per
// spec index [1,n].
func (g *Graph) n() uint64 {
	return uint64(g.wseq().Len())
}

// NumEdges returns n, the number of stored W entries, including the
// root's entry at index 1 (so an empty graph has one edge).
func (g *Graph) NumEdges() uint64 {
	return g.n()
}

// NumNodes returns rank_L(n).
func (g *Graph) NumNodes() uint64 {
	return g.rankL(g.n())
}

// Sigma returns the regular-alphabet size.
func (g *Graph) Sigma() int { return g.alphabet.Sigma() }

// Transform switches the graph's representation, a one-shot
// materializing conversion (spec §4.1 "conversion between variants is
// a supported one-shot operation"). Mutating operations require DYN;
// queries work against any state.
func (g *Graph) Transform(to State) {
	if g.state == to {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// materialize the current state into a plain symbol/bit slice,
	// then rebuild the target representation from it.
	n := int(g.wseq().Len())
	symbols := make([]int, n)
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		symbols[i] = g.wseq().Get(i)
		bits[i] = g.lseq().Test(uint(i))
	}

	switch to {
	case DYN:
		dw := wavelet.NewDynamic(g.alphabet.ExtendedSize())
		for i, c := range symbols {
			dw.Insert(c, i)
		}
		var dl bitset.BitSet
		for i, b := range bits {
			dl.Put(uint(i), b)
		}
		g.wdyn, g.wstat, g.wsmall = dw, nil, nil
		g.ldyn, g.lstat, g.lsmall = &dl, nil, nil
	case STAT:
		g.wstat = wavelet.BuildStatic(symbols, g.alphabet.ExtendedSize())
		var dl bitset.BitSet
		for i, b := range bits {
			dl.Put(uint(i), b)
		}
		g.lstat = bitset.NewStatic(dl)
		g.wdyn, g.wsmall = nil, nil
		g.ldyn, g.lsmall = nil, nil
	case SMALL:
		g.wsmall = wavelet.BuildSmall(symbols, g.alphabet.ExtendedSize())
		var dl bitset.BitSet
		for i, b := range bits {
			dl.Put(uint(i), b)
		}
		g.lsmall = bitset.NewSmall(dl)
		g.wdyn, g.wstat = nil, nil
		g.ldyn, g.lstat = nil, nil
	default:
		invariantViolation("state", "Transform to unknown state")
	}

	g.state = to
}
