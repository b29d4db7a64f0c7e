// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendPosDedup(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)

	acg := g.Index([]int{1, 2, 3})
	r.NotEqual(uint64(npos), acg)

	before := g.NumEdges()
	g.AddSequence("ACGT", false)
	r.Equal(before, g.NumEdges(), "re-adding the same sequence must not create duplicate edges")
}

// S5: erasing the redundant dummy prefix preserves map_to_edges
// results for the surviving sequence (shifted by the removed count,
// here asserted as "still resolves with no npos").
func TestEraseRedundantDummyEdges(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)
	g.AddSequence("CGTA", false)

	mask := g.EraseRedundantDummyEdges()
	r.NotNil(mask)

	count := 0
	g.MapToEdges("ACGT", func(pos int, edge uint64) bool {
		r.NotEqual(uint64(npos), edge)
		count++
		return true
	}, nil)
	r.Equal(1, count)
}

func TestEraseEdgesRemovesTarget(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)
	g.AddSequence("ACGA", false)

	acg := g.Index([]int{1, 2, 3})
	r.Equal(2, g.Outdegree(acg))

	edge := g.outgoingEdge(acg, 1) // the A branch
	r.NotEqual(uint64(npos), edge)

	mask := make([]bool, g.n()+1)
	mask[edge] = true
	g.EraseEdges(mask)

	r.Equal(1, g.Outdegree(acg))
	r.Equal(uint64(npos), g.Outgoing(acg, 1))
	r.NotEqual(uint64(npos), g.Outgoing(acg, 4))
}

// Regression: tryExtend=true must still sentinel-pad when the
// sequence's leading k-mer isn't already in the graph, instead of
// silently anchoring at the dummy edge with the wrong source kmer.
func TestAddSequenceFallsBackWhenExtendPointMissing(t *testing.T) {
	r := require.New(t)

	incremental := NewGraph(DNA, 3)
	incremental.AddSequence("ACGT", false)

	extended := NewGraph(DNA, 3)
	extended.AddSequence("ACGT", true) // "ACG" isn't in the graph yet

	r.True(incremental.Equal(extended))
}

func TestMergeFoldsOtherGraphsSequences(t *testing.T) {
	r := require.New(t)

	a := NewGraph(DNA, 3)
	a.AddSequence("ACGT", false)

	b := NewGraph(DNA, 3)
	b.AddSequence("CGTA", false)

	a.Merge(b)

	count := 0
	a.MapToEdges("CGTA", func(pos int, edge uint64) bool {
		r.NotEqual(uint64(npos), edge, "pos %d", pos)
		count++
		return true
	}, nil)
	r.Equal(1, count)
}

func TestGetMinusKValueWalksBwd(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)

	var edge uint64 = npos
	g.MapToEdges("ACGT", func(pos int, e uint64) bool {
		edge = e
		return false
	}, nil)
	r.NotEqual(uint64(npos), edge)

	c, bwdEdge := g.GetMinusKValue(edge, 1)
	r.NotEqual(uint64(npos), bwdEdge)
	r.Equal(g.GetNodeLastValue(g.Bwd(edge)), c)
}

func TestIsSingleOutgoingAndIncoming(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)
	g.AddSequence("ACGA", false)

	acg := g.Index([]int{1, 2, 3})
	r.Equal(2, g.Outdegree(acg))

	edgeT := g.outgoingEdge(acg, 4)
	r.NotEqual(uint64(npos), edgeT)
	r.False(g.IsSingleOutgoing(edgeT), "ACG branches into two edges, neither is single-outgoing")

	cgt := g.Index([]int{2, 3, 4})
	r.NotEqual(uint64(npos), cgt)
	onlyEdge := g.outgoingEdge(cgt, 0)
	if onlyEdge == npos {
		onlyEdge = g.outgoingEdge(cgt, 1)
	}
	r.NotEqual(uint64(npos), onlyEdge)
	r.True(g.IsSingleOutgoing(onlyEdge), "CGT has a single outgoing edge")

	r.True(g.IsSingleIncoming(edgeT), "T's target is reached only via the ACG->T edge")
}

func TestNodeKmerRoundTrip(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)

	cgt := g.Index([]int{2, 3, 4})
	r.NotEqual(uint64(npos), cgt)
	r.Equal([]int{2, 3, 4}, g.nodeKmer(cgt))
}
