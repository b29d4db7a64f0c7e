// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallPathsCoversEveryRealEdge(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)
	g.AddSequence("ACGA", false)

	covered := uint64(0)
	g.CallPaths(func(p Path) bool {
		covered += uint64(len(p.Edges))
		return true
	}, nil)

	r.EqualValues(g.NumEdges(), covered)
}

func TestCallSequencesSkipsSentinels(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)

	var seqs []string
	g.CallSequences(func(s string) bool {
		seqs = append(seqs, s)
		return true
	}, nil)

	for _, s := range seqs {
		r.NotContains(s, "$")
	}
}

func TestCallKmersVisitsEveryNonDummyNode(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)

	count := 0
	g.CallKmers(func(node uint64, kmer []int) bool {
		r.Len(kmer, 3)
		count++
		return true
	}, nil)

	r.Equal(int(g.NumNodes())-1, count, "every node except the root dummy")
}

func TestCallSourceNodesFindsRoot(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)

	var sources []uint64
	g.CallSourceNodes(func(node uint64) bool {
		sources = append(sources, node)
		return true
	}, nil)

	r.Contains(sources, uint64(1))
}

// S6-adjacent: find() reports membership by discovery fraction.
func TestFindDiscoveryFraction(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGTACGT", false)

	r.True(g.Find("ACGTACGT", 1.0))
	r.False(g.Find("TTTTTTTT", 0.5))
}

func TestFindEarlyStop(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)

	r.True(g.Find("ACGT", 0))
}
