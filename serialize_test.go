// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// R1: serialize then load then serialize is byte-identical in STAT
// mode.
func TestSaveLoadRoundTrip(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGTACGT", false)
	g.AddSequence("CCGTA", false)
	g.Transform(STAT)

	var buf bytes.Buffer
	r.NoError(g.Save(&buf))

	loaded, err := Load(bytes.NewReader(buf.Bytes()), DNA)
	r.NoError(err)
	r.True(g.EqualsInternally(loaded))

	var buf2 bytes.Buffer
	loaded.Transform(STAT)
	r.NoError(loaded.Save(&buf2))
	r.True(bytes.Equal(buf.Bytes(), buf2.Bytes()))
}

func TestLoadRejectsTruncated(t *testing.T) {
	r := require.New(t)

	g := NewGraph(DNA, 3)
	g.AddSequence("ACGT", false)

	var buf bytes.Buffer
	r.NoError(g.Save(&buf))

	truncated := buf.Bytes()[:buf.Len()-4]
	_, err := Load(bytes.NewReader(truncated), DNA)
	r.Error(err)
}

func TestChunkWriteReadRoundTrip(t *testing.T) {
	r := require.New(t)

	c := Chunk{
		F:       []int{0, 2, 4, 4, 5, 5},
		K:       3,
		Symbols: []int{0, 1, 2, 3, 4, 7},
		Bits:    []bool{true, false, true, true, true, true},
	}

	var buf bytes.Buffer
	r.NoError(WriteChunk(&buf, c, DNA.ExtendedSize()))

	got, err := ReadChunk(&buf, DNA.Sigma())
	r.NoError(err)
	r.Equal(c.F, got.F)
	r.Equal(c.Symbols, got.Symbols)
	r.Equal(c.Bits, got.Bits)
}

func TestConcatenateChunksSumsF(t *testing.T) {
	r := require.New(t)

	a := Chunk{F: []int{0, 1}, Symbols: []int{0, 2}, Bits: []bool{true, true}}
	b := Chunk{F: []int{0, 3}, Symbols: []int{0, 1}, Bits: []bool{true, true}}

	symbols, bits, f, p := ConcatenateChunks([]Chunk{a, b})
	r.Equal([]int{0, 2, 0, 1}, symbols)
	r.Equal([]bool{true, true, true, true}, bits)
	r.Equal([]int{0, 4}, f)
	r.EqualValues(1, p)
}
