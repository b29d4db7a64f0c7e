// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/bossgraph/boss/internal/bitset"
	"github.com/bossgraph/boss/internal/wavelet"
)

// On-disk layout (little-endian), per the on-disk graph layout
// external interface: F (sigma uint64s), k, state, then W and L each
// with their own small self-describing header (variant tag, sigma or
// n) followed by packed words. The symbol alphabet itself (the
// printable-character mapping) is not part of the layout; callers
// supply it to Load, the same way a decoder needs to be told V for a
// generic container.

// wireVariant mirrors State but is persisted independently per array,
// so a W-stream and an L-stream remain self-describing even if they
// are later handled apart from their Graph (e.g. BulkBuilder shard
// concatenation, which appends streams without decoding the
// surrounding Graph at all).
type wireVariant uint8

const (
	wireDyn wireVariant = iota
	wireStat
	wireSmall
)

func writeU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeF(w io.Writer, f []int) error {
	for _, v := range f {
		if err := writeU64(w, uint64(v)); err != nil {
			return err
		}
	}
	return nil
}

func readF(r io.Reader, sigma int) ([]int, error) {
	f := make([]int, sigma)
	for i := range f {
		v, err := readU64(r)
		if err != nil {
			return nil, wrapGraphError(CodeIOFailure, "reading F", err)
		}
		f[i] = int(v)
	}
	return f, nil
}

// writeSymbols serializes a packed symbol stream: variant, sigma
// (extended alphabet size), n (element count), then ceil(n*bits/64)
// packed words.
func writeSymbols(w io.Writer, variant wireVariant, sigmaExt int, symbols []int) error {
	if err := writeU64(w, uint64(variant)); err != nil {
		return err
	}
	if err := writeU64(w, uint64(sigmaExt)); err != nil {
		return err
	}
	if err := writeU64(w, uint64(len(symbols))); err != nil {
		return err
	}
	bitsPerSymbol := wavelet.BitsForAlphabet(sigmaExt)
	packed := wavelet.PackSymbols(symbols, bitsPerSymbol)
	if err := writeU64(w, uint64(len(packed))); err != nil {
		return err
	}
	for _, word := range packed {
		if err := writeU64(w, word); err != nil {
			return err
		}
	}
	return nil
}

func readSymbols(r io.Reader) (variant wireVariant, sigmaExt int, symbols []int, err error) {
	v, err := readU64(r)
	if err != nil {
		return 0, 0, nil, wrapGraphError(CodeIOFailure, "reading W header", err)
	}
	s, err := readU64(r)
	if err != nil {
		return 0, 0, nil, wrapGraphError(CodeIOFailure, "reading W header", err)
	}
	n, err := readU64(r)
	if err != nil {
		return 0, 0, nil, wrapGraphError(CodeIOFailure, "reading W header", err)
	}
	numWords, err := readU64(r)
	if err != nil {
		return 0, 0, nil, wrapGraphError(CodeIOFailure, "reading W header", err)
	}
	packed := make([]uint64, numWords)
	for i := range packed {
		word, err := readU64(r)
		if err != nil {
			return 0, 0, nil, wrapGraphError(CodeIOFailure, "reading W body", err)
		}
		packed[i] = word
	}
	bitsPerSymbol := wavelet.BitsForAlphabet(int(s))
	return wireVariant(v), int(s), wavelet.UnpackSymbols(packed, int(n), bitsPerSymbol), nil
}

// writeBits serializes a bit sequence: variant, n (bit count), word
// count, then the raw words.
func writeBits(w io.Writer, variant wireVariant, bits []bool) error {
	if err := writeU64(w, uint64(variant)); err != nil {
		return err
	}
	if err := writeU64(w, uint64(len(bits))); err != nil {
		return err
	}
	var b bitset.BitSet
	for i, v := range bits {
		b.Put(uint(i), v)
	}
	words := []uint64(b)
	if err := writeU64(w, uint64(len(words))); err != nil {
		return err
	}
	for _, word := range words {
		if err := writeU64(w, word); err != nil {
			return err
		}
	}
	return nil
}

func readBits(r io.Reader) (variant wireVariant, bits []bool, err error) {
	v, err := readU64(r)
	if err != nil {
		return 0, nil, wrapGraphError(CodeIOFailure, "reading L header", err)
	}
	n, err := readU64(r)
	if err != nil {
		return 0, nil, wrapGraphError(CodeIOFailure, "reading L header", err)
	}
	numWords, err := readU64(r)
	if err != nil {
		return 0, nil, wrapGraphError(CodeIOFailure, "reading L header", err)
	}
	words := make([]uint64, numWords)
	for i := range words {
		word, err := readU64(r)
		if err != nil {
			return 0, nil, wrapGraphError(CodeIOFailure, "reading L body", err)
		}
		words[i] = word
	}
	b := bitset.BitSet(words)
	bits = make([]bool, n)
	for i := range bits {
		bits[i] = b.Test(uint(i))
	}
	return wireVariant(v), bits, nil
}

func stateToWireVariant(s State) wireVariant {
	switch s {
	case STAT:
		return wireStat
	case SMALL:
		return wireSmall
	default:
		return wireDyn
	}
}

// Save writes the graph in the on-disk layout: F, k, state, W, L.
func (g *Graph) Save(w io.Writer) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	bw := bufio.NewWriter(w)

	if err := writeF(bw, g.F); err != nil {
		return wrapGraphError(CodeIOFailure, "writing F", err)
	}
	if err := writeU64(bw, uint64(g.k)); err != nil {
		return wrapGraphError(CodeIOFailure, "writing k", err)
	}
	if err := writeU64(bw, uint64(g.state)); err != nil {
		return wrapGraphError(CodeIOFailure, "writing state", err)
	}

	n := int(g.wseq().Len())
	symbols := make([]int, n)
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		symbols[i] = g.wseq().Get(i)
		bits[i] = g.lseq().Test(uint(i))
	}

	variant := stateToWireVariant(g.state)
	if err := writeSymbols(bw, variant, g.alphabet.ExtendedSize(), symbols); err != nil {
		return wrapGraphError(CodeIOFailure, "writing W", err)
	}
	if err := writeBits(bw, variant, bits); err != nil {
		return wrapGraphError(CodeIOFailure, "writing L", err)
	}

	if err := bw.Flush(); err != nil {
		return wrapGraphError(CodeIOFailure, "flushing graph file", err)
	}
	return nil
}

// Load reconstructs a Graph previously written by Save. The alphabet
// is not part of the wire format and must be supplied by the caller,
// matching the one the graph was built with.
func Load(r io.Reader, alphabet *Alphabet) (*Graph, error) {
	br := bufio.NewReader(r)

	f, err := readF(br, alphabet.Sigma())
	if err != nil {
		return nil, err
	}
	kRaw, err := readU64(br)
	if err != nil {
		return nil, wrapGraphError(CodeIOFailure, "reading k", err)
	}
	stateRaw, err := readU64(br)
	if err != nil {
		return nil, wrapGraphError(CodeIOFailure, "reading state", err)
	}

	_, sigmaExt, symbols, err := readSymbols(br)
	if err != nil {
		return nil, err
	}
	if sigmaExt != alphabet.ExtendedSize() {
		return nil, wrapGraphError(CodeIOFailure, "alphabet size mismatch", nil)
	}
	_, bits, err := readBits(br)
	if err != nil {
		return nil, err
	}
	if len(bits) != len(symbols) {
		return nil, newGraphError(CodeIOFailure, "W/L length mismatch")
	}

	var p uint64
	for i, c := range symbols {
		if c == 0 {
			p = uint64(i + 1)
			break
		}
	}

	g := FromArrays(alphabet, int(kRaw), symbols, bits, f, p)

	if State(stateRaw) != DYN {
		g.Transform(State(stateRaw))
	}
	return g, nil
}

// Chunk is one shard's worth of serialized graph arrays, as produced
// by a BulkBuilder worker for its suffix partition (external
// interfaces: files carrying the ".<shard-id>.chunk" suffix). Shards
// are concatenated at the stream level: W-streams and L-streams are
// appended end to end, F vectors summed elementwise.
type Chunk struct {
	F       []int
	K       int
	Symbols []int
	Bits    []bool
}

// WriteChunk serializes one shard in the same per-array format Save
// uses, without the top-level state field (a chunk is always DYN-
// shaped raw arrays; the finalizer decides the assembled graph's
// representation).
func WriteChunk(w io.Writer, c Chunk, sigmaExt int) error {
	bw := bufio.NewWriter(w)
	if err := writeF(bw, c.F); err != nil {
		return wrapGraphError(CodeIOFailure, "writing chunk F", err)
	}
	if err := writeU64(bw, uint64(c.K)); err != nil {
		return wrapGraphError(CodeIOFailure, "writing chunk k", err)
	}
	if err := writeSymbols(bw, wireDyn, sigmaExt, c.Symbols); err != nil {
		return wrapGraphError(CodeIOFailure, "writing chunk W", err)
	}
	if err := writeBits(bw, wireDyn, c.Bits); err != nil {
		return wrapGraphError(CodeIOFailure, "writing chunk L", err)
	}
	return bw.Flush()
}

// ReadChunk reads back a shard written by WriteChunk.
func ReadChunk(r io.Reader, sigma int) (Chunk, error) {
	br := bufio.NewReader(r)
	f, err := readF(br, sigma)
	if err != nil {
		return Chunk{}, err
	}
	kRaw, err := readU64(br)
	if err != nil {
		return Chunk{}, wrapGraphError(CodeIOFailure, "reading chunk k", err)
	}
	_, _, symbols, err := readSymbols(br)
	if err != nil {
		return Chunk{}, err
	}
	_, bits, err := readBits(br)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{F: f, K: int(kRaw), Symbols: symbols, Bits: bits}, nil
}

// ConcatenateChunks stacks shards already in final lexicographic
// shard order into one assembled (W, L, F) triple, the finalizer-side
// half of the stream-level concatenation external interfaces
// describes: append the W-streams, append the L-streams, sum F
// elementwise. p is set to the first sentinel edge found.
func ConcatenateChunks(chunks []Chunk) (symbols []int, bits []bool, f []int, p uint64) {
	if len(chunks) == 0 {
		return nil, nil, nil, 0
	}
	f = make([]int, len(chunks[0].F))
	for _, c := range chunks {
		for i, v := range c.F {
			f[i] += v
		}
		symbols = append(symbols, c.Symbols...)
		bits = append(bits, c.Bits...)
	}
	for i, c := range symbols {
		if c == 0 {
			p = uint64(i + 1)
			break
		}
	}
	return symbols, bits, f, p
}
