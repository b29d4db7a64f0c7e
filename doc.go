// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package boss provides a succinct de Bruijn graph engine for very
// large k-mer sets: sequences are decomposed into (k+1)-mers, packed
// into a compressed representation based on the Burrows-Wheeler
// transform of the edge multiset (the BOSS representation: the arrays
// W, L, F plus a distinguished terminal index p), and queried for
// k-mer membership, node/edge traversal, and approximate matching.
//
// A Graph offers three representations of the same contract:
//
//   - DYN:   a dynamic, mutable graph -- append_pos, insert_edge,
//     erase_edges all run against internal/bitset.BitSet- and
//     internal/wavelet.Dynamic-backed arrays.
//   - STAT:  a static, query-only graph -- O(1) rank, minimum space.
//   - SMALL: a static, query-only graph with a coarser rank directory,
//     trading a larger query constant for smaller footprint.
//
// Building from a corpus is handled by the builder subpackage
// (suffix-sharded parallel construction); decomposing a finished graph
// into paths, unitigs, and sequences is handled by CallPaths,
// CallUnitigs and CallSequences.
package boss
