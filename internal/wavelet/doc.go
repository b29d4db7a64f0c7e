// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package wavelet implements WaveletString, a sequence of symbols drawn
// from [0, 2σ) supporting get/rank/select in O(log σ) via a binary
// wavelet tree: one BitSequence per tree level, each bit routing its
// position left or right depending on one bit of the symbol.
//
// Three representations share the contract: a dynamic variant backed
// by internal/bitset.BitSet at every level (insert/delete/set), and two
// immutable variants (static and small) backed by internal/bitset's
// matching frozen BitSequence, built in one pass from packed symbols.
package wavelet
