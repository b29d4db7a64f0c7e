// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

import "strings"

// Alphabet encodes Σ: sigma regular symbols plus the sentinel $
// (always encoded 0). W takes values in the extended alphabet
// [0, 2*sigma): for c in [0,sigma), c+sigma marks an edge that is not
// the first-incoming at its target (I7).
type Alphabet struct {
	sigma   int
	symbols []byte // symbols[c] is the printable character for code c, c in [0,sigma)
	codeOf  [256]int8
}

// DNA is the reference nucleotide alphabet: $,A,C,G,T,N (sigma=6).
// Non-alphabet bytes are remapped to N (spec §7's BadInput handling).
var DNA = NewAlphabet("$ACGTN")

// AminoAcid is the reference protein alphabet (sigma=27): the
// sentinel plus the 20 standard residues, plus ambiguity codes
// B, J, O, U, X, Z.
var AminoAcid = NewAlphabet("$ACDEFGHIKLMNPQRSTVWYBJOUXZ")

// NewAlphabet builds an Alphabet from a string whose first byte must
// be the sentinel (conventionally '$', encoded 0) and whose remaining
// bytes are the regular symbols, encoded 1 onward. The sentinel counts
// toward sigma, so an n-byte string yields sigma=n.
func NewAlphabet(chars string) *Alphabet {
	a := &Alphabet{
		sigma:   len(chars),
		symbols: []byte(chars),
	}
	for i := range a.codeOf {
		a.codeOf[i] = -1
	}
	for c, ch := range []byte(chars) {
		a.codeOf[ch] = int8(c)
		a.codeOf[toLower(ch)] = int8(c)
	}
	return a
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Sigma returns the number of regular symbols, including the sentinel.
func (a *Alphabet) Sigma() int { return a.sigma }

// ExtendedSize returns 2*sigma, the size of W's extended alphabet.
func (a *Alphabet) ExtendedSize() int { return 2 * a.sigma }

// unknownCode is the fallback code used for BadInput bytes: the
// highest regular symbol (N for DNA, Z for AminoAcid),
// matching spec §7's "non-alphabet symbols ... silently remapped to N
// (or equivalent)".
func (a *Alphabet) unknownCode() int8 {
	return int8(a.sigma - 1)
}

// Encode maps a sequence of printable characters to symbol codes in
// [0, sigma). Bytes outside the alphabet are remapped to unknownCode
// and counted in badInputCount rather than treated as fatal.
func (a *Alphabet) Encode(seq string) (codes []int, badInputCount int) {
	codes = make([]int, len(seq))
	for i := 0; i < len(seq); i++ {
		c := a.codeOf[seq[i]]
		if c < 0 {
			c = a.unknownCode()
			badInputCount++
		}
		codes[i] = int(c)
	}
	return codes, badInputCount
}

// Decode maps symbol codes back to their printable form. Codes
// representing the first-incoming-marked extension ([sigma, 2*sigma))
// are folded back to their base symbol (c mod sigma) first.
func (a *Alphabet) Decode(codes []int) string {
	var sb strings.Builder
	sb.Grow(len(codes))
	for _, c := range codes {
		c = c % a.sigma
		if c < 0 || c >= len(a.symbols) {
			sb.WriteByte('?')
			continue
		}
		sb.WriteByte(a.symbols[c])
	}
	return sb.String()
}

// Base folds an extended-alphabet value back to [0, sigma).
func (a *Alphabet) Base(extended int) int { return extended % a.sigma }

// IsExtended reports whether an extended-alphabet value carries the
// first-incoming marker (c+sigma rather than c).
func (a *Alphabet) IsExtended(extended int) bool { return extended >= a.sigma }

// Extend returns the marked (c+sigma) form of a base symbol.
func (a *Alphabet) Extend(base int) int { return base + a.sigma }
