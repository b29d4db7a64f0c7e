// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

// Equaler lets an annotation label value decide its own equality.
// No code in this module calls it: the bulk build's dedup merges
// plain int label ids and does not compare label values.
type Equaler[V any] interface {
	Equal(other V) bool
}
