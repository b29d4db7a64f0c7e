// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitset provides the three BitSequence variants the succinct
// graph is built from: BitSet (dynamic: insert/delete/set plus
// rank1/select1), Static (immutable, O(1) rank1, O(log n) select1),
// and Small (immutable, a smaller rank directory at a higher query
// constant). All three agree on the same rank1(0)=Test(0)?1:0 and
// select1(j)=n (one past the end) conventions when out of range.
package bitset
