// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package boss

// LabelSource is the contract the core consumes to resolve a label
// id into the information a taxonomic classifier needs (LCA over an
// RMQ on a DFS linearization of the taxonomy tree); the classifier
// itself is out of scope, only this narrow interface is specified.
type LabelSource interface {
	// TaxID returns the taxonomic id associated with a label, or 0 if
	// the label carries no taxonomic annotation.
	TaxID(labelID int) uint64

	// ParentTaxID returns the taxonomic id's parent in the taxonomy
	// tree, or 0 at the root, the primitive a classifier needs to
	// walk toward a least-common-ancestor.
	ParentTaxID(taxID uint64) uint64

	// Name returns the human-readable name of a label, for
	// diagnostics and CLI output (the `stats` command's F histogram
	// and dummy counts report alongside label names when a
	// LabelSource is attached).
	Name(labelID int) string
}
