package graph

import (
	"strings"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/common"
)

// ComplexMarkerPrefix is the literal marker some sources attach to composite
// identifiers (e.g. "COMPLEX:EGFR_ERBB2"). It is stripped during
// normalization.
const ComplexMarkerPrefix = "COMPLEX:"

// subunitSeparator joins subunit identifiers inside a composite identifier
// (e.g. "EGFR_ERBB2").
const subunitSeparator = "_"

// NormalizeIdentifier converts a raw endpoint identifier into its canonical
// form and classifies it. The complex marker prefix is stripped; the
// identifier is a complex when the marker was present or the stripped form
// still contains the subunit separator, otherwise a single protein.
//
// Both the node and edge producers go through this function, so node IDs and
// edge endpoint references can never diverge.
func NormalizeIdentifier(raw string) (string, common.EntityKind) {
	id, marked := strings.CutPrefix(raw, ComplexMarkerPrefix)
	if marked || strings.Contains(id, subunitSeparator) {
		return id, common.EntityKindComplex
	}
	return id, common.EntityKindProtein
}
