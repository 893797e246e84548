package graph

import (
	"testing"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/common"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantID   string
		wantKind common.EntityKind
	}{
		{
			name:     "plain protein",
			raw:      "EGFR",
			wantID:   "EGFR",
			wantKind: common.EntityKindProtein,
		},
		{
			name:     "complex via marker prefix",
			raw:      "COMPLEX:P1_P2",
			wantID:   "P1_P2",
			wantKind: common.EntityKindComplex,
		},
		{
			name:     "complex via separator alone",
			raw:      "P1_P2",
			wantID:   "P1_P2",
			wantKind: common.EntityKindComplex,
		},
		{
			name:     "marker without separator still complex",
			raw:      "COMPLEX:ITGB1",
			wantID:   "ITGB1",
			wantKind: common.EntityKindComplex,
		},
		{
			name:     "three subunits",
			raw:      "ITGA2_ITGB1_CD47",
			wantID:   "ITGA2_ITGB1_CD47",
			wantKind: common.EntityKindComplex,
		},
		{
			name:     "empty identifier",
			raw:      "",
			wantID:   "",
			wantKind: common.EntityKindProtein,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotKind := NormalizeIdentifier(tt.raw)
			if gotID != tt.wantID {
				t.Errorf("NormalizeIdentifier(%q) id = %q, want %q", tt.raw, gotID, tt.wantID)
			}
			if gotKind != tt.wantKind {
				t.Errorf("NormalizeIdentifier(%q) kind = %q, want %q", tt.raw, gotKind, tt.wantKind)
			}
		})
	}
}

func TestNormalizeIdentifierColumnIndependence(t *testing.T) {
	// The classification of an identifier must not depend on where it was
	// observed, so normalizing twice has to agree with itself.
	for _, raw := range []string{"EGFR", "COMPLEX:P1_P2", "P1_P2", "TGFB1"} {
		id1, kind1 := NormalizeIdentifier(raw)
		id2, kind2 := NormalizeIdentifier(raw)
		if id1 != id2 || kind1 != kind2 {
			t.Errorf("NormalizeIdentifier(%q) is not deterministic: (%q,%q) vs (%q,%q)", raw, id1, kind1, id2, kind2)
		}
	}
}
