package common

// EntityKind classifies an interaction endpoint by the shape of its raw
// identifier. The kind is a pure function of the identifier string and is
// computed independently wherever the identifier appears.
type EntityKind string

const (
	// EntityKindProtein marks a single-protein endpoint.
	EntityKindProtein EntityKind = "Protein"
	// EntityKindComplex marks a multi-subunit assembly, recognized by the
	// complex marker prefix or by subunit identifiers joined with an
	// internal separator (e.g. "EGFR_ERBB2").
	EntityKindComplex EntityKind = "MacromolecularComplex"
)

// EdgeLabelLigandReceptor is the relationship type of every produced edge.
const EdgeLabelLigandReceptor = "LigandReceptorInteraction"

// Interaction is one validated row of the merged ligand-receptor table.
// Ligand and Receptor hold raw identifier strings; an empty string marks a
// null cell in the source table. Props carries every extra column of the row.
type Interaction struct {
	Ligand   string
	Receptor string
	Species  string
	Props    map[string]string
}

// Node is a unique graph entity derived from the merged table.
// The tuple (ID, Label, Props) matches what the graph-import collaborator
// consumes.
type Node struct {
	ID    string
	Label string
	Props map[string]string
}

// Edge is a directed ligand-receptor interaction between two entities.
// SourceID and TargetID reference Node IDs; the 5-tuple
// (ID, SourceID, TargetID, Label, Props) matches the import format.
type Edge struct {
	ID       string
	SourceID string
	TargetID string
	Label    string
	Props    map[string]string
}
