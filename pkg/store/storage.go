package store

import (
	"context"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/common"
)

// GraphWriter defines the interface for persisting the node and edge
// sequences produced by the interaction adapter. Implementations serialize
// to neo4j-admin bulk-import CSVs or push directly into a running database;
// each sequence is expected to be consumed exactly once per run.
type GraphWriter interface {
	WriteNodes(ctx context.Context, nodes []common.Node) error
	WriteEdges(ctx context.Context, edges []common.Edge) error
}
