package neo4j

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/common"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/logger"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/store"
)

const defaultBatchSize = 500

// Writer implements store.GraphWriter by pushing nodes and edges into a
// running Neo4j database through managed transactions. Records are written
// in UNWIND batches; nodes are merged on their id, relationships on their
// edge id, so re-running an import is safe.
type Writer struct {
	driver    neo4j.DriverWithContext
	dbName    string
	batchSize int
	log       *logger.Logger
}

// NewWriterParams defines the configuration parameters for creating a new
// Writer.
type NewWriterParams struct {
	URI       string
	Username  string
	Password  string
	Database  string
	BatchSize int
	Logger    *logger.Logger
}

// NewWriter creates a Writer and verifies connectivity to the database.
func NewWriter(ctx context.Context, params NewWriterParams) (*Writer, error) {
	driver, err := neo4j.NewDriverWithContext(params.URI, neo4j.BasicAuth(params.Username, params.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Writer{
		driver:    driver,
		dbName:    params.Database,
		batchSize: batchSize,
		log:       params.Logger,
	}, nil
}

// Close releases the underlying driver.
func (w *Writer) Close(ctx context.Context) error {
	return w.driver.Close(ctx)
}

// Reset deletes all data in the graph.
func (w *Writer) Reset(ctx context.Context) error {
	session := w.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: w.dbName})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
	})
	return err
}

// WriteNodes merges the node sequence into the database, batched per label.
func (w *Writer) WriteNodes(ctx context.Context, nodes []common.Node) error {
	session := w.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: w.dbName})
	defer session.Close(ctx)

	byLabel, labels := groupNodesByLabel(nodes)

	for _, label := range labels {
		group := byLabel[label]

		// Cypher cannot parameterize labels, so the sanitized label is
		// interpolated into the query text.
		query := fmt.Sprintf(
			"UNWIND $rows AS row MERGE (n:%s {id: row.id}) SET n += row.props",
			sanitizeLabel(label),
		)

		err := store.ChunkRange(len(group), w.batchSize, func(start, end int) error {
			rows := make([]map[string]any, 0, end-start)
			for _, node := range group[start:end] {
				rows = append(rows, map[string]any{
					"id":    node.ID,
					"props": propsToParams(node.Props),
				})
			}

			_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
				return tx.Run(ctx, query, map[string]any{"rows": rows})
			})
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to write nodes with label %s: %w", label, err)
		}

		w.log.Info("Wrote nodes", "label", label, "count", len(group))
	}

	return nil
}

// WriteEdges merges the edge sequence into the database, batched per
// relationship type. Endpoints that were never written as nodes produce no
// relationship (the MATCH finds nothing), mirroring bulk-import behavior
// for dangling references.
func (w *Writer) WriteEdges(ctx context.Context, edges []common.Edge) error {
	session := w.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: w.dbName})
	defer session.Close(ctx)

	byLabel, labels := groupEdgesByLabel(edges)

	for _, label := range labels {
		group := byLabel[label]

		query := fmt.Sprintf(
			"UNWIND $rows AS row "+
				"MATCH (s {id: row.source}) MATCH (t {id: row.target}) "+
				"MERGE (s)-[r:%s {id: row.id}]->(t) SET r += row.props",
			sanitizeLabel(label),
		)

		err := store.ChunkRange(len(group), w.batchSize, func(start, end int) error {
			rows := make([]map[string]any, 0, end-start)
			for _, edge := range group[start:end] {
				rows = append(rows, map[string]any{
					"id":     edge.ID,
					"source": edge.SourceID,
					"target": edge.TargetID,
					"props":  propsToParams(edge.Props),
				})
			}

			_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
				return tx.Run(ctx, query, map[string]any{"rows": rows})
			})
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to write edges with label %s: %w", label, err)
		}

		w.log.Info("Wrote edges", "label", label, "count", len(group))
	}

	return nil
}

func propsToParams(props map[string]string) map[string]any {
	params := make(map[string]any, len(props))
	for key, value := range props {
		params[key] = value
	}
	return params
}

func groupNodesByLabel(nodes []common.Node) (map[string][]common.Node, []string) {
	byLabel := make(map[string][]common.Node)
	order := make([]string, 0)
	for _, node := range nodes {
		if _, ok := byLabel[node.Label]; !ok {
			order = append(order, node.Label)
		}
		byLabel[node.Label] = append(byLabel[node.Label], node)
	}
	return byLabel, order
}

func groupEdgesByLabel(edges []common.Edge) (map[string][]common.Edge, []string) {
	byLabel := make(map[string][]common.Edge)
	order := make([]string, 0)
	for _, edge := range edges {
		if _, ok := byLabel[edge.Label]; !ok {
			order = append(order, edge.Label)
		}
		byLabel[edge.Label] = append(byLabel[edge.Label], edge)
	}
	return byLabel, order
}

func sanitizeLabel(label string) string {
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Entity"
	}
	return b.String()
}
