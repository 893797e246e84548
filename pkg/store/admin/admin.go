package admin

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/common"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/logger"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/store"
)

// Writer implements store.GraphWriter by serializing nodes and edges into
// CSV files consumable by `neo4j-admin database import`. Each run writes
// into its own directory so repeated builds never clobber each other.
//
// Per node label it writes `<Label>-header.csv` and `<Label>-part000.csv`;
// per edge label the same with :START_ID/:END_ID/:TYPE columns. The
// property column set of a label is the union of keys across its records,
// sorted; records missing a property get an empty cell.
type Writer struct {
	runDir string
	log    *logger.Logger

	nodeFiles []filePair
	edgeFiles []filePair
}

type filePair struct {
	header string
	part   string
}

// NewWriterParams defines the configuration parameters for creating a new
// Writer.
type NewWriterParams struct {
	OutputDir string
	Logger    *logger.Logger
}

// NewWriter creates a Writer and its per-run output directory under
// OutputDir.
func NewWriter(params NewWriterParams) (*Writer, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("nanoid: %w", err)
	}

	runDir := filepath.Join(params.OutputDir, "import-"+id)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Writer{
		runDir: runDir,
		log:    params.Logger,
	}, nil
}

// RunDir returns the per-run output directory.
func (w *Writer) RunDir() string {
	return w.runDir
}

// WriteNodes serializes the node sequence, one header/part CSV pair per
// label, preserving the order nodes were produced in.
func (w *Writer) WriteNodes(ctx context.Context, nodes []common.Node) error {
	byLabel, labels := groupNodes(nodes)

	for _, label := range labels {
		group := byLabel[label]
		propColumns := nodePropColumns(group)

		header := append([]string{"id:ID", ":LABEL"}, propColumns...)
		rows := make([][]string, 0, len(group))
		for _, node := range group {
			row := make([]string, 0, len(header))
			row = append(row, node.ID, node.Label)
			for _, column := range propColumns {
				row = append(row, node.Props[column])
			}
			rows = append(rows, row)
		}

		pair, err := w.writePair(label, header, rows)
		if err != nil {
			return fmt.Errorf("failed to write node files for label %s: %w", label, err)
		}
		w.nodeFiles = append(w.nodeFiles, pair)

		w.log.Info("Wrote node import files", "label", label, "count", len(group))
	}

	return nil
}

// WriteEdges serializes the edge sequence, one header/part CSV pair per
// relationship type. The edge id is carried as a plain property column.
func (w *Writer) WriteEdges(ctx context.Context, edges []common.Edge) error {
	byLabel, labels := groupEdges(edges)

	for _, label := range labels {
		group := byLabel[label]
		propColumns := edgePropColumns(group)

		header := append([]string{":START_ID", ":END_ID", ":TYPE", "id"}, propColumns...)
		rows := make([][]string, 0, len(group))
		for _, edge := range group {
			row := make([]string, 0, len(header))
			row = append(row, edge.SourceID, edge.TargetID, edge.Label, edge.ID)
			for _, column := range propColumns {
				row = append(row, edge.Props[column])
			}
			rows = append(rows, row)
		}

		pair, err := w.writePair(label, header, rows)
		if err != nil {
			return fmt.Errorf("failed to write edge files for label %s: %w", label, err)
		}
		w.edgeFiles = append(w.edgeFiles, pair)

		w.log.Info("Wrote edge import files", "label", label, "count", len(group))
	}

	return nil
}

// WriteImportCall generates the neo4j-admin import shell script referencing
// every header/part pair written so far, and returns its path.
func (w *Writer) WriteImportCall() (string, error) {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	b.WriteString("neo4j-admin database import full \\\n")
	b.WriteString("  --delimiter=\",\" --array-delimiter=\";\" --quote='\"' \\\n")

	for _, pair := range w.nodeFiles {
		fmt.Fprintf(&b, "  --nodes=%q \\\n", pair.header+","+pair.part)
	}
	for _, pair := range w.edgeFiles {
		fmt.Fprintf(&b, "  --relationships=%q \\\n", pair.header+","+pair.part)
	}
	b.WriteString("  neo4j\n")

	scriptPath := filepath.Join(w.runDir, "neo4j-admin-import-call.sh")
	if err := os.WriteFile(scriptPath, []byte(b.String()), 0o755); err != nil {
		return "", fmt.Errorf("failed to write import call script: %w", err)
	}

	w.log.Info("Wrote import call script", "path", scriptPath)

	return scriptPath, nil
}

func (w *Writer) writePair(label string, header []string, rows [][]string) (filePair, error) {
	safe := sanitizeFileLabel(label)
	pair := filePair{
		header: filepath.Join(w.runDir, safe+"-header.csv"),
		part:   filepath.Join(w.runDir, safe+"-part000.csv"),
	}

	if err := writeCSV(pair.header, [][]string{header}); err != nil {
		return filePair{}, err
	}
	if err := writeCSV(pair.part, rows); err != nil {
		return filePair{}, err
	}

	return pair, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	writer.Flush()

	return writer.Error()
}

func groupNodes(nodes []common.Node) (map[string][]common.Node, []string) {
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

func groupEdges(edges []common.Edge) (map[string][]common.Edge, []string) {
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

func nodePropColumns(nodes []common.Node) []string {
	keys := make([]string, 0)
	for _, node := range nodes {
		for key := range node.Props {
			keys = append(keys, key)
		}
	}
	columns := store.DedupeStrings(keys)
	sort.Strings(columns)
	return columns
}

func edgePropColumns(edges []common.Edge) []string {
	keys := make([]string, 0)
	for _, edge := range edges {
		for key := range edge.Props {
			keys = append(keys, key)
		}
	}
	columns := store.DedupeStrings(keys)
	sort.Strings(columns)
	return columns
}

func sanitizeFileLabel(label string) string {
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}
