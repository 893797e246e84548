package admin

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/common"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()

	writer, err := NewWriter(NewWriterParams{
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	return writer
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not open %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("could not parse %s: %v", path, err)
	}
	return records
}

func TestWriteNodesPerLabelFiles(t *testing.T) {
	writer := newTestWriter(t)

	nodes := []common.Node{
		{ID: "TGFB1", Label: "Protein", Props: map[string]string{"species": "human"}},
		{ID: "ITGA2_ITGB1", Label: "MacromolecularComplex", Props: map[string]string{"species": "human"}},
		{ID: "Ntrk2", Label: "Protein", Props: map[string]string{"species": "mouse"}},
	}

	if err := writer.WriteNodes(context.Background(), nodes); err != nil {
		t.Fatalf("WriteNodes() error = %v", err)
	}

	header := readCSVFile(t, filepath.Join(writer.RunDir(), "Protein-header.csv"))
	wantHeader := [][]string{{"id:ID", ":LABEL", "species"}}
	if !reflect.DeepEqual(header, wantHeader) {
		t.Errorf("Protein header = %v, want %v", header, wantHeader)
	}

	part := readCSVFile(t, filepath.Join(writer.RunDir(), "Protein-part000.csv"))
	wantPart := [][]string{
		{"TGFB1", "Protein", "human"},
		{"Ntrk2", "Protein", "mouse"},
	}
	if !reflect.DeepEqual(part, wantPart) {
		t.Errorf("Protein part = %v, want %v", part, wantPart)
	}

	complexPart := readCSVFile(t, filepath.Join(writer.RunDir(), "MacromolecularComplex-part000.csv"))
	if len(complexPart) != 1 || complexPart[0][0] != "ITGA2_ITGB1" {
		t.Errorf("complex part = %v, want the single complex node", complexPart)
	}
}

func TestWriteNodesPropColumnUnion(t *testing.T) {
	writer := newTestWriter(t)

	nodes := []common.Node{
		{ID: "A", Label: "Protein", Props: map[string]string{"species": "human"}},
		{ID: "B", Label: "Protein", Props: map[string]string{"species": "mouse", "symbol": "Bdnf"}},
	}

	if err := writer.WriteNodes(context.Background(), nodes); err != nil {
		t.Fatalf("WriteNodes() error = %v", err)
	}

	header := readCSVFile(t, filepath.Join(writer.RunDir(), "Protein-header.csv"))
	wantHeader := [][]string{{"id:ID", ":LABEL", "species", "symbol"}}
	if !reflect.DeepEqual(header, wantHeader) {
		t.Errorf("header = %v, want sorted prop union %v", header, wantHeader)
	}

	part := readCSVFile(t, filepath.Join(writer.RunDir(), "Protein-part000.csv"))
	// Node A has no symbol, so its cell stays empty.
	if part[0][3] != "" {
		t.Errorf("missing prop cell = %q, want empty", part[0][3])
	}
	if part[1][3] != "Bdnf" {
		t.Errorf("symbol cell = %q, want %q", part[1][3], "Bdnf")
	}
}

func TestWriteEdges(t *testing.T) {
	writer := newTestWriter(t)

	edges := []common.Edge{
		{
			ID:       "TGFB1_TGFBR1_human_0",
			SourceID: "TGFB1",
			TargetID: "TGFBR1",
			Label:    common.EdgeLabelLigandReceptor,
			Props:    map[string]string{"species": "human", "evidence": "curated"},
		},
	}

	if err := writer.WriteEdges(context.Background(), edges); err != nil {
		t.Fatalf("WriteEdges() error = %v", err)
	}

	base := filepath.Join(writer.RunDir(), common.EdgeLabelLigandReceptor)
	header := readCSVFile(t, base+"-header.csv")
	wantHeader := [][]string{{":START_ID", ":END_ID", ":TYPE", "id", "evidence", "species"}}
	if !reflect.DeepEqual(header, wantHeader) {
		t.Errorf("edge header = %v, want %v", header, wantHeader)
	}

	part := readCSVFile(t, base+"-part000.csv")
	wantPart := [][]string{
		{"TGFB1", "TGFBR1", common.EdgeLabelLigandReceptor, "TGFB1_TGFBR1_human_0", "curated", "human"},
	}
	if !reflect.DeepEqual(part, wantPart) {
		t.Errorf("edge part = %v, want %v", part, wantPart)
	}
}

func TestWriteImportCall(t *testing.T) {
	writer := newTestWriter(t)

	nodes := []common.Node{
		{ID: "A", Label: "Protein", Props: map[string]string{"species": "human"}},
	}
	edges := []common.Edge{
		{ID: "A_B_human_0", SourceID: "A", TargetID: "B", Label: common.EdgeLabelLigandReceptor},
	}

	if err := writer.WriteNodes(context.Background(), nodes); err != nil {
		t.Fatalf("WriteNodes() error = %v", err)
	}
	if err := writer.WriteEdges(context.Background(), edges); err != nil {
		t.Fatalf("WriteEdges() error = %v", err)
	}

	scriptPath, err := writer.WriteImportCall()
	if err != nil {
		t.Fatalf("WriteImportCall() error = %v", err)
	}

	content, err := os.ReadFile(scriptPath)
	if err != nil {
		t.Fatalf("could not read script: %v", err)
	}
	script := string(content)

	if !strings.Contains(script, "neo4j-admin database import full") {
		t.Error("script does not invoke neo4j-admin database import full")
	}
	if !strings.Contains(script, "Protein-header.csv") || !strings.Contains(script, "Protein-part000.csv") {
		t.Error("script does not reference the node header/part pair")
	}
	if !strings.Contains(script, "--relationships=") {
		t.Error("script does not reference the relationship files")
	}

	info, err := os.Stat(scriptPath)
	if err != nil {
		t.Fatalf("could not stat script: %v", err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Errorf("script mode = %v, want executable", info.Mode())
	}
}

func TestSanitizeFileLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Protein", "Protein"},
		{"MacromolecularComplex", "MacromolecularComplex"},
		{"has space/slash", "hasspaceslash"},
		{"///", "unnamed"},
	}

	for _, tt := range tests {
		if got := sanitizeFileLabel(tt.label); got != tt.want {
			t.Errorf("sanitizeFileLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
