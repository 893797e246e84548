package csv

import (
	"reflect"
	"testing"
)

func TestParseTable(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantColumns []string
		wantRows    []map[string]string
	}{
		{
			name:        "simple table",
			content:     "ligand,receptor,species\nTGFB1,TGFBR1,human\nBdnf,Ntrk2,mouse\n",
			wantColumns: []string{"ligand", "receptor", "species"},
			wantRows: []map[string]string{
				{"ligand": "TGFB1", "receptor": "TGFBR1", "species": "human"},
				{"ligand": "Bdnf", "receptor": "Ntrk2", "species": "mouse"},
			},
		},
		{
			name:        "empty cells become null",
			content:     "ligand,receptor\nTGFB1,\n,TGFBR1\n",
			wantColumns: []string{"ligand", "receptor"},
			wantRows: []map[string]string{
				{"ligand": "TGFB1"},
				{"receptor": "TGFBR1"},
			},
		},
		{
			name:        "short record leaves trailing cells null",
			content:     "ligand,receptor,evidence\nTGFB1,TGFBR1\n",
			wantColumns: []string{"ligand", "receptor", "evidence"},
			wantRows: []map[string]string{
				{"ligand": "TGFB1", "receptor": "TGFBR1"},
			},
		},
		{
			name:        "blank lines and whitespace skipped",
			content:     "\n ligand , receptor \n\n A , B \n",
			wantColumns: []string{"ligand", "receptor"},
			wantRows: []map[string]string{
				{"ligand": "A", "receptor": "B"},
			},
		},
		{
			name:        "empty content",
			content:     "",
			wantColumns: nil,
			wantRows:    nil,
		},
		{
			name:        "header only",
			content:     "ligand,receptor,species\n",
			wantColumns: []string{"ligand", "receptor", "species"},
			wantRows:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseTable([]byte(tt.content))
			if err != nil {
				t.Fatalf("ParseTable() error = %v", err)
			}

			if !reflect.DeepEqual(table.Columns, tt.wantColumns) {
				t.Errorf("Columns = %v, want %v", table.Columns, tt.wantColumns)
			}

			if len(table.Rows) != len(tt.wantRows) {
				t.Fatalf("got %d rows, want %d", len(table.Rows), len(tt.wantRows))
			}
			for i, want := range tt.wantRows {
				got := map[string]string(table.Rows[i])
				if !reflect.DeepEqual(got, map[string]string(want)) {
					t.Errorf("row %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestParseTableQuotedCells(t *testing.T) {
	content := "ligand,annotation\nTGFB1,\"binds, with high affinity\"\n"

	table, err := ParseTable([]byte(content))
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(table.Rows))
	}
	if got := table.Rows[0]["annotation"]; got != "binds, with high affinity" {
		t.Errorf("annotation = %q, want the quoted value intact", got)
	}
}
