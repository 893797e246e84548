package loader

import (
	"reflect"
	"testing"
)

func TestSetConstantColumn(t *testing.T) {
	table := NewTable()
	table.Columns = []string{"ligand", "receptor"}
	table.Rows = []Row{
		{"ligand": "A", "receptor": "B"},
		{"ligand": "C"},
	}

	table.SetConstantColumn("species", "human")

	if !reflect.DeepEqual(table.Columns, []string{"ligand", "receptor", "species"}) {
		t.Errorf("Columns = %v, want species appended", table.Columns)
	}
	for i, row := range table.Rows {
		if row["species"] != "human" {
			t.Errorf("row %d species = %q, want %q", i, row["species"], "human")
		}
	}

	// Applying again with a new value overwrites without duplicating the column.
	table.SetConstantColumn("species", "mouse")
	if !reflect.DeepEqual(table.Columns, []string{"ligand", "receptor", "species"}) {
		t.Errorf("Columns = %v, column was duplicated", table.Columns)
	}
	if table.Rows[0]["species"] != "mouse" {
		t.Errorf("species = %q, want overwritten value", table.Rows[0]["species"])
	}
}

func TestHasColumn(t *testing.T) {
	table := NewTable()
	if table.HasColumn("ligand") {
		t.Error("empty table reports a column")
	}

	table.Columns = []string{"ligand", "receptor"}
	if !table.HasColumn("receptor") {
		t.Error("HasColumn(receptor) = false, want true")
	}
	if table.HasColumn("species") {
		t.Error("HasColumn(species) = true, want false")
	}
}

func TestCacheKey(t *testing.T) {
	a := NewCSVTableFile(NewTableFileParams{ID: "human", FilePath: "data/a.csv"})
	b := NewCSVTableFile(NewTableFileParams{ID: "mouse", FilePath: "data/a.csv"})

	if CacheKey(a) == CacheKey(b) {
		t.Error("distinct file ids share a cache key")
	}
}
