package graph

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/common"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader"
)

// Column names every merged table must carry.
const (
	ColumnLigand   = "ligand"
	ColumnReceptor = "receptor"
	ColumnSpecies  = "species"
)

// Species tags injected into sources that lack a species column.
const (
	SpeciesHuman = "human"
	SpeciesMouse = "mouse"
)

// RequiredColumns lists the columns validated once after the merge.
var RequiredColumns = []string{ColumnLigand, ColumnReceptor, ColumnSpecies}

// MissingColumnsError reports required columns absent from the merged table.
// It carries the full set of columns actually present so the failure is
// diagnosable from the message alone.
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf(
		"missing required columns: [%s], found columns: [%s]",
		strings.Join(e.Missing, ", "),
		strings.Join(e.Found, ", "),
	)
}

// loadSource loads one species-tagged table. A missing file is logged as a
// warning and substituted with an empty table. A loaded table without a
// species column gets the literal species value injected on every row.
func (a *Adapter) loadSource(ctx context.Context, file loader.TableFile, species string) (*loader.Table, error) {
	table, err := file.GetTable(ctx)
	if err != nil {
		if errors.Is(err, loader.ErrTableNotFound) {
			a.log.Warn("Source table not found, skipping", "path", file.FilePath, "species", species)
			return loader.NewTable(), nil
		}
		return nil, err
	}

	if !table.HasColumn(ColumnSpecies) {
		table.SetConstantColumn(ColumnSpecies, species)
	}

	return table, nil
}

// concatTables concatenates the human and mouse tables into one. The column
// set is the union of both, human columns first; row order is human rows
// followed by mouse rows. Cells for columns a row never had stay null.
func concatTables(human, mouse *loader.Table) *loader.Table {
	merged := loader.NewTable()

	merged.Columns = slices.Clone(human.Columns)
	for _, column := range mouse.Columns {
		if !merged.HasColumn(column) {
			merged.Columns = append(merged.Columns, column)
		}
	}

	merged.Rows = make([]loader.Row, 0, len(human.Rows)+len(mouse.Rows))
	merged.Rows = append(merged.Rows, human.Rows...)
	merged.Rows = append(merged.Rows, mouse.Rows...)

	return merged
}

// validateColumns fails when any required column is absent from the merged
// table. Null values in required cells are not checked here; the node
// producer skips them row by row.
func validateColumns(table *loader.Table) error {
	var missing []string
	for _, column := range RequiredColumns {
		if !table.HasColumn(column) {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{
			Missing: missing,
			Found:   slices.Clone(table.Columns),
		}
	}

	return nil
}

// toInteractions converts validated merged rows into explicit interaction
// records. Extra columns are carried through as properties; null identifier
// cells become empty strings.
func toInteractions(table *loader.Table) []common.Interaction {
	interactions := make([]common.Interaction, 0, len(table.Rows))

	for _, row := range table.Rows {
		interaction := common.Interaction{
			Ligand:   row[ColumnLigand],
			Receptor: row[ColumnReceptor],
			Species:  row[ColumnSpecies],
		}

		for _, column := range table.Columns {
			if column == ColumnLigand || column == ColumnReceptor || column == ColumnSpecies {
				continue
			}
			value, ok := row[column]
			if !ok {
				continue
			}
			if interaction.Props == nil {
				interaction.Props = make(map[string]string)
			}
			interaction.Props[column] = value
		}

		interactions = append(interactions, interaction)
	}

	return interactions
}
