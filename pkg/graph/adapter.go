package graph

import (
	"context"
	"fmt"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/common"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader"
	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/logger"
)

// Adapter merges the two species-tagged ligand-receptor tables and derives
// graph nodes and edges from the result. Load reads and validates the
// sources once; Nodes and Edges are then pure functions of the loaded
// interactions and can be called any number of times.
//
// An Adapter should be created using NewAdapter.
type Adapter struct {
	human             loader.TableFile
	mouse             loader.TableFile
	skipNullEndpoints bool
	log               *logger.Logger

	interactions []common.Interaction
	loaded       bool
}

// NewAdapterParams defines the configuration parameters for creating a new
// Adapter.
//
// HumanFile and MouseFile are the two tabular sources; either may point to a
// nonexistent file, which is tolerated with a warning.
// SkipNullEndpoints drops rows with a null ligand or receptor cell from edge
// production instead of emitting an edge with an empty endpoint reference.
// The default (false) keeps the strict 1:1 row-to-edge mapping.
// Logger receives all diagnostics; nil discards them.
type NewAdapterParams struct {
	HumanFile         loader.TableFile
	MouseFile         loader.TableFile
	SkipNullEndpoints bool
	Logger            *logger.Logger
}

// NewAdapter creates and returns a new Adapter configured with the provided
// parameters.
func NewAdapter(params NewAdapterParams) *Adapter {
	return &Adapter{
		human:             params.HumanFile,
		mouse:             params.MouseFile,
		skipNullEndpoints: params.SkipNullEndpoints,
		log:               params.Logger,
	}
}

// Load reads both source tables, injects species tags where missing,
// concatenates them (human rows first), and validates the required columns.
// It must be called before Nodes, Edges, or Interactions.
//
// A missing source file is recovered locally with an empty table. A missing
// required column after the merge is fatal and returned as a
// *MissingColumnsError.
func (a *Adapter) Load(ctx context.Context) error {
	a.log.Info("Loading interaction tables")

	humanTable, err := a.loadSource(ctx, a.human, SpeciesHuman)
	if err != nil {
		return fmt.Errorf("failed to load human table: %w", err)
	}

	mouseTable, err := a.loadSource(ctx, a.mouse, SpeciesMouse)
	if err != nil {
		return fmt.Errorf("failed to load mouse table: %w", err)
	}

	merged := concatTables(humanTable, mouseTable)

	if err := validateColumns(merged); err != nil {
		return err
	}

	a.interactions = toInteractions(merged)
	a.loaded = true

	speciesCounts := make(map[string]int)
	for _, interaction := range a.interactions {
		if interaction.Species == "" {
			continue
		}
		speciesCounts[interaction.Species]++
	}

	a.log.Info("Loaded interactions", "rows", len(a.interactions), "species", len(speciesCounts))
	for species, count := range speciesCounts {
		a.log.Info("Species distribution", "species", species, "rows", count)
	}

	return nil
}

// Interactions returns the validated merged records in table order.
func (a *Adapter) Interactions() []common.Interaction {
	return a.interactions
}

type entityRecord struct {
	kind    common.EntityKind
	species string
}

// Nodes produces one node per syntactically distinct normalized identifier
// appearing in any ligand or receptor cell, in first-seen order. Null cells
// are skipped. When the same identifier reappears with a different species,
// the first-seen value wins and the conflict is only logged at debug level.
func (a *Adapter) Nodes() []common.Node {
	a.log.Info("Generating nodes")

	seen := make(map[string]entityRecord)
	order := make([]string, 0)

	for _, interaction := range a.interactions {
		for _, raw := range [2]string{interaction.Ligand, interaction.Receptor} {
			if raw == "" {
				continue
			}

			id, kind := NormalizeIdentifier(raw)

			record, ok := seen[id]
			if !ok {
				seen[id] = entityRecord{kind: kind, species: interaction.Species}
				order = append(order, id)
				continue
			}

			if record.species != interaction.Species {
				a.log.Debug(
					"Species mismatch for entity, keeping first-seen value",
					"id", id,
					"kept", record.species,
					"dropped", interaction.Species,
				)
			}
		}
	}

	nodes := make([]common.Node, 0, len(order))
	for _, id := range order {
		record := seen[id]
		nodes = append(nodes, common.Node{
			ID:    id,
			Label: string(record.kind),
			Props: map[string]string{ColumnSpecies: record.species},
		})
	}

	a.log.Info("Generated unique protein/complex nodes", "count", len(nodes))

	return nodes
}

// Edges produces one edge per interaction row. The edge id composes the
// normalized source id, normalized target id, species, and the row index,
// so duplicate (source, target, species) triples still get distinct ids.
// Properties carry the species plus every extra column of the row.
//
// With SkipNullEndpoints unset, rows with a null ligand or receptor still
// produce an edge whose endpoint reference is empty.
func (a *Adapter) Edges() []common.Edge {
	a.log.Info("Generating edges")

	edges := make([]common.Edge, 0, len(a.interactions))

	for idx, interaction := range a.interactions {
		if a.skipNullEndpoints && (interaction.Ligand == "" || interaction.Receptor == "") {
			a.log.Debug("Skipping interaction with null endpoint", "row", idx)
			continue
		}

		sourceID, _ := NormalizeIdentifier(interaction.Ligand)
		targetID, _ := NormalizeIdentifier(interaction.Receptor)

		props := make(map[string]string, len(interaction.Props)+1)
		props[ColumnSpecies] = interaction.Species
		for key, value := range interaction.Props {
			props[key] = value
		}

		edges = append(edges, common.Edge{
			ID:       fmt.Sprintf("%s_%s_%s_%d", sourceID, targetID, interaction.Species, idx),
			SourceID: sourceID,
			TargetID: targetID,
			Label:    common.EdgeLabelLigandReceptor,
			Props:    props,
		})
	}

	a.log.Info("Generated interaction edges", "count", len(edges))

	return edges
}
