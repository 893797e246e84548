package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader"
)

// CSVTableLoader parses CSV files into tables. Raw content retrieval is
// delegated to the wrapped ByteLoader, which also provides caching.
type CSVTableLoader struct {
	loader loader.ByteLoader
}

// NewCSVTableLoader creates a new CSVTableLoader with the given byte loader.
func NewCSVTableLoader(loader loader.ByteLoader) *CSVTableLoader {
	return &CSVTableLoader{
		loader: loader,
	}
}

// GetTable retrieves and parses the CSV file content.
func (l *CSVTableLoader) GetTable(ctx context.Context, file loader.TableFile) (*loader.Table, error) {
	content, err := l.loader.GetFileBytes(ctx, file)
	if err != nil {
		return nil, err
	}

	return ParseTable(content)
}

// ParseTable parses CSV content into a Table. The first non-empty record is
// the header; empty cells and cells beyond a short record are treated as
// null (absent from the row map). Content with no records yields an empty
// table with no columns.
func ParseTable(content []byte) (*loader.Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	table := loader.NewTable()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if isEmptyRecord(record) {
			continue
		}

		if table.Columns == nil {
			columns := make([]string, len(record))
			for i, field := range record {
				columns[i] = strings.TrimSpace(field)
			}
			table.Columns = columns
			continue
		}

		row := make(loader.Row, len(table.Columns))
		for i, column := range table.Columns {
			if i >= len(record) {
				break
			}
			value := strings.TrimSpace(record[i])
			if value == "" {
				continue
			}
			row[column] = value
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
