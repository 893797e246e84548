package parquet

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/marcboeker/go-duckdb" // Register DuckDB driver
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/pkg/loader"
)

// ParquetTableLoader parses Parquet files into tables by scanning them
// through an in-memory DuckDB instance. Raw content retrieval is delegated
// to the wrapped ByteLoader, so Parquet sources can live on disk or in
// object storage alike.
type ParquetTableLoader struct {
	loader loader.ByteLoader
}

// NewParquetTableLoader creates a new ParquetTableLoader with the given
// byte loader.
func NewParquetTableLoader(loader loader.ByteLoader) *ParquetTableLoader {
	return &ParquetTableLoader{
		loader: loader,
	}
}

// GetTable retrieves the Parquet file content and scans it into a Table.
//
// DuckDB's read_parquet only accepts a file path, so the content is staged
// in a temporary file for the duration of the scan.
func (l *ParquetTableLoader) GetTable(ctx context.Context, file loader.TableFile) (*loader.Table, error) {
	content, err := l.loader.GetFileBytes(ctx, file)
	if err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("nanoid: %w", err)
	}

	tmpPath := fmt.Sprintf("%s%cinteractions-%s.parquet", os.TempDir(), os.PathSeparator, id)
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return nil, fmt.Errorf("write parquet staging file: %w", err)
	}
	defer os.Remove(tmpPath)

	return scanParquet(ctx, tmpPath)
}

func scanParquet(ctx context.Context, path string) (*loader.Table, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer db.Close()

	// DuckDB is embedded; serial access is sufficient for a single scan.
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx, "SELECT * FROM read_parquet(?)", path)
	if err != nil {
		return nil, fmt.Errorf("failed to scan parquet: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := loader.NewTable()
	table.Columns = columns

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(loader.Row, len(columns))
		for i, column := range columns {
			cell, ok := formatCell(values[i])
			if !ok {
				continue
			}
			row[column] = cell
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

// formatCell renders a scanned DuckDB value as a string cell. The second
// return value is false for SQL NULL, which maps to an absent cell.
func formatCell(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case []byte:
		return string(v), true
	case bool:
		return strconv.FormatBool(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), true
	case time.Time:
		return v.Format(time.RFC3339), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
