package loader

import (
	"context"
	"errors"
	"slices"
)

// ErrTableNotFound is wrapped by byte loaders when the underlying file does
// not exist. Callers that tolerate a missing source check for it with
// errors.Is.
var ErrTableNotFound = errors.New("table file not found")

type TableFormat string

const (
	TableFormatCSV     TableFormat = "csv"
	TableFormatParquet TableFormat = "parquet"
)

// Row maps column name to cell value. A column absent from the map is a
// null cell; table-level column presence is tracked on the Table.
type Row map[string]string

// Table is an ordered collection of rows sharing a column set. It is the
// in-memory form of one tabular source file, and of the merged table after
// concatenation.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with no columns. Missing source files are
// substituted with it so processing can continue.
func NewTable() *Table {
	return &Table{}
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// SetConstantColumn adds the column with the given value on every row.
// Existing values are overwritten. Used to inject a literal species tag
// into tables that lack one.
func (t *Table) SetConstantColumn(name, value string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
	for _, row := range t.Rows {
		row[name] = value
	}
}

// TableFile represents one tabular source that can be loaded into a Table.
// The actual content is retrieved and parsed via the associated TableLoader.
type TableFile struct {
	ID       string
	FilePath string
	Format   TableFormat
	Loader   TableLoader
}

// NewTableFileParams defines the input parameters for creating a new
// TableFile instance. It is used by the constructor functions to initialize
// TableFile values with consistent metadata and loader configuration.
type NewTableFileParams struct {
	ID       string
	FilePath string
	Loader   TableLoader
}

// NewCSVTableFile creates a new TableFile of format TableFormatCSV.
func NewCSVTableFile(params NewTableFileParams) TableFile {
	return TableFile{
		ID:       params.ID,
		FilePath: params.FilePath,
		Format:   TableFormatCSV,
		Loader:   params.Loader,
	}
}

// NewParquetTableFile creates a new TableFile of format TableFormatParquet.
func NewParquetTableFile(params NewTableFileParams) TableFile {
	return TableFile{
		ID:       params.ID,
		FilePath: params.FilePath,
		Format:   TableFormatParquet,
		Loader:   params.Loader,
	}
}

// GetTable retrieves and parses the file content using its Loader.
func (f *TableFile) GetTable(ctx context.Context) (*Table, error) {
	return f.Loader.GetTable(ctx, *f)
}

// TableLoader defines the interface for loading a TableFile into a Table.
// Implementations parse one format and delegate raw content retrieval to a
// ByteLoader.
type TableLoader interface {
	GetTable(ctx context.Context, file TableFile) (*Table, error)
}

// ByteLoader defines the interface for retrieving the raw bytes of a
// TableFile. Implementations may load from disk, object storage, or other
// sources.
type ByteLoader interface {
	GetFileBytes(ctx context.Context, file TableFile) ([]byte, error)
}

// CacheKey builds the cache key under which loaders memoize file content.
func CacheKey(file TableFile) string {
	return file.ID + ":" + file.FilePath
}
