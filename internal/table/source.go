package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/plandes/rend/internal/model"
)

// Rows is tabular data: the column header and the records under it
type Rows struct {
	Columns []string
	Records [][]string
}

// Source procures the tabular data served by a table server
type Source interface {
	// Name is the title of the rendered page
	Name() string

	// Rows creates or gets the cached data
	Rows() (*Rows, error)
}

// Extension returns the lower-cased file extension without its dot
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsSupportedPath returns whether the file can be rendered as a table
func IsSupportedPath(path string) bool {
	switch Extension(path) {
	case "csv", "tsv", "xlsx":
		return true
	}
	return false
}

// CachedSource serves in-memory rows, such as a single sheet read out of a
// workbook.
type CachedSource struct {
	name string
	rows *Rows
}

// NewCachedSource wraps already loaded rows as a source
func NewCachedSource(name string, rows *Rows) *CachedSource {
	return &CachedSource{name: name, rows: rows}
}

// Name returns the source name
func (s *CachedSource) Name() string {
	return s.name
}

// Rows returns the cached rows
func (s *CachedSource) Rows() (*Rows, error) {
	return s.rows, nil
}

// PathSource reads rows from a CSV or TSV file when first asked for them
type PathSource struct {
	path string
}

// NewPathSource creates a source reading from a delimited file
func NewPathSource(path string) *PathSource {
	return &PathSource{path: path}
}

// Name returns the file path the source reads from
func (s *PathSource) Name() string {
	return s.path
}

// Rows reads the file
func (s *PathSource) Rows() (*Rows, error) {
	ext := Extension(s.path)
	var comma rune
	switch ext {
	case "csv":
		comma = ','
	case "tsv":
		comma = '\t'
	default:
		return nil, fmt.Errorf("%w: unsupported extension: %s", model.ErrUnsupportedInput, ext)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return &Rows{}, nil
	}
	return &Rows{Columns: records[0], Records: records[1:]}, nil
}

// SourcesFromPath creates the sources for a tabular file: one cached source
// per sheet for Excel workbooks, otherwise a single lazy file source.
func SourcesFromPath(path string) ([]Source, error) {
	if Extension(path) != "xlsx" {
		return []Source{NewPathSource(path)}, nil
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer book.Close()

	var sources []Source
	for _, sheet := range book.GetSheetList() {
		records, err := book.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s of %s: %w", sheet, path, err)
		}
		rows := &Rows{}
		if len(records) > 0 {
			rows.Columns = records[0]
			rows.Records = records[1:]
		}
		sources = append(sources, NewCachedSource(sheet, rows))
	}
	return sources, nil
}
