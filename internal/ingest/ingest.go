// Package ingest reads spreadsheet files into normalized tables.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
)

// Supported input extensions.
const (
	ExtXLSX = ".xlsx"
	ExtCSV  = ".csv"
)

// Options controls how a file becomes a table.
type Options struct {
	Sheet   string               // Sheet name for workbooks; first sheet when empty
	SortBy  string               // Optional column to stably sort rows by
	Columns schema.ColumnMapping // Required columns and the speed column to validate
}

// source is the raw cell grid of one file.
type source struct {
	rows         [][]string
	sheet        string
	decimalComma bool // "12,5" is read as 12.5; CSV exports only
}

// Result is a file converted into a table ready for the store.
type Result struct {
	Table schema.Table
	Sheet string // Sheet the rows came from; empty for CSV
}

// SupportedFile reports whether the path has a supported extension.
func SupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtXLSX, ExtCSV:
		return true
	}
	return false
}

// ReadFile reads a spreadsheet into a production table. Nothing is written anywhere;
// any error here means the store must stay untouched.
func ReadFile(path string, opts Options) (Result, error) {
	var res Result

	src, err := readRows(path, opts.Sheet)
	if err != nil {
		return res, err
	}
	res.Sheet = src.sheet

	// Worker and process are identities, "007" must stay "007"
	table, err := buildTable(path, src, opts.Columns.Worker, opts.Columns.Process)
	if err != nil {
		return res, err
	}
	table.Name = schema.ProductionTable

	if missing := missingColumns(table, opts.Columns.Required()); len(missing) > 0 {
		return res, &contract.SchemaMismatchError{Table: filepath.Base(path), Missing: missing}
	}
	if err := requireNumeric(path, table, opts.Columns.Speed, src.decimalComma); err != nil {
		return res, err
	}
	if opts.SortBy != "" {
		if err := sortTable(table, opts.SortBy); err != nil {
			return res, &contract.SchemaMismatchError{Table: filepath.Base(path), Missing: []string{opts.SortBy}}
		}
	}

	res.Table = table
	return res, nil
}

// ReadNames reads the non-empty values of one column, e.g. a worker roster export.
func ReadNames(path, sheet, column string) ([]string, error) {
	src, err := readRows(path, sheet)
	if err != nil {
		return nil, err
	}
	table, err := buildTable(path, src, column)
	if err != nil {
		return nil, err
	}
	idx := table.ColumnIndex(column)
	if idx < 0 {
		return nil, &contract.SchemaMismatchError{Table: filepath.Base(path), Missing: []string{column}}
	}

	var names []string
	for _, row := range table.Rows {
		if v, ok := row[idx].(string); ok {
			names = append(names, v)
		} else if row[idx] != nil {
			names = append(names, fmt.Sprint(row[idx]))
		}
	}
	return names, nil
}

// readRows dispatches on the file extension.
func readRows(path, sheet string) (source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtXLSX:
		rows, name, err := readXLSX(path, sheet)
		return source{rows: rows, sheet: name}, err
	case ExtCSV:
		rows, err := readCSV(path)
		return source{rows: rows, decimalComma: true}, err
	default:
		return source{}, &contract.InputFormatError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported file type %q (expected %s or %s)", filepath.Ext(path), ExtXLSX, ExtCSV),
		}
	}
}
