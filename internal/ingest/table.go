package ingest

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
)

// buildTable turns raw rows into a typed table.
// The first non-empty row is the header; blank rows after it are skipped.
// A column is REAL when every non-empty cell parses as a number, otherwise TEXT.
// Columns named in textColumns are always TEXT.
func buildTable(path string, src source, textColumns ...string) (schema.Table, error) {
	var table schema.Table
	raw := src.rows

	start := slices.IndexFunc(raw, func(row []string) bool { return !blankRow(row) })
	if start < 0 {
		return table, &contract.InputFormatError{Path: path, Reason: "file has no header row"}
	}

	header := raw[start]
	for len(header) > 0 && strings.TrimSpace(header[len(header)-1]) == "" {
		header = header[:len(header)-1]
	}

	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Kolona %d", i+1)
		}
		if seen[name] {
			return table, &contract.InputFormatError{Path: path, Reason: fmt.Sprintf("duplicate column %q", name)}
		}
		seen[name] = true
		table.Columns = append(table.Columns, schema.Column{Name: name, Type: schema.RealColumn})
	}

	var cells [][]string
	for _, row := range raw[start+1:] {
		if blankRow(row) {
			continue
		}
		padded := make([]string, len(header))
		for i := range padded {
			if i < len(row) {
				padded[i] = strings.TrimSpace(row[i])
			}
		}
		cells = append(cells, padded)
	}

	for ci := range table.Columns {
		if slices.Contains(textColumns, table.Columns[ci].Name) {
			table.Columns[ci].Type = schema.TextColumn
			continue
		}
		for _, row := range cells {
			if row[ci] == "" {
				continue
			}
			if _, ok := parseNumber(row[ci], src.decimalComma); !ok {
				table.Columns[ci].Type = schema.TextColumn
				break
			}
		}
	}

	table.Rows = make([][]any, 0, len(cells))
	for _, row := range cells {
		values := make([]any, len(row))
		for ci, cell := range row {
			values[ci] = convertCell(cell, table.Columns[ci].Type, src.decimalComma)
		}
		table.Rows = append(table.Rows, values)
	}
	return table, nil
}

func convertCell(cell string, typ schema.ColumnType, decimalComma bool) any {
	if cell == "" {
		return nil
	}
	if typ == schema.RealColumn {
		v, _ := parseNumber(cell, decimalComma)
		return v
	}
	return cell
}

// parseNumber accepts finite floats, and a decimal comma ("12,5") when allowed.
func parseNumber(s string, decimalComma bool) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && decimalComma && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func missingColumns(table schema.Table, required []string) []string {
	var missing []string
	for _, name := range required {
		if table.ColumnIndex(name) < 0 {
			missing = append(missing, name)
		}
	}
	return missing
}

// requireNumeric rejects a speed column holding anything other than numbers.
func requireNumeric(path string, table schema.Table, column string, decimalComma bool) error {
	idx := table.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	for i, row := range table.Rows {
		switch v := row[idx].(type) {
		case nil:
			return &contract.InputFormatError{
				Path:   path,
				Reason: fmt.Sprintf("empty value in column %q at data row %d", column, i+1),
			}
		case string:
			if _, num := parseNumber(v, decimalComma); !num {
				return &contract.InputFormatError{
					Path:   path,
					Reason: fmt.Sprintf("non-numeric value %q in column %q at data row %d", v, column, i+1),
				}
			}
		}
	}
	return nil
}

// sortTable stably sorts rows by one column, ascending, with empty cells last.
func sortTable(table schema.Table, column string) error {
	idx := table.ColumnIndex(column)
	if idx < 0 {
		return fmt.Errorf("unknown sort column %q", column)
	}
	slices.SortStableFunc(table.Rows, func(a, b []any) int {
		return compareCells(a[idx], b[idx])
	})
	return nil
}

func compareCells(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			return cmp.Compare(af, bf)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
