package core

import (
	"context"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
)

// RosterColumn is the single column of the roster table.
const RosterColumn = schema.DefaultWorkerColumn

// RosterTable builds the roster table from names, trimmed and deduplicated.
func RosterTable(names []string) schema.Table {
	normalized := schema.NormalizeNames(names)
	table := schema.Table{
		Name:    schema.RosterTable,
		Columns: []schema.Column{{Name: RosterColumn, Type: schema.TextColumn}},
		Rows:    make([][]any, 0, len(normalized)),
	}
	for _, n := range normalized {
		table.Rows = append(table.Rows, []any{n})
	}
	return table
}

// SetRoster replaces the worker roster.
func SetRoster(ctx context.Context, store contract.RecordStore, names []string) (int, error) {
	table := RosterTable(names)
	if err := store.ReplaceTable(ctx, table); err != nil {
		return 0, err
	}
	return len(table.Rows), nil
}

// ListRoster returns the rostered workers in stored order.
func ListRoster(ctx context.Context, store contract.RecordStore) ([]string, error) {
	table, err := store.ReadTable(ctx, schema.RosterTable)
	if err != nil {
		return nil, err
	}
	idx := table.ColumnIndex(RosterColumn)
	if idx < 0 {
		return nil, &contract.SchemaMismatchError{Table: string(schema.RosterTable), Missing: []string{RosterColumn}}
	}
	names := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		if n := cellString(row[idx]); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}
