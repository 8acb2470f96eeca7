package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/speedreport/core/agg"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order when a date cell holds text.
var dateLayouts = []string{
	schema.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02.01.2006.",
	"02.01.2006",
	"2.1.2006.",
	"2.1.2006",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
}

// LoadDataset reads the production table once and materializes it.
func LoadDataset(ctx context.Context, store contract.RecordStore, cols schema.ColumnMapping) (schema.Dataset, error) {
	table, err := store.ReadTable(ctx, schema.ProductionTable)
	if err != nil {
		return schema.Dataset{}, err
	}
	return MaterializeDataset(table, cols)
}

// MaterializeDataset turns a stored table into records. All required columns must be
// present before any row is converted.
func MaterializeDataset(table schema.Table, cols schema.ColumnMapping) (schema.Dataset, error) {
	var ds schema.Dataset

	var missing []string
	for _, name := range cols.Required() {
		if table.ColumnIndex(name) < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return ds, &contract.SchemaMismatchError{Table: string(table.Name), Missing: missing}
	}

	workerIdx := table.ColumnIndex(cols.Worker)
	processIdx := table.ColumnIndex(cols.Process)
	speedIdx := table.ColumnIndex(cols.Speed)
	dateIdx := -1
	if cols.Date != "" {
		dateIdx = table.ColumnIndex(cols.Date)
	}

	ds.Records = make([]schema.Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		speed, err := cellFloat(row[speedIdx])
		if err != nil {
			return schema.Dataset{}, fmt.Errorf("%s row %d column %s: %w", table.Name, i+1, cols.Speed, err)
		}
		r := schema.Record{
			Worker:  cellString(row[workerIdx]),
			Process: cellString(row[processIdx]),
			Speed:   speed,
		}
		if dateIdx >= 0 {
			r.Date = cellDate(row[dateIdx])
		}
		ds.Records = append(ds.Records, r)
	}
	return ds, nil
}

// Summary describes the stored dataset.
func Summary(ctx context.Context, store contract.RecordStore, cols schema.ColumnMapping) (schema.DatasetSummary, error) {
	ds, err := LoadDataset(ctx, store, cols)
	if err != nil {
		return schema.DatasetSummary{}, err
	}
	return agg.Summarize(ds), nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func cellFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric speed %q", x)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("missing speed")
	default:
		return 0, fmt.Errorf("unexpected speed type %T", v)
	}
}

// cellDate parses text dates and spreadsheet serial numbers. Anything else is the zero time.
func cellDate(v any) time.Time {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	case float64:
		if t, err := excelize.ExcelDateToTime(x, false); err == nil {
			return t
		}
	}
	return time.Time{}
}
