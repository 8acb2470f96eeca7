package core

import (
	"context"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/parquet"
	"github.com/huangsam/speedreport/schema"
)

// ExportDataset writes the production dataset to a Parquet file and returns the row count.
func ExportDataset(ctx context.Context, store contract.RecordStore, cols schema.ColumnMapping, outputPath string) (int, error) {
	ds, err := LoadDataset(ctx, store, cols)
	if err != nil {
		return 0, err
	}
	if err := parquet.WriteRecordsParquet(parquet.FromDataset(ds), outputPath); err != nil {
		return 0, err
	}
	return ds.Len(), nil
}
