package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/recordstore"
	"github.com/huangsam/speedreport/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func productionTable(rows ...[]any) schema.Table {
	return schema.Table{
		Name: schema.ProductionTable,
		Columns: []schema.Column{
			{Name: "Ime", Type: schema.TextColumn},
			{Name: "Sirovina", Type: schema.TextColumn},
			{Name: "Brzina", Type: schema.RealColumn},
			{Name: "Datum", Type: schema.TextColumn},
		},
		Rows: rows,
	}
}

// exampleTable is the three-record example dataset.
func exampleTable() schema.Table {
	return productionTable(
		[]any{"A", "X", 10.0, "2024-03-01"},
		[]any{"B", "X", 20.0, "2024-03-01"},
		[]any{"A", "Y", 30.0, nil},
	)
}

func mockStoreWith(table schema.Table) *recordstore.MockRecordStore {
	store := &recordstore.MockRecordStore{}
	store.On("ReadTable", mock.Anything, schema.ProductionTable).Return(table, nil)
	return store
}

func TestMaterializeDataset(t *testing.T) {
	ds, err := MaterializeDataset(exampleTable(), schema.DefaultColumns())
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	assert.Equal(t, schema.Record{
		Worker:  "A",
		Process: "X",
		Speed:   10,
		Date:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}, ds.Records[0])
	assert.True(t, ds.Records[2].Date.IsZero())
}

func TestMaterializeDatasetMissingColumns(t *testing.T) {
	table := schema.Table{
		Name:    schema.ProductionTable,
		Columns: []schema.Column{{Name: "Ime", Type: schema.TextColumn}},
		Rows:    [][]any{{"A"}},
	}
	_, err := MaterializeDataset(table, schema.DefaultColumns())

	var mismatch *contract.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, string(schema.ProductionTable), mismatch.Table)
	assert.Equal(t, []string{"Sirovina", "Brzina"}, mismatch.Missing)
}

func TestMaterializeDatasetWithoutDateColumn(t *testing.T) {
	cols := schema.DefaultColumns()
	cols.Date = "Vrijeme"
	ds, err := MaterializeDataset(exampleTable(), cols)
	require.NoError(t, err)
	assert.True(t, ds.Records[0].Date.IsZero())
}

func TestMaterializeDatasetBadSpeed(t *testing.T) {
	table := productionTable([]any{"A", "X", "brzo", nil})
	_, err := MaterializeDataset(table, schema.DefaultColumns())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
	assert.Contains(t, err.Error(), "brzo")
}

func TestMaterializeDatasetCustomColumns(t *testing.T) {
	table := schema.Table{
		Name: schema.ProductionTable,
		Columns: []schema.Column{
			{Name: "Radnik", Type: schema.TextColumn},
			{Name: "Proces", Type: schema.TextColumn},
			{Name: "Komada", Type: schema.TextColumn},
		},
		Rows: [][]any{{"A", "X", " 12.5 "}},
	}
	ds, err := MaterializeDataset(table, schema.ColumnMapping{Worker: "Radnik", Process: "Proces", Speed: "Komada"})
	require.NoError(t, err)
	assert.Equal(t, 12.5, ds.Records[0].Speed)
}

func TestCellDate(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"iso", "2024-03-01", march},
		{"croatian", "01.03.2024.", march},
		{"croatian short", "1.3.2024", march},
		{"serial", 45352.0, march},
		{"garbage", "jučer", time.Time{}},
		{"nil", nil, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(cellDate(tt.in)), "got %v", cellDate(tt.in))
		})
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "Ana", cellString("Ana"))
	assert.Equal(t, "12.5", cellString(12.5))
	assert.Equal(t, "7", cellString(7))
}

func TestLoadDatasetStorageError(t *testing.T) {
	store := &recordstore.MockRecordStore{}
	notFound := &contract.StorageError{Op: "read", Table: schema.ProductionTable, Err: contract.ErrTableNotFound}
	store.On("ReadTable", mock.Anything, schema.ProductionTable).Return(schema.Table{}, notFound)

	_, err := LoadDataset(context.Background(), store, schema.DefaultColumns())
	assert.True(t, errors.Is(err, contract.ErrTableNotFound))
	store.AssertExpectations(t)
}

func TestSummary(t *testing.T) {
	summary, err := Summary(context.Background(), mockStoreWith(exampleTable()), schema.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, schema.DatasetSummary{
		Records:   3,
		Workers:   []string{"A", "B"},
		Processes: []string{"X", "Y"},
		MinSpeed:  10,
		MaxSpeed:  30,
		MeanSpeed: 20,
	}, summary)
}
