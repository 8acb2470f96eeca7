package recordstore

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/speedreport/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestionLog(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, ok, err := store.LastIngestion(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "fresh store has no ingestions")

	first := schema.IngestionRun{
		RunID:      "11111111-1111-1111-1111-111111111111",
		SourceFile: "jan.xlsx",
		Sheet:      "Sheet1",
		TableName:  string(schema.ProductionTable),
		RowCount:   10,
		IngestedAt: time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
	}
	second := schema.IngestionRun{
		RunID:      "22222222-2222-2222-2222-222222222222",
		SourceFile: "feb.csv",
		TableName:  string(schema.ProductionTable),
		RowCount:   12,
		IngestedAt: time.Date(2024, 2, 29, 8, 15, 30, 500000000, time.UTC),
	}
	require.NoError(t, store.RecordIngestion(ctx, second))
	require.NoError(t, store.RecordIngestion(ctx, first))

	last, ok, err := store.LastIngestion(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, last, "latest by ingestion time, not by insertion order")
}

func TestGetStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.ReplaceTable(ctx, productionTable(
		[]any{"2024-01-02", "A", "X", 10.0},
		[]any{"2024-01-03", "B", "X", 20.0},
	)))
	require.NoError(t, store.RecordIngestion(ctx, schema.IngestionRun{
		RunID:      "33333333-3333-3333-3333-333333333333",
		SourceFile: "mar.xlsx",
		TableName:  string(schema.ProductionTable),
		RowCount:   2,
		IngestedAt: time.Now(),
	}))

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, []schema.TableStatus{
		{Name: "brzina_radnika", Exists: true, RowCount: 2},
		{Name: "odabrani_radnici", Exists: false},
		{Name: "ingestion_runs", Exists: true, RowCount: 1},
	}, status.Tables)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, "mar.xlsx", status.LastRunSource)

	color.NoColor = true
	var buf bytes.Buffer
	PrintStoreStatus(&buf, status)
	out := buf.String()
	assert.Contains(t, out, "Store Backend: sqlite")
	assert.Contains(t, out, "Connected: true")
	assert.Contains(t, out, "brzina_radnika: 2 rows")
	assert.Contains(t, out, "odabrani_radnici: missing")
	assert.Contains(t, out, "Last Source: mar.xlsx")
}

func TestPrintStoreStatusDisconnected(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	PrintStoreStatus(&buf, schema.StoreStatus{Backend: "none"})
	assert.Equal(t, "Store Backend: none\nConnected: false\n", buf.String())
}
