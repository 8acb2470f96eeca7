package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/recordstore"
	"github.com/huangsam/speedreport/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: filepath.Join(t.TempDir(), "out.json"),
		Precision:  2,
		Title:      "Ožujak",
		Columns:    schema.DefaultColumns(),
	}
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestExecuteReportUsesConfiguredTitle(t *testing.T) {
	fixedNow(t)
	cfg := jsonConfig(t)
	cfg.Request = schema.ReportRequest{PerProcess: true}

	require.NoError(t, ExecuteReport(context.Background(), cfg, mockStoreWith(exampleTable())))

	var doc struct {
		Title    string `json:"title"`
		Sections []struct {
			Label string `json:"label"`
		} `json:"sections"`
	}
	readJSON(t, cfg.OutputFile, &doc)
	assert.Equal(t, "Ožujak", doc.Title)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, schema.LabelPerProcess, doc.Sections[0].Label)
}

func TestExecuteReportPropagatesStoreErrors(t *testing.T) {
	store := &recordstore.MockRecordStore{}
	store.On("ReadTable", mock.Anything, schema.ProductionTable).
		Return(schema.Table{}, &contract.StorageError{Op: "read", Table: schema.ProductionTable, Err: contract.ErrTableNotFound})

	cfg := jsonConfig(t)
	cfg.Request = schema.AllSections()
	err := ExecuteReport(context.Background(), cfg, store)
	assert.True(t, contract.IsTableNotFound(err))
	assert.Contains(t, err.Error(), "run 'ingest'")
	assert.NoFileExists(t, cfg.OutputFile, "nothing is written on failure")
}

func TestExecuteIngest(t *testing.T) {
	fixedNow(t)
	store := &recordstore.MockRecordStore{}
	store.On("ReplaceTable", mock.Anything, mock.Anything).Return(nil)
	store.On("RecordIngestion", mock.Anything, mock.Anything).Return(nil)

	cfg := jsonConfig(t)
	require.NoError(t, ExecuteIngest(context.Background(), cfg, store, writeFile(t, "brzine.csv", sampleCSV)))

	var run schema.IngestionRun
	readJSON(t, cfg.OutputFile, &run)
	assert.Equal(t, "brzine.csv", run.SourceFile)
	assert.Equal(t, 3, run.RowCount)
}

func TestExecuteListings(t *testing.T) {
	store := mockStoreWith(exampleTable())
	store.On("ReadTable", mock.Anything, schema.RosterTable).Return(RosterTable([]string{"B"}), nil)

	tests := []struct {
		name string
		exec ExecutorFunc
		want []string
	}{
		{"workers", ExecuteWorkers, []string{"A", "B"}},
		{"processes", ExecuteProcesses, []string{"X", "Y"}},
		{"roster", ExecuteRosterList, []string{"B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := jsonConfig(t)
			require.NoError(t, tt.exec(context.Background(), cfg, store))
			var got []string
			readJSON(t, cfg.OutputFile, &got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecuteSummary(t *testing.T) {
	cfg := jsonConfig(t)
	require.NoError(t, ExecuteSummary(context.Background(), cfg, mockStoreWith(exampleTable())))

	var summary schema.DatasetSummary
	readJSON(t, cfg.OutputFile, &summary)
	assert.Equal(t, 3, summary.Records)
	assert.Equal(t, 20.0, summary.MeanSpeed)
}
