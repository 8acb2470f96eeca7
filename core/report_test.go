package core

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/internal/recordstore"
	"github.com/huangsam/speedreport/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	at := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
	return at
}

func labels(report schema.Report) []string {
	out := make([]string, len(report.Sections))
	for i, s := range report.Sections {
		out[i] = s.Label
	}
	return out
}

func TestGenerateReportExample(t *testing.T) {
	at := fixedNow(t)
	store := mockStoreWith(exampleTable())
	req := schema.ReportRequest{PerWorker: true, PerProcess: true}

	report, err := GenerateReport(context.Background(), store, req, schema.DefaultColumns())
	require.NoError(t, err)

	assert.Equal(t, schema.ReportTitle, report.Title)
	assert.Equal(t, at, report.GeneratedAt)
	require.Len(t, report.Sections, 2)

	assert.Equal(t, schema.Section{
		Label:   schema.LabelPerWorker,
		Columns: []string{"Ime", "Sirovina", schema.HeaderAverage},
		Rows:    [][]any{{"A", "X", 10.0}, {"B", "X", 20.0}, {"A", "Y", 30.0}},
	}, report.Sections[0])
	assert.Equal(t, schema.Section{
		Label:   schema.LabelPerProcess,
		Columns: []string{"Sirovina", schema.HeaderAverage},
		Rows:    [][]any{{"X", 15.0}, {"Y", 30.0}},
	}, report.Sections[1])
	store.AssertNumberOfCalls(t, "ReadTable", 1)
}

func TestGenerateReportSectionOrder(t *testing.T) {
	fixedNow(t)
	store := mockStoreWith(exampleTable())

	report, err := GenerateReport(context.Background(), store, schema.AllSections(), schema.DefaultColumns())
	require.NoError(t, err)

	assert.Equal(t, []string{
		schema.LabelPerWorker,
		schema.LabelPerProcess,
		schema.LabelDeviation,
		schema.LabelStdDev,
		schema.LabelBestAverage,
		"X" + schema.SuffixFastest,
		"Y" + schema.SuffixFastest,
		"X" + schema.SuffixSlowest,
		"Y" + schema.SuffixSlowest,
		"X" + schema.SuffixAllTime,
		"Y" + schema.SuffixAllTime,
		schema.LabelCounts,
	}, labels(report))
}

func TestGenerateReportFlagOrderDoesNotMatter(t *testing.T) {
	fixedNow(t)
	store := mockStoreWith(exampleTable())
	req := schema.ReportRequest{RecordCounts: true, StdDev: true, PerWorker: true}

	report, err := GenerateReport(context.Background(), store, req, schema.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, []string{schema.LabelPerWorker, schema.LabelStdDev, schema.LabelCounts}, labels(report))
}

func TestGenerateReportNoSections(t *testing.T) {
	fixedNow(t)
	report, err := GenerateReport(context.Background(), mockStoreWith(exampleTable()), schema.ReportRequest{}, schema.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, schema.ReportTitle, report.Title)
	assert.Empty(t, report.Sections)
}

func TestGenerateReportEmptyTable(t *testing.T) {
	fixedNow(t)
	report, err := GenerateReport(context.Background(), mockStoreWith(productionTable()), schema.AllSections(), schema.DefaultColumns())
	require.NoError(t, err)

	// Fixed sections stay, with no rows; per-process groups disappear.
	assert.Equal(t, []string{
		schema.LabelPerWorker,
		schema.LabelPerProcess,
		schema.LabelDeviation,
		schema.LabelStdDev,
		schema.LabelBestAverage,
		schema.LabelCounts,
	}, labels(report))
	for _, s := range report.Sections {
		assert.Empty(t, s.Rows, s.Label)
	}
}

func TestGenerateReportStdDevAndDeviation(t *testing.T) {
	fixedNow(t)
	store := mockStoreWith(exampleTable())
	req := schema.ReportRequest{Deviation: true, StdDev: true}

	report, err := GenerateReport(context.Background(), store, req, schema.DefaultColumns())
	require.NoError(t, err)
	require.Len(t, report.Sections, 2)

	deviation := report.Sections[0]
	assert.Equal(t, []any{"A", "X", 15.0, 10.0, -5.0}, deviation.Rows[0][:5])
	assert.InDelta(t, -33.333, deviation.Rows[0][5], 0.001)
	assert.Equal(t, []any{"B", "X", 15.0, 20.0, 5.0}, deviation.Rows[1][:5])
	assert.InDelta(t, 33.333, deviation.Rows[1][5], 0.001)
	assert.Equal(t, []any{"A", "Y", 30.0, 30.0, 0.0, 0.0}, deviation.Rows[2])

	stddev := report.Sections[1]
	assert.Equal(t, "X", stddev.Rows[0][0])
	assert.InDelta(t, 7.07, stddev.Rows[0][1], 0.001)
	assert.True(t, math.IsNaN(stddev.Rows[1][1].(float64)), "single measurement has no sample deviation")
}

func TestGenerateReportAllTimeDates(t *testing.T) {
	fixedNow(t)
	report, err := GenerateReport(context.Background(), mockStoreWith(exampleTable()), schema.ReportRequest{AllTimeBest: true}, schema.DefaultColumns())
	require.NoError(t, err)
	require.Len(t, report.Sections, 2)

	x := report.Sections[0]
	assert.Equal(t, []string{"Datum", "Ime", "Sirovina", "Brzina"}, x.Columns)
	assert.Equal(t, [][]any{{"2024-03-01", "B", "X", 20.0}, {"2024-03-01", "A", "X", 10.0}}, x.Rows)
	assert.Equal(t, [][]any{{nil, "A", "Y", 30.0}}, report.Sections[1].Rows)
}

func TestGenerateReportRosterOnly(t *testing.T) {
	fixedNow(t)
	store := mockStoreWith(exampleTable())
	store.On("ReadTable", mock.Anything, schema.RosterTable).Return(RosterTable([]string{"B"}), nil)
	req := schema.ReportRequest{PerProcess: true, RosterOnly: true}

	report, err := GenerateReport(context.Background(), store, req, schema.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"X", 20.0}}, report.Sections[0].Rows)
}

func TestGenerateReportRosterMissing(t *testing.T) {
	fixedNow(t)
	store := mockStoreWith(exampleTable())
	store.On("ReadTable", mock.Anything, schema.RosterTable).
		Return(schema.Table{}, &contract.StorageError{Op: "read", Table: schema.RosterTable, Err: contract.ErrTableNotFound})

	_, err := GenerateReport(context.Background(), store, schema.ReportRequest{PerProcess: true, RosterOnly: true}, schema.DefaultColumns())
	assert.True(t, contract.IsTableNotFound(err))
}

func TestGenerateReportSchemaMismatch(t *testing.T) {
	fixedNow(t)
	table := schema.Table{
		Name:    schema.ProductionTable,
		Columns: []schema.Column{{Name: "Ime", Type: schema.TextColumn}},
	}
	_, err := GenerateReport(context.Background(), mockStoreWith(table), schema.AllSections(), schema.DefaultColumns())

	var mismatch *contract.SchemaMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestGenerateReportCanceled(t *testing.T) {
	fixedNow(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds, err := MaterializeDataset(exampleTable(), schema.DefaultColumns())
	require.NoError(t, err)
	_, err = assembleReport(ctx, ds, schema.AllSections(), schema.DefaultColumns(), NewReportBuilder("", now()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateReportOnSQLite(t *testing.T) {
	fixedNow(t)
	ctx := context.Background()
	store, err := recordstore.NewRecordStore(schema.SQLiteBackend, t.TempDir()+"/speedreport.db")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.ReplaceTable(ctx, exampleTable()))
	report, err := GenerateReport(ctx, store, schema.ReportRequest{PerProcess: true}, schema.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"X", 15.0}, {"Y", 30.0}}, report.Sections[0].Rows)
}
