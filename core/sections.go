package core

import (
	"github.com/huangsam/speedreport/core/agg"
	"github.com/huangsam/speedreport/schema"
)

// sectionFunc computes one or more labeled sections from the dataset.
type sectionFunc func(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section

func workerAverageSection(label string, rows []schema.WorkerAverage, cols schema.ColumnMapping) schema.Section {
	s := schema.Section{
		Label:   label,
		Columns: []string{cols.Worker, cols.Process, schema.HeaderAverage},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []any{r.Worker, r.Process, r.Average})
	}
	return s
}

func processValueSection(label, header string, rows []schema.ProcessValue, cols schema.ColumnMapping) schema.Section {
	s := schema.Section{
		Label:   label,
		Columns: []string{cols.Process, header},
		Rows:    make([][]any, 0, len(rows)),
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []any{r.Process, r.Value})
	}
	return s
}

func perWorkerSections(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section {
	return []schema.Section{workerAverageSection(schema.LabelPerWorker, agg.AveragesPerPerson(ds), cols)}
}

func perProcessSections(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section {
	return []schema.Section{processValueSection(schema.LabelPerProcess, schema.HeaderAverage, agg.AveragesPerProcess(ds), cols)}
}

func stdDevSections(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section {
	return []schema.Section{processValueSection(schema.LabelStdDev, schema.HeaderStdDev, agg.StandardDeviationPerProcess(ds), cols)}
}

func deviationSections(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section {
	diffs := agg.CalculateDifference(ds)
	s := schema.Section{
		Label: schema.LabelDeviation,
		Columns: []string{
			cols.Worker, cols.Process,
			schema.HeaderProcessAverage, schema.HeaderWorkerSpeed,
			schema.HeaderDiff, schema.HeaderDiffPct,
		},
		Rows: make([][]any, 0, len(diffs)),
	}
	for _, d := range diffs {
		s.Rows = append(s.Rows, []any{d.Worker, d.Process, d.ProcessAverage, d.WorkerSpeed, d.Diff, d.DiffPct})
	}
	return []schema.Section{s}
}

// bestSections is the overall ranking followed by the fastest workers of each process.
func bestSections(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section {
	out := []schema.Section{workerAverageSection(schema.LabelBestAverage, agg.WorkerSpeedBestAverage(ds), cols)}
	for _, pw := range agg.SortWorkers(ds, false) {
		out = append(out, workerAverageSection(pw.Process+schema.SuffixFastest, pw.Workers, cols))
	}
	return out
}

func worstSections(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section {
	var out []schema.Section
	for _, pw := range agg.SortWorkers(ds, true) {
		out = append(out, workerAverageSection(pw.Process+schema.SuffixSlowest, pw.Workers, cols))
	}
	return out
}

func allTimeSections(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section {
	var out []schema.Section
	for _, pr := range agg.WorkerSpeedBestAllTime(ds) {
		s := schema.Section{
			Label:   pr.Process + schema.SuffixAllTime,
			Columns: []string{cols.Date, cols.Worker, cols.Process, cols.Speed},
			Rows:    make([][]any, 0, len(pr.Records)),
		}
		for _, r := range pr.Records {
			var date any
			if !r.Date.IsZero() {
				date = r.Date.Format(schema.DateLayout)
			}
			s.Rows = append(s.Rows, []any{date, r.Worker, r.Process, r.Speed})
		}
		out = append(out, s)
	}
	return out
}

func countSections(ds schema.Dataset, cols schema.ColumnMapping) []schema.Section {
	counts := agg.RecordCountsPerProcess(ds)
	s := schema.Section{
		Label:   schema.LabelCounts,
		Columns: []string{cols.Process, cols.Worker, schema.HeaderCount},
		Rows:    make([][]any, 0, len(counts)),
	}
	for _, c := range counts {
		s.Rows = append(s.Rows, []any{c.Process, c.Worker, c.Count})
	}
	return []schema.Section{s}
}
