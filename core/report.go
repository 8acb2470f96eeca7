package core

import (
	"context"
	"time"

	"github.com/huangsam/speedreport/core/agg"
	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// now is replaced in tests.
var now = time.Now

// sectionTask pairs a request flag with the sections it produces.
type sectionTask struct {
	enabled bool
	build   sectionFunc
}

// GenerateReport reads the production table once and assembles the requested sections
// in a fixed order. A request with no sections yields a report with only a title.
func GenerateReport(ctx context.Context, store contract.RecordStore, req schema.ReportRequest, cols schema.ColumnMapping) (schema.Report, error) {
	generatedAt := now()

	ds, err := LoadDataset(ctx, store, cols)
	if err != nil {
		return schema.Report{}, err
	}
	if req.RosterOnly {
		names, err := ListRoster(ctx, store)
		if err != nil {
			return schema.Report{}, err
		}
		ds = agg.FilterWorkers(ds, names)
	}

	return assembleReport(ctx, ds, req, cols, NewReportBuilder(schema.ReportTitle, generatedAt))
}

// assembleReport computes enabled sections concurrently and inserts them in task order.
func assembleReport(ctx context.Context, ds schema.Dataset, req schema.ReportRequest, cols schema.ColumnMapping, builder *ReportBuilder) (schema.Report, error) {
	tasks := []sectionTask{
		{req.PerWorker, perWorkerSections},
		{req.PerProcess, perProcessSections},
		{req.Deviation, deviationSections},
		{req.StdDev, stdDevSections},
		{req.Best, bestSections},
		{req.Worst, worstSections},
		{req.AllTimeBest, allTimeSections},
		{req.RecordCounts, countSections},
	}

	slots := make([][]schema.Section, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	for i, task := range tasks {
		if !task.enabled {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = task.build(ds, cols)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return schema.Report{}, err
	}

	for _, sections := range slots {
		for _, s := range sections {
			builder.Add(s.Label, s)
		}
	}
	if builder.Len() > 0 {
		contract.LogDebug("sections assembled", zap.Strings("labels", builder.Labels()))
	}
	return builder.Build(), nil
}
