// Package agg has aggregation logic for worker productivity records.
// Every function is pure: the input dataset is never modified and an empty
// dataset yields an empty result.
package agg

import (
	"cmp"
	"math"
	"slices"

	"github.com/huangsam/speedreport/schema"
	"github.com/shopspring/decimal"
)

// Precision is the number of decimals averages are rounded to.
const Precision = 2

// Round2 rounds half-to-even to two decimals. NaN and infinities pass through.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).RoundBank(Precision).InexactFloat64()
}

// group is the speeds of one key in scan order.
type group struct {
	key    string
	speeds []float64
}

func (g group) mean() float64 {
	var sum float64
	for _, s := range g.speeds {
		sum += s
	}
	return sum / float64(len(g.speeds))
}

// sampleStdDev uses the n-1 estimator. A single value has no defined deviation.
func (g group) sampleStdDev() float64 {
	n := len(g.speeds)
	if n < 2 {
		return math.NaN()
	}
	m := g.mean()
	var ss float64
	for _, s := range g.speeds {
		d := s - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// groupBy partitions speeds by key, keeping first-appearance order of keys.
func groupBy(records []schema.Record, key func(schema.Record) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].speeds = append(groups[i].speeds, r.Speed)
	}
	return groups
}

// partitionByProcess splits records per process, keeping first-appearance order.
func partitionByProcess(records []schema.Record) []schema.ProcessRecords {
	index := make(map[string]int)
	var parts []schema.ProcessRecords
	for _, r := range records {
		i, ok := index[r.Process]
		if !ok {
			i = len(parts)
			index[r.Process] = i
			parts = append(parts, schema.ProcessRecords{Process: r.Process})
		}
		parts[i].Records = append(parts[i].Records, r)
	}
	return parts
}

func byProcess(r schema.Record) string { return r.Process }

func sortedByKey(groups []group) []group {
	slices.SortFunc(groups, func(a, b group) int { return cmp.Compare(a.key, b.key) })
	return groups
}

// AveragesPerProcess returns the rounded mean speed of each process, by process name.
func AveragesPerProcess(ds schema.Dataset) []schema.ProcessValue {
	groups := sortedByKey(groupBy(ds.Records, byProcess))
	out := make([]schema.ProcessValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, schema.ProcessValue{Process: g.key, Value: Round2(g.mean())})
	}
	return out
}

// StandardDeviationPerProcess returns the sample standard deviation of each process.
// Processes with a single record report NaN.
func StandardDeviationPerProcess(ds schema.Dataset) []schema.ProcessValue {
	groups := sortedByKey(groupBy(ds.Records, byProcess))
	out := make([]schema.ProcessValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, schema.ProcessValue{Process: g.key, Value: g.sampleStdDev()})
	}
	return out
}

// AveragesPerPerson returns the rounded mean speed of every (worker, process) pair,
// ordered by process then worker.
func AveragesPerPerson(ds schema.Dataset) []schema.WorkerAverage {
	out := workerAverages(ds.Records)
	slices.SortFunc(out, func(a, b schema.WorkerAverage) int {
		return cmp.Or(cmp.Compare(a.Process, b.Process), cmp.Compare(a.Worker, b.Worker))
	})
	return out
}

// workerAverages computes per (worker, process) means in first-appearance order.
func workerAverages(records []schema.Record) []schema.WorkerAverage {
	type pairKey struct{ worker, process string }
	index := make(map[pairKey]int)
	var sums []float64
	var counts []int
	var out []schema.WorkerAverage
	for _, r := range records {
		k := pairKey{r.Worker, r.Process}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, schema.WorkerAverage{Worker: r.Worker, Process: r.Process})
			sums = append(sums, 0)
			counts = append(counts, 0)
		}
		sums[i] += r.Speed
		counts[i]++
	}
	for i := range out {
		out[i].Average = Round2(sums[i] / float64(counts[i]))
	}
	return out
}

// WorkerSpeedBestAverage ranks workers inside each process by their rounded average,
// fastest first with ties by name. Processes appear in first-appearance order.
func WorkerSpeedBestAverage(ds schema.Dataset) []schema.WorkerAverage {
	var out []schema.WorkerAverage
	for _, part := range partitionByProcess(ds.Records) {
		ranked := workerAverages(part.Records)
		slices.SortFunc(ranked, func(a, b schema.WorkerAverage) int {
			return cmp.Or(cmp.Compare(b.Average, a.Average), cmp.Compare(a.Worker, b.Worker))
		})
		out = append(out, ranked...)
	}
	return out
}

// WorkerSpeedBestAllTime returns every record of each process, fastest first.
// Equal speeds keep scan order.
func WorkerSpeedBestAllTime(ds schema.Dataset) []schema.ProcessRecords {
	parts := partitionByProcess(ds.Records)
	for i := range parts {
		slices.SortStableFunc(parts[i].Records, func(a, b schema.Record) int {
			return cmp.Compare(b.Speed, a.Speed)
		})
	}
	return parts
}

// SortWorkers groups per-person averages by process (process name order) and sorts each
// group by average. Ascending puts the slowest first; descending is its exact reverse.
func SortWorkers(ds schema.Dataset, ascending bool) []schema.ProcessWorkers {
	var out []schema.ProcessWorkers
	for _, row := range AveragesPerPerson(ds) {
		if n := len(out); n == 0 || out[n-1].Process != row.Process {
			out = append(out, schema.ProcessWorkers{Process: row.Process})
		}
		last := &out[len(out)-1]
		last.Workers = append(last.Workers, row)
	}
	for i := range out {
		slices.SortFunc(out[i].Workers, func(a, b schema.WorkerAverage) int {
			return cmp.Or(cmp.Compare(a.Average, b.Average), cmp.Compare(a.Worker, b.Worker))
		})
		if !ascending {
			slices.Reverse(out[i].Workers)
		}
	}
	return out
}

// CalculateDifference compares each worker's rounded average with the rounded average of
// the process. DiffPct is NaN when the process average is zero.
func CalculateDifference(ds schema.Dataset) []schema.Difference {
	processAvg := make(map[string]float64)
	for _, pv := range AveragesPerProcess(ds) {
		processAvg[pv.Process] = pv.Value
	}

	people := AveragesPerPerson(ds)
	out := make([]schema.Difference, 0, len(people))
	for _, p := range people {
		avg := processAvg[p.Process]
		diff := p.Average - avg
		pct := math.NaN()
		if avg != 0 {
			pct = diff / avg * 100
		}
		out = append(out, schema.Difference{
			Worker:         p.Worker,
			Process:        p.Process,
			ProcessAverage: avg,
			WorkerSpeed:    p.Average,
			Diff:           diff,
			DiffPct:        pct,
		})
	}
	return out
}

// RecordCountsPerProcess counts records per worker inside each process.
// Ordered by process, then count descending, then worker.
func RecordCountsPerProcess(ds schema.Dataset) []schema.ProcessWorkerCount {
	type pairKey struct{ process, worker string }
	index := make(map[pairKey]int)
	var out []schema.ProcessWorkerCount
	for _, r := range ds.Records {
		k := pairKey{r.Process, r.Worker}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, schema.ProcessWorkerCount{Process: r.Process, Worker: r.Worker})
		}
		out[i].Count++
	}
	slices.SortFunc(out, func(a, b schema.ProcessWorkerCount) int {
		return cmp.Or(
			cmp.Compare(a.Process, b.Process),
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(a.Worker, b.Worker),
		)
	})
	return out
}

// UniqueProcesses returns distinct processes in first-appearance order.
func UniqueProcesses(ds schema.Dataset) []string {
	return unique(ds.Records, byProcess)
}

// UniqueWorkers returns distinct workers in first-appearance order.
func UniqueWorkers(ds schema.Dataset) []string {
	return unique(ds.Records, func(r schema.Record) string { return r.Worker })
}

func unique(records []schema.Record, key func(schema.Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// FilterWorkers keeps only records of the given workers, in scan order.
func FilterWorkers(ds schema.Dataset, workers []string) schema.Dataset {
	keep := make(map[string]struct{}, len(workers))
	for _, w := range workers {
		keep[schema.NormalizeName(w)] = struct{}{}
	}
	var out schema.Dataset
	for _, r := range ds.Records {
		if _, ok := keep[schema.NormalizeName(r.Worker)]; ok {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// Summarize describes the dataset at a glance.
func Summarize(ds schema.Dataset) schema.DatasetSummary {
	summary := schema.DatasetSummary{
		Records:   ds.Len(),
		Workers:   UniqueWorkers(ds),
		Processes: UniqueProcesses(ds),
	}
	if ds.IsEmpty() {
		return summary
	}
	all := group{speeds: make([]float64, 0, ds.Len())}
	for _, r := range ds.Records {
		all.speeds = append(all.speeds, r.Speed)
	}
	summary.MinSpeed = slices.Min(all.speeds)
	summary.MaxSpeed = slices.Max(all.speeds)
	summary.MeanSpeed = Round2(all.mean())
	return summary
}
