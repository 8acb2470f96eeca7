package core

import (
	"time"

	"github.com/huangsam/speedreport/schema"
)

// ReportBuilder collects labeled sections in insertion order.
// Adding a label that already exists replaces that section where it stands.
type ReportBuilder struct {
	report schema.Report
	index  map[string]int
}

// NewReportBuilder is the starting point for building a report.
func NewReportBuilder(title string, generatedAt time.Time) *ReportBuilder {
	return &ReportBuilder{
		report: schema.Report{Title: title, GeneratedAt: generatedAt},
		index:  make(map[string]int),
	}
}

// Add inserts or replaces the section stored under label.
func (b *ReportBuilder) Add(label string, section schema.Section) *ReportBuilder {
	section.Label = label
	if i, ok := b.index[label]; ok {
		b.report.Sections[i] = section
		return b
	}
	b.index[label] = len(b.report.Sections)
	b.report.Sections = append(b.report.Sections, section)
	return b
}

// Labels returns section labels in display order.
func (b *ReportBuilder) Labels() []string {
	labels := make([]string, len(b.report.Sections))
	for i, s := range b.report.Sections {
		labels[i] = s.Label
	}
	return labels
}

// Len returns the number of sections collected so far.
func (b *ReportBuilder) Len() int {
	return len(b.report.Sections)
}

// Build finalizes the construction and returns the completed report.
func (b *ReportBuilder) Build() schema.Report {
	out := b.report
	out.Sections = make([]schema.Section, len(b.report.Sections))
	copy(out.Sections, b.report.Sections)
	return out
}
