package outwriter

import (
	"fmt"
	"io"
	"math"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/huangsam/speedreport/schema"
	"github.com/xuri/excelize/v2"
)

// ReportSheet is the worksheet the report is written to.
const ReportSheet = "Izvještaj"

// writeReportXLSX lays the report out on a single sheet: heading in A1, then per section
// a bold label row, a bold header row, data rows and one blank row.
func writeReportXLSX(w io.Writer, report schema.Report, precision int) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return err
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	numStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: numberFormat(precision)})
	if err != nil {
		return err
	}

	row := 1
	if err := setRow(f, row, []any{report.Heading()}, titleStyle); err != nil {
		return err
	}
	row += 2

	for _, s := range report.Sections {
		if err := setRow(f, row, []any{s.Label}, boldStyle); err != nil {
			return err
		}
		row++
		header := make([]any, len(s.Columns))
		for i, c := range s.Columns {
			header[i] = c
		}
		if err := setRow(f, row, header, boldStyle); err != nil {
			return err
		}
		row++
		for _, r := range s.Rows {
			if err := setDataRow(f, row, r, numStyle); err != nil {
				return err
			}
			row++
		}
		row++
	}

	if err := f.SetColWidth(ReportSheet, "A", "F", 18); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(ReportSheet, start, &values); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(ReportSheet, start, end, style)
}

// setDataRow writes numbers as numbers; NaN becomes text.
func setDataRow(f *excelize.File, row int, values []any, numStyle int) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		switch x := v.(type) {
		case nil:
			continue
		case float64:
			if math.IsNaN(x) || math.IsInf(x, 0) {
				err = f.SetCellStr(ReportSheet, cell, contract.FormatFloat(x, 0))
				break
			}
			if err = f.SetCellFloat(ReportSheet, cell, x, -1, 64); err == nil {
				err = f.SetCellStyle(ReportSheet, cell, cell, numStyle)
			}
		default:
			err = f.SetCellValue(ReportSheet, cell, x)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func numberFormat(precision int) *string {
	format := "0"
	if precision > 0 {
		format += "."
		for range precision {
			format += "0"
		}
	}
	return &format
}
