package ingest

import (
	"fmt"
	"slices"

	"github.com/huangsam/speedreport/internal/contract"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the stored cell values of the named sheet, or of the first sheet.
// Number formats are not applied, so 1234 shown as "1,234" stays 1234 and dates
// arrive as serial numbers.
func readXLSX(path, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", &contract.InputFormatError{Path: path, Reason: "cannot open workbook", Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", &contract.InputFormatError{Path: path, Reason: "workbook has no sheets"}
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, "", &contract.InputFormatError{
			Path:   path,
			Reason: fmt.Sprintf("sheet %q not found (available: %v)", sheet, sheets),
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", &contract.InputFormatError{Path: path, Reason: "cannot read sheet " + sheet, Err: err}
	}
	return rows, sheet, nil
}
